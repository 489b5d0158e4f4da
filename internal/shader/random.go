package shader

import "github.com/chewxy/math32"

// RandomLibrary is appended to every fragment source. Results depend only on
// _seed, the pixel's texture coordinate and the index argument. initRandom()
// must run once per pixel before any random function; the preamble's main()
// does that.
const RandomLibrary = `uniform float _seed;
vec2 _randomStart;

#define HASHSCALE1 443.8975
#define HASHSCALE3 vec3(443.897, 441.423, 437.195)
#define RANDOM_SCALE 0.152

float hash12(vec2 p)
{
    vec3 p3 = fract(vec3(p.xyx) * HASHSCALE1);
    p3 += dot(p3, p3.yzx + 19.19);
    return fract((p3.x + p3.y) * p3.z);
}

vec2 hash22(vec2 p)
{
    vec3 p3 = fract(vec3(p.xyx) * HASHSCALE3);
    p3 += dot(p3, p3.yzx + 19.19);
    return fract((p3.xx + p3.yz) * p3.zy);
}

vec2 _randomPos(int index)
{
    return (_randomStart + vec2(_seed) + vec2(float(index))) * RANDOM_SCALE;
}

float randomFloat(int index)
{
    return hash12(_randomPos(index));
}

float randomFloat(int index, float start, float end)
{
    return start + randomFloat(index) * (end - start);
}

int randomInt(int index, int start, int end)
{
    return start + int(randomFloat(index) * float(end - start));
}

bool randomBool(int index)
{
    return randomFloat(index) > 0.5;
}

vec2 randomVec2(int index)
{
    return hash22(_randomPos(index));
}

void initRandom()
{
    _randomStart = v_texCoord;
}

`

const (
	hashScale1  float32 = 443.8975
	hashOffset  float32 = 19.19
	randomScale float32 = 0.152
)

var hashScale3 = [3]float32{443.897, 441.423, 437.195}

// Random evaluates RandomLibrary on the CPU in float32, for previews and
// for checking the library's contract without a GPU. Drivers may differ from
// it in the last bits.
type Random struct {
	Seed  float32
	start [2]float32
}

// NewRandom returns a generator already initialized for coord.
func NewRandom(seed float32, coord [2]float32) *Random {
	r := &Random{Seed: seed}
	r.Init(coord)
	return r
}

// Init resets the per-pixel start value, like initRandom().
func (r *Random) Init(coord [2]float32) { r.start = coord }

func (r *Random) pos(index int) [2]float32 {
	i := float32(index)
	return [2]float32{
		(r.start[0] + r.Seed + i) * randomScale,
		(r.start[1] + r.Seed + i) * randomScale,
	}
}

// Float returns a value in [0,1).
func (r *Random) Float(index int) float32 { return hash12(r.pos(index)) }

// FloatRange maps Float onto [start,end).
func (r *Random) FloatRange(index int, start, end float32) float32 {
	return start + r.Float(index)*(end-start)
}

// Int returns start plus the truncated scaled draw, in [start,end).
func (r *Random) Int(index, start, end int) int {
	return start + int(r.Float(index)*float32(end-start))
}

// Bool is true iff the scalar draw exceeds 0.5.
func (r *Random) Bool(index int) bool { return r.Float(index) > 0.5 }

// Vec2 returns two values in [0,1).
func (r *Random) Vec2(index int) [2]float32 { return hash22(r.pos(index)) }

func fract(x float32) float32 { return x - math32.Floor(x) }

func hash12(p [2]float32) float32 {
	p3 := [3]float32{
		fract(p[0] * hashScale1),
		fract(p[1] * hashScale1),
		fract(p[0] * hashScale1),
	}
	p3 = addDot(p3)
	return fract((p3[0] + p3[1]) * p3[2])
}

func hash22(p [2]float32) [2]float32 {
	p3 := [3]float32{
		fract(p[0] * hashScale3[0]),
		fract(p[1] * hashScale3[1]),
		fract(p[0] * hashScale3[2]),
	}
	p3 = addDot(p3)
	return [2]float32{
		fract((p3[0] + p3[1]) * p3[2]),
		fract((p3[0] + p3[2]) * p3[1]),
	}
}

// addDot computes p3 += dot(p3, p3.yzx + offset).
func addDot(p3 [3]float32) [3]float32 {
	d := p3[0]*(p3[1]+hashOffset) + p3[1]*(p3[2]+hashOffset) + p3[2]*(p3[0]+hashOffset)
	return [3]float32{p3[0] + d, p3[1] + d, p3[2] + d}
}
