package property

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Uniforms receives property values when a node binds its program.
type Uniforms interface {
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetBool(name string, v bool)
	SetVec4(name string, v [4]float32)
}

// Value is the closed set of property variants. The unexported methods keep
// implementations inside this package.
type Value interface {
	Kind() Kind
	// Interface returns the current value as a plain Go value.
	Interface() any

	assign(v any) error
	bind(u Uniforms, uniform string)
	clone() Value
}

// Float is a scalar float property.
type Float struct {
	Value float32
	Min   float32
	Max   float32
	Step  float32
}

func (*Float) Kind() Kind       { return KindFloat }
func (f *Float) Interface() any { return f.Value }

func (f *Float) assign(v any) error {
	x, ok := toFloat64(v)
	if !ok {
		return mismatch(KindFloat, v)
	}
	f.Value = float32(x)
	return nil
}

func (f *Float) bind(u Uniforms, uniform string) { u.SetFloat(uniform, f.Value) }
func (f *Float) clone() Value                    { c := *f; return &c }

// Int is a scalar integer property.
type Int struct {
	Value int32
	Min   int32
	Max   int32
	Step  int32
}

func (*Int) Kind() Kind       { return KindInt }
func (i *Int) Interface() any { return i.Value }

func (i *Int) assign(v any) error {
	x, ok := toInt64(v)
	if !ok || x < math.MinInt32 || x > math.MaxInt32 {
		return mismatch(KindInt, v)
	}
	i.Value = int32(x)
	return nil
}

func (i *Int) bind(u Uniforms, uniform string) { u.SetInt(uniform, i.Value) }
func (i *Int) clone() Value                    { c := *i; return &c }

// Bool is a boolean property.
type Bool struct {
	Value bool
}

func (*Bool) Kind() Kind       { return KindBool }
func (b *Bool) Interface() any { return b.Value }

func (b *Bool) assign(v any) error {
	x, ok := v.(bool)
	if !ok {
		return mismatch(KindBool, v)
	}
	b.Value = x
	return nil
}

func (b *Bool) bind(u Uniforms, uniform string) { u.SetBool(uniform, b.Value) }
func (b *Bool) clone() Value                    { c := *b; return &c }

// Enum selects one entry of an ordered option list. The shader sees the
// selected index, never the option text.
type Enum struct {
	Options []string
	Index   int
}

func (*Enum) Kind() Kind       { return KindEnum }
func (e *Enum) Interface() any { return e.Index }

// Selected returns the text of the selected option, or "" when the index is
// outside the option list.
func (e *Enum) Selected() string {
	if e.Index < 0 || e.Index >= len(e.Options) {
		return ""
	}
	return e.Options[e.Index]
}

func (e *Enum) assign(v any) error {
	if s, ok := v.(string); ok {
		for i, opt := range e.Options {
			if opt == s {
				e.Index = i
				return nil
			}
		}
		return fmt.Errorf("%w: %q is not one of %v", ErrUnknownOption, s, e.Options)
	}
	x, ok := toInt64(v)
	if !ok {
		return mismatch(KindEnum, v)
	}
	e.Index = int(x)
	return nil
}

func (e *Enum) bind(u Uniforms, uniform string) { u.SetInt(uniform, int32(e.Index)) }

func (e *Enum) clone() Value {
	return &Enum{Options: append([]string(nil), e.Options...), Index: e.Index}
}

// RGBA is a color with four independent channels normalized to [0,1].
type RGBA struct {
	R, G, B, A float32
}

// Vec4 returns the channels in shader order.
func (c RGBA) Vec4() [4]float32 { return [4]float32{c.R, c.G, c.B, c.A} }

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa". Alpha defaults to 1.
func ParseHex(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	alpha := float32(1)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = float32(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGBA{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}, nil
}

// Color is a four channel color property.
type Color struct {
	Value RGBA
}

func (*Color) Kind() Kind       { return KindColor }
func (c *Color) Interface() any { return c.Value }

func (c *Color) assign(v any) error {
	switch x := v.(type) {
	case RGBA:
		c.Value = x
	case [4]float32:
		c.Value = RGBA{x[0], x[1], x[2], x[3]}
	case [4]float64:
		c.Value = RGBA{float32(x[0]), float32(x[1]), float32(x[2]), float32(x[3])}
	case string:
		rgba, err := ParseHex(x)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		c.Value = rgba
	default:
		return mismatch(KindColor, v)
	}
	return nil
}

func (c *Color) bind(u Uniforms, uniform string) { u.SetVec4(uniform, c.Value.Vec4()) }
func (c *Color) clone() Value                    { cp := *c; return &cp }

// String is a text property. It is shown in editors but never reaches the
// shader.
type String struct {
	Value string
}

func (*String) Kind() Kind       { return KindString }
func (s *String) Interface() any { return s.Value }

func (s *String) assign(v any) error {
	x, ok := v.(string)
	if !ok {
		return mismatch(KindString, v)
	}
	s.Value = x
	return nil
}

func (*String) bind(Uniforms, string) {}
func (s *String) clone() Value        { c := *s; return &c }

func mismatch(k Kind, v any) error {
	return fmt.Errorf("%w: %s property cannot hold %T", ErrTypeMismatch, k, v)
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

// toInt64 accepts every Go integer type and floats with no fractional part.
func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), uint64(x) <= math.MaxInt64
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), uint64(x) <= math.MaxInt64
	case float32:
		return int64(x), float32(int64(x)) == x
	case float64:
		return int64(x), float64(int64(x)) == x
	default:
		return 0, false
	}
}
