// Package recording provides a gpu.Backend that records every call as a
// command instead of talking to a device. It backs dry runs and tests.
package recording

import (
	"fmt"

	"github.com/specialistvlad/texgrid/internal/gpu"
)

type Command interface {
	isCommand()
}

func (*AllocImage) isCommand()     {}
func (*FreeImage) isCommand()      {}
func (*CompileProgram) isCommand() {}
func (*FreeProgram) isCommand()    {}
func (*UseProgram) isCommand()     {}
func (*BindTexture) isCommand()    {}
func (*SetUniform) isCommand()     {}
func (*Draw) isCommand()           {}

type AllocImage struct {
	Image gpu.Image
}

type FreeImage struct {
	Image gpu.Image
}

type CompileProgram struct {
	Program  gpu.Program
	Vertex   string
	Fragment string
}

type FreeProgram struct {
	Program gpu.Program
}

type UseProgram struct {
	Program gpu.Program
}

type BindTexture struct {
	Unit  int
	Image gpu.Image
}

// SetUniform records a uniform write. Value holds float32, int32, bool,
// [2]float32 or [4]float32 depending on the setter used.
type SetUniform struct {
	Program gpu.Program
	Name    string
	Value   any
}

type Draw struct {
	Program  gpu.Program
	Target   gpu.Image
	Quad     gpu.Quad
	Vertices int
}

// CompileFunc inspects the sources handed to Compile. Returning a non-nil
// error makes Compile fail with that error.
type CompileFunc func(vertex, fragment string) error

// Backend is an in-memory gpu.Backend. It is not safe for concurrent use.
type Backend struct {
	Commands []Command

	// CompileFunc, when set, decides whether Compile succeeds.
	CompileFunc CompileFunc

	nextID   uint64
	images   map[gpu.ImageID]gpu.Image
	programs map[gpu.ProgramID]struct{}
}

var _ gpu.Backend = (*Backend)(nil)

// New returns an empty recording backend.
func New() *Backend {
	return &Backend{
		images:   make(map[gpu.ImageID]gpu.Image),
		programs: make(map[gpu.ProgramID]struct{}),
	}
}

func (b *Backend) id() uint64 {
	b.nextID++
	return b.nextID
}

func (b *Backend) push(cmd Command) {
	b.Commands = append(b.Commands, cmd)
}

// NewQuad issues the buffer handles of the shared full-surface quad.
func (b *Backend) NewQuad() gpu.Quad {
	return gpu.Quad{Positions: gpu.BufferID(b.id()), TexCoords: gpu.BufferID(b.id())}
}

func (b *Backend) NewImage(width, height int) (gpu.Image, error) {
	if width <= 0 || height <= 0 {
		return gpu.Image{}, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	img := gpu.Image{ID: gpu.ImageID(b.id()), Width: width, Height: height}
	b.images[img.ID] = img
	b.push(&AllocImage{Image: img})
	return img, nil
}

func (b *Backend) ReleaseImage(img gpu.Image) {
	if _, ok := b.images[img.ID]; !ok {
		return
	}
	delete(b.images, img.ID)
	b.push(&FreeImage{Image: img})
}

func (b *Backend) Compile(vertex, fragment string) (gpu.Program, error) {
	if b.CompileFunc != nil {
		if err := b.CompileFunc(vertex, fragment); err != nil {
			return gpu.Program{}, err
		}
	}
	p := gpu.Program{ID: gpu.ProgramID(b.id())}
	b.programs[p.ID] = struct{}{}
	b.push(&CompileProgram{Program: p, Vertex: vertex, Fragment: fragment})
	return p, nil
}

func (b *Backend) ReleaseProgram(p gpu.Program) {
	if _, ok := b.programs[p.ID]; !ok {
		return
	}
	delete(b.programs, p.ID)
	b.push(&FreeProgram{Program: p})
}

func (b *Backend) UseProgram(p gpu.Program) { b.push(&UseProgram{Program: p}) }

func (b *Backend) BindTexture(unit int, img gpu.Image) {
	b.push(&BindTexture{Unit: unit, Image: img})
}

func (b *Backend) SetFloat(p gpu.Program, name string, v float32) { b.set(p, name, v) }
func (b *Backend) SetInt(p gpu.Program, name string, v int32)     { b.set(p, name, v) }
func (b *Backend) SetBool(p gpu.Program, name string, v bool)     { b.set(p, name, v) }

func (b *Backend) SetVec2(p gpu.Program, name string, x, y float32) {
	b.set(p, name, [2]float32{x, y})
}

func (b *Backend) SetVec4(p gpu.Program, name string, v [4]float32) { b.set(p, name, v) }

func (b *Backend) set(p gpu.Program, name string, v any) {
	b.push(&SetUniform{Program: p, Name: name, Value: v})
}

func (b *Backend) Draw(p gpu.Program, target gpu.Image, quad gpu.Quad) error {
	if _, ok := b.programs[p.ID]; !ok {
		return fmt.Errorf("draw with unknown program %d", p.ID)
	}
	if _, ok := b.images[target.ID]; !ok {
		return fmt.Errorf("draw into unknown image %d", target.ID)
	}
	b.push(&Draw{Program: p, Target: target, Quad: quad, Vertices: gpu.QuadVertices})
	return nil
}

// LiveImages returns the number of allocated, unreleased images.
func (b *Backend) LiveImages() int { return len(b.images) }

// LivePrograms returns the number of compiled, unreleased programs.
func (b *Backend) LivePrograms() int { return len(b.programs) }

// Reset drops the recorded commands but keeps live resources.
func (b *Backend) Reset() { b.Commands = nil }

// Draws returns the recorded draw commands.
func (b *Backend) Draws() []*Draw {
	var out []*Draw
	for _, c := range b.Commands {
		if d, ok := c.(*Draw); ok {
			out = append(out, d)
		}
	}
	return out
}

// Uniforms returns the last value written to each uniform of p.
func (b *Backend) Uniforms(p gpu.Program) map[string]any {
	out := make(map[string]any)
	for _, c := range b.Commands {
		if u, ok := c.(*SetUniform); ok && u.Program == p {
			out[u.Name] = u.Value
		}
	}
	return out
}

// Bindings returns the image bound to each texture unit, last write wins.
func (b *Backend) Bindings() map[int]gpu.Image {
	out := make(map[int]gpu.Image)
	for _, c := range b.Commands {
		if bt, ok := c.(*BindTexture); ok {
			out[bt.Unit] = bt.Image
		}
	}
	return out
}
