// Package gpu declares the graphics backend a node drives. It owns no GPU
// state itself: images, programs and the quad mesh are opaque handles issued
// by a Backend implementation.
//
// A Backend is bound to one graphics context and must only be used from the
// goroutine that owns that context.
package gpu

import "fmt"

// ImageID identifies an image allocated by a Backend. Zero is never issued.
type ImageID uint64

// ProgramID identifies a compiled program. Zero is never issued.
type ProgramID uint64

// BufferID identifies a vertex buffer.
type BufferID uint64

// Image is a handle to a width x height RGBA image.
type Image struct {
	ID     ImageID
	Width  int
	Height int
}

// Valid reports whether the handle refers to an allocated image.
func (img Image) Valid() bool { return img.ID != 0 }

// Program is a handle to a linked vertex and fragment program.
type Program struct {
	ID ProgramID
}

// Valid reports whether the handle refers to a compiled program.
func (p Program) Valid() bool { return p.ID != 0 }

// Quad is the fixed full-surface mesh: two triangles with a vec3 position
// buffer and a vec2 texture coordinate buffer.
type Quad struct {
	Positions BufferID
	TexCoords BufferID
}

// QuadVertices is the number of vertices drawn for a Quad.
const QuadVertices = 6

// Stage names a shader stage in a CompileError.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

// CompileError is the backend's compiler diagnostic. Nodes return it to
// callers unmodified.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// Backend is the set of GPU operations a node needs.
type Backend interface {
	// NewImage allocates an uninitialized image of the given size.
	NewImage(width, height int) (Image, error)
	// ReleaseImage frees an image. Releasing an invalid handle is a no-op.
	ReleaseImage(img Image)

	// Compile builds a program from vertex and fragment source. A failure is
	// reported as a *CompileError.
	Compile(vertex, fragment string) (Program, error)
	// ReleaseProgram frees a program. Releasing an invalid handle is a no-op.
	ReleaseProgram(p Program)

	// UseProgram makes p current for subsequent binds and uniform writes.
	UseProgram(p Program)
	// BindTexture binds img to the given texture unit.
	BindTexture(unit int, img Image)

	SetFloat(p Program, name string, v float32)
	SetInt(p Program, name string, v int32)
	SetBool(p Program, name string, v bool)
	SetVec2(p Program, name string, x, y float32)
	SetVec4(p Program, name string, v [4]float32)

	// Draw renders quad with p into target, covering the whole surface.
	// It returns once the draw has been issued.
	Draw(p Program, target Image, quad Quad) error
}
