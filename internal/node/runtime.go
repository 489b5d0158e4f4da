package node

import (
	"github.com/specialistvlad/texgrid/internal/gpu"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/specialistvlad/texgrid/internal/node"

// Environment is the per-evaluation state the orchestrator distributes to
// every node.
type Environment interface {
	// RandomSeed feeds the _seed uniform.
	RandomSeed() float32
	// SurfaceSize is the target resolution; it sizes new output images and
	// feeds the _textureSize uniform.
	SurfaceSize() (width, height int)
	// Quad is the shared full-surface mesh.
	Quad() gpu.Quad
}

// StaticEnvironment is an Environment backed by plain fields.
type StaticEnvironment struct {
	Seed   float32
	Width  int
	Height int
	Mesh   gpu.Quad
}

func (e *StaticEnvironment) RandomSeed() float32              { return e.Seed }
func (e *StaticEnvironment) SurfaceSize() (width, height int) { return e.Width, e.Height }
func (e *StaticEnvironment) Quad() gpu.Quad                   { return e.Mesh }

// Runtime holds the collaborators injected into every node.
type Runtime struct {
	Backend gpu.Backend
	Env     Environment
	// Updates receives a request every time a node becomes dirty. May be nil.
	Updates UpdateRequester
	// Tracer records Initialize and Evaluate spans. Nil uses the global
	// OpenTelemetry tracer provider.
	Tracer trace.Tracer
}

func (rt Runtime) tracer() trace.Tracer {
	if rt.Tracer != nil {
		return rt.Tracer
	}
	return otel.Tracer(tracerName)
}
