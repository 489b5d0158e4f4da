package node

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/texgrid/internal/ctxlog"
	"github.com/specialistvlad/texgrid/internal/gpu"
	"github.com/specialistvlad/texgrid/internal/property"
	"github.com/specialistvlad/texgrid/internal/shader"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Node is a single vertex in the texture graph: one fragment program that
// renders into one output image from its upstream images and its properties.
type Node struct {
	// id is unique per node instance, independent of the type.
	id string
	// typeName is the registry name the node was created under.
	typeName string
	// title is the human-readable label from the descriptor.
	title string
	// decl is the descriptor the node was created from. Initialize installs
	// its inputs and properties.
	decl Descriptor

	// inputs are the input slot names, in texture unit order.
	inputs []string
	// props are the node's properties, in declaration order.
	props []*property.Property
	// source is the assembled program source, kept for diagnostics.
	source shader.Source

	program gpu.Program
	image   gpu.Image

	// initErr is the failure of the last Initialize, if any.
	initErr  error
	dirty    bool
	disposed bool

	rt Runtime
}

// State is the lifecycle state of a node.
type State int

const (
	// StateUnconfigured means the node has no compiled program.
	StateUnconfigured State = iota
	// StateReady means the output image holds the result of the current
	// inputs and properties.
	StateReady
	// StateDirty means the node must be evaluated before its image is used.
	StateDirty
	// StateDisposed means the node's resources were released.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateReady:
		return "ready"
	case StateDirty:
		return "dirty"
	case StateDisposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// New returns an unconfigured node of the given type, declared by d. The node
// keeps its own copy of d. The runtime must carry a Backend and an
// Environment.
func New(typeName string, d Descriptor, rt Runtime) *Node {
	if rt.Backend == nil {
		panic("node: runtime has no backend")
	}
	if rt.Env == nil {
		panic("node: runtime has no environment")
	}
	return &Node{
		id:       uuid.NewString(),
		typeName: typeName,
		title:    d.Title,
		decl:     d.Clone(),
		dirty:    true,
		rt:       rt,
	}
}

// ID returns the node's unique instance identifier.
func (n *Node) ID() string { return n.id }

// TypeName returns the registry name the node was created under.
func (n *Node) TypeName() string { return n.typeName }

// Title returns the descriptor title.
func (n *Node) Title() string { return n.title }

// Inputs returns a copy of the input slot names in texture unit order.
func (n *Node) Inputs() []string { return append([]string(nil), n.inputs...) }

// Properties returns the node's properties in declaration order. Setting a
// value through a returned property invalidates the node.
func (n *Node) Properties() []*property.Property {
	return append([]*property.Property(nil), n.props...)
}

// Property returns the property with the given name.
func (n *Node) Property(name string) (*property.Property, bool) {
	for _, p := range n.props {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Source returns the assembled program source of the last Initialize.
func (n *Node) Source() shader.Source { return n.source }

// Image returns the node's output image. It is the zero handle before
// Initialize and after Dispose.
func (n *Node) Image() gpu.Image { return n.image }

// Dirty reports whether the output image is stale.
func (n *Node) Dirty() bool { return n.dirty }

// State returns the lifecycle state.
func (n *Node) State() State {
	switch {
	case n.disposed:
		return StateDisposed
	case !n.program.Valid():
		return StateUnconfigured
	case n.dirty:
		return StateDirty
	}
	return StateReady
}

// Initialize installs the node's inputs and properties, assembles and
// compiles its program and allocates an output image at the environment's
// surface size. Compiler failures are returned as the backend reported them;
// the node then stays unconfigured, without inputs or properties, and may be
// initialized again.
func (n *Node) Initialize(ctx context.Context) (err error) {
	if n.disposed {
		return ErrDisposed
	}
	if n.program.Valid() {
		return ErrAlreadyInitialized
	}

	ctx, span := n.rt.tracer().Start(ctx, "node.Initialize", n.spanAttrs())
	defer func() {
		endSpan(span, err)
		n.initErr = err
	}()
	logger := ctxlog.FromContext(ctx).With("node_id", n.id, "type", n.typeName)

	if err := n.decl.Validate(); err != nil {
		return fmt.Errorf("invalid descriptor for %q: %w", n.typeName, err)
	}

	d := n.decl.Clone()
	n.source = shader.Assemble(d.Inputs, d.Properties, d.Shader)

	program, err := n.rt.Backend.Compile(n.source.Vertex, n.source.Fragment)
	if err != nil {
		logger.Error("Program compilation failed.", "error", err)
		return err
	}

	w, h := n.rt.Env.SurfaceSize()
	image, err := n.rt.Backend.NewImage(w, h)
	if err != nil {
		n.rt.Backend.ReleaseProgram(program)
		return fmt.Errorf("allocate output image: %w", err)
	}

	// A Resize before a successful Initialize leaves an image behind.
	n.rt.Backend.ReleaseImage(n.image)
	n.program = program
	n.image = image
	n.inputs = d.Inputs
	n.props = d.Properties
	for _, p := range n.props {
		p.OnChange(n.propertyChanged)
	}
	n.dirty = true
	logger.Debug("Node initialized.", "inputs", len(n.inputs), "properties", len(n.props))
	return nil
}

// SetPropertyValue sets the named property. An unknown name is ignored.
// A successful change marks the node dirty and requests one update.
func (n *Node) SetPropertyValue(name string, v any) error {
	p, ok := n.Property(name)
	if !ok {
		return nil
	}
	return p.SetValue(v)
}

func (n *Node) propertyChanged(*property.Property) {
	n.Invalidate()
}

// Invalidate marks the node dirty and requests an update. It is used by the
// orchestrator when an upstream node changed.
func (n *Node) Invalidate() {
	if n.disposed {
		return
	}
	n.dirty = true
	if n.rt.Updates != nil {
		n.rt.Updates.RequestUpdate(n)
	}
}

// Evaluate renders the node into its output image. inputs maps every input
// slot name to the output image of the node feeding it; extra entries are
// ignored. On success the node is no longer dirty.
func (n *Node) Evaluate(ctx context.Context, inputs map[string]gpu.Image) (err error) {
	if n.disposed {
		return ErrDisposed
	}
	if !n.program.Valid() {
		if n.initErr != nil {
			return fmt.Errorf("%w: %w", ErrNotInitialized, n.initErr)
		}
		return ErrNotInitialized
	}
	for _, name := range n.inputs {
		if img, ok := inputs[name]; !ok || !img.Valid() {
			return fmt.Errorf("%w: %q", ErrMissingInput, name)
		}
	}

	ctx, span := n.rt.tracer().Start(ctx, "node.Evaluate", n.spanAttrs())
	defer func() { endSpan(span, err) }()

	b, p := n.rt.Backend, n.program
	b.UseProgram(p)
	for unit, name := range n.inputs {
		b.BindTexture(unit, inputs[name])
		b.SetInt(p, name, int32(unit))
	}
	b.SetFloat(p, shader.SeedUniform, n.rt.Env.RandomSeed())
	w, h := n.rt.Env.SurfaceSize()
	b.SetVec2(p, shader.SizeUniform, float32(w), float32(h))

	u := programUniforms{backend: b, program: p}
	for _, prop := range n.props {
		prop.Bind(u)
	}

	if err := b.Draw(p, n.image, n.rt.Env.Quad()); err != nil {
		return fmt.Errorf("draw %s: %w", n.typeName, err)
	}
	n.dirty = false
	ctxlog.FromContext(ctx).Debug("Node evaluated.", "node_id", n.id, "type", n.typeName)
	return nil
}

// Resize replaces the output image with one of the given size. The node is
// dirty afterwards even if the allocation fails.
func (n *Node) Resize(width, height int) error {
	if n.disposed {
		return ErrDisposed
	}
	n.rt.Backend.ReleaseImage(n.image)
	n.image = gpu.Image{}

	image, err := n.rt.Backend.NewImage(width, height)
	if err == nil {
		n.image = image
	}
	n.Invalidate()
	if err != nil {
		return fmt.Errorf("resize %s to %dx%d: %w", n.typeName, width, height, err)
	}
	return nil
}

// Dispose releases the program and the output image. Calling it again is a
// no-op.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.rt.Backend.ReleaseProgram(n.program)
	n.rt.Backend.ReleaseImage(n.image)
	n.program = gpu.Program{}
	n.image = gpu.Image{}
	for _, p := range n.props {
		p.OnChange(nil)
	}
	n.props = nil
	n.disposed = true
}

func (n *Node) spanAttrs() trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String("node.id", n.id),
		attribute.String("node.type", n.typeName),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// programUniforms forwards property bindings to the backend's setters.
type programUniforms struct {
	backend gpu.Backend
	program gpu.Program
}

func (u programUniforms) SetFloat(name string, v float32) { u.backend.SetFloat(u.program, name, v) }
func (u programUniforms) SetInt(name string, v int32)     { u.backend.SetInt(u.program, name, v) }
func (u programUniforms) SetBool(name string, v bool)     { u.backend.SetBool(u.program, name, v) }

func (u programUniforms) SetVec4(name string, v [4]float32) {
	u.backend.SetVec4(u.program, name, v)
}
