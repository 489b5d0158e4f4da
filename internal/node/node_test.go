package node

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/texgrid/internal/gpu"
	"github.com/specialistvlad/texgrid/internal/gpu/recording"
	"github.com/specialistvlad/texgrid/internal/property"
	"github.com/specialistvlad/texgrid/internal/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const whiteBody = "vec4 sample(vec2 uv) { return vec4(1.0); }"

type fixture struct {
	backend *recording.Backend
	env     *StaticEnvironment
	updates []*Node
	spans   *tracetest.SpanRecorder
	rt      Runtime
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{backend: recording.New(), spans: tracetest.NewSpanRecorder()}
	f.env = &StaticEnvironment{Seed: 12.5, Width: 256, Height: 128, Mesh: f.backend.NewQuad()}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(f.spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	f.rt = Runtime{
		Backend: f.backend,
		Env:     f.env,
		Updates: UpdateFunc(func(n *Node) { f.updates = append(f.updates, n) }),
		Tracer:  tp.Tracer("test"),
	}
	return f
}

func normalMapDescriptor() Descriptor {
	return Descriptor{
		Title:  "Normal Map",
		Inputs: []string{"height"},
		Properties: []*property.Property{
			property.NewFloat("strength", "Strength", 0.001, -0.02, 0.02, 0.00001),
		},
		Shader: whiteBody,
	}
}

func (f *fixture) initialized(t *testing.T, d Descriptor) *Node {
	t.Helper()
	n := New("normal_map", d, f.rt)
	require.NoError(t, n.Initialize(context.Background()))
	return n
}

func (f *fixture) upstream(t *testing.T) gpu.Image {
	t.Helper()
	img, err := f.backend.NewImage(f.env.Width, f.env.Height)
	require.NoError(t, err)
	return img
}

func TestNode_New(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	a := New("normal_map", normalMapDescriptor(), f.rt)
	b := New("normal_map", normalMapDescriptor(), f.rt)

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "normal_map", a.TypeName())
	assert.Equal(t, StateUnconfigured, a.State())
	assert.True(t, a.Dirty())
	assert.False(t, a.Image().Valid())
	assert.Equal(t, "Normal Map", a.Title())
	assert.Empty(t, a.Inputs(), "inputs are installed by Initialize")
	assert.Empty(t, a.Properties(), "properties are installed by Initialize")

	assert.Panics(t, func() { New("x", Descriptor{}, Runtime{Env: f.env}) })
	assert.Panics(t, func() { New("x", Descriptor{}, Runtime{Backend: f.backend}) })
}

func TestNode_Initialize(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	d := normalMapDescriptor()
	n := f.initialized(t, d)

	assert.Equal(t, "Normal Map", n.Title())
	assert.Equal(t, []string{"height"}, n.Inputs())
	assert.Equal(t, StateDirty, n.State())
	assert.Equal(t, 1, f.backend.LivePrograms())
	assert.Equal(t, 1, f.backend.LiveImages())
	assert.Equal(t, 256, n.Image().Width)
	assert.Equal(t, 128, n.Image().Height)
	assert.Empty(t, f.updates, "initialization requests no update")

	assert.Contains(t, n.Source().Fragment, "uniform sampler2D height;")
	assert.Contains(t, n.Source().Fragment, "uniform float prop_strength;")
	assert.Equal(t, shader.VertexSource, n.Source().Vertex)

	// The node owns copies of the descriptor's properties.
	require.NoError(t, d.Properties[0].SetValue(float32(0.01)))
	p, ok := n.Property("strength")
	require.True(t, ok)
	assert.Equal(t, float32(0.001), p.Interface())

	assert.ErrorIs(t, n.Initialize(context.Background()), ErrAlreadyInitialized)
}

func TestNode_InitializeInvalidDescriptor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		d    Descriptor
		want error
	}{
		{
			name: "duplicate input",
			d:    Descriptor{Inputs: []string{"a", "a"}, Shader: whiteBody},
			want: ErrDuplicateName,
		},
		{
			name: "empty input",
			d:    Descriptor{Inputs: []string{""}, Shader: whiteBody},
			want: ErrEmptyName,
		},
		{
			name: "duplicate property",
			d: Descriptor{
				Properties: []*property.Property{
					property.NewBool("flip", "Flip", false),
					property.NewInt("flip", "Flip", 1, 1, 100, 1),
				},
				Shader: whiteBody,
			},
			want: ErrDuplicateName,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			n := New("bad", tc.d, f.rt)

			err := n.Initialize(context.Background())
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, StateUnconfigured, n.State())
			assert.Empty(t, f.backend.Commands)
		})
	}
}

func TestNode_CompileFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	compileErr := &gpu.CompileError{Stage: gpu.StageFragment, Log: "ERROR: 0:3: 'foo' : undeclared identifier"}
	f.backend.CompileFunc = func(_, _ string) error { return compileErr }

	d := normalMapDescriptor()
	d.Shader = "vec4 sample(vec2 uv) { return foo; }"
	n := New("broken", d, f.rt)
	err := n.Initialize(context.Background())
	require.Error(t, err)
	assert.Same(t, compileErr, err, "compiler diagnostics are returned unmodified")
	assert.Equal(t, StateUnconfigured, n.State())
	assert.Equal(t, 0, f.backend.LiveImages())
	assert.Contains(t, n.Source().Fragment, "return foo;", "the rejected source is kept")

	err = n.Evaluate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
	var ce *gpu.CompileError
	assert.True(t, errors.As(err, &ce))

	// Nothing was installed, so there is nothing to change or update.
	assert.Empty(t, n.Properties())
	require.NoError(t, n.SetPropertyValue("strength", float32(0.01)))
	assert.Empty(t, f.updates)

	// Once the compiler accepts the source, the node can be initialized again.
	f.backend.CompileFunc = nil
	require.NoError(t, n.Initialize(context.Background()))
	assert.Equal(t, StateDirty, n.State())
	assert.Len(t, n.Properties(), 1)
}

func TestNode_ResizeBeforeInitialize(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.backend.CompileFunc = func(_, _ string) error {
		return &gpu.CompileError{Stage: gpu.StageFragment, Log: "syntax error"}
	}
	n := New("normal_map", normalMapDescriptor(), f.rt)
	require.Error(t, n.Initialize(context.Background()))

	require.NoError(t, n.Resize(64, 64))
	assert.Equal(t, 1, f.backend.LiveImages())

	f.backend.CompileFunc = nil
	require.NoError(t, n.Initialize(context.Background()))
	assert.Equal(t, 1, f.backend.LiveImages(), "the resized image is replaced, not leaked")
	assert.Equal(t, 256, n.Image().Width)

	n.Dispose()
	assert.Equal(t, 0, f.backend.LiveImages())
	assert.Equal(t, 0, f.backend.LivePrograms())
}

func TestNode_EvaluateNormalMap(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	n := f.initialized(t, normalMapDescriptor())
	require.NoError(t, n.SetPropertyValue("strength", float32(0.5)))
	height := f.upstream(t)
	f.backend.Reset()

	require.NoError(t, n.Evaluate(context.Background(), map[string]gpu.Image{"height": height}))

	assert.False(t, n.Dirty())
	assert.Equal(t, StateReady, n.State())

	bindings := f.backend.Bindings()
	require.Len(t, bindings, 1)
	assert.Equal(t, height, bindings[0])

	draws := f.backend.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, n.Image(), draws[0].Target)
	assert.Equal(t, f.env.Mesh, draws[0].Quad)
	assert.Equal(t, gpu.QuadVertices, draws[0].Vertices)

	uniforms := f.backend.Uniforms(draws[0].Program)
	assert.Equal(t, map[string]any{
		"height":           int32(0),
		shader.SeedUniform: float32(12.5),
		shader.SizeUniform: [2]float32{256, 128},
		"prop_strength":    float32(0.5),
	}, uniforms)

	_, isUse := f.backend.Commands[0].(*recording.UseProgram)
	assert.True(t, isUse, "program is made current before any binding")
	_, isDraw := f.backend.Commands[len(f.backend.Commands)-1].(*recording.Draw)
	assert.True(t, isDraw, "draw is the last command")
}

func TestNode_EvaluateBindsInputsInOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	n := f.initialized(t, Descriptor{
		Inputs: []string{"base", "mask", "detail"},
		Properties: []*property.Property{
			property.NewColor("tint", "Tint", property.RGBA{R: 1, G: 0.5, A: 1}),
			property.NewBool("invert", "Invert", true),
			property.NewEnum("mode", "Mode", []string{"add", "multiply"}, 1),
			property.NewString("label", "Label", "ignored"),
		},
		Shader: whiteBody,
	})
	base, mask, detail := f.upstream(t), f.upstream(t), f.upstream(t)
	f.backend.Reset()

	require.NoError(t, n.Evaluate(context.Background(), map[string]gpu.Image{
		"detail": detail,
		"base":   base,
		"mask":   mask,
		"extra":  base,
	}))

	assert.Equal(t, map[int]gpu.Image{0: base, 1: mask, 2: detail}, f.backend.Bindings())

	u := f.backend.Uniforms(f.backend.Draws()[0].Program)
	assert.Equal(t, int32(0), u["base"])
	assert.Equal(t, int32(1), u["mask"])
	assert.Equal(t, int32(2), u["detail"])
	assert.Equal(t, [4]float32{1, 0.5, 0, 1}, u["prop_tint"])
	assert.Equal(t, true, u["prop_invert"])
	assert.Equal(t, int32(1), u["prop_mode"])
	assert.NotContains(t, u, "prop_label")
	assert.NotContains(t, u, "extra")
}

func TestNode_EvaluateMissingInput(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	n := f.initialized(t, normalMapDescriptor())
	f.backend.Reset()

	err := n.Evaluate(context.Background(), map[string]gpu.Image{"other": f.upstream(t)})
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.ErrorContains(t, err, `"height"`)

	err = n.Evaluate(context.Background(), map[string]gpu.Image{"height": {}})
	assert.ErrorIs(t, err, ErrMissingInput)

	assert.Empty(t, f.backend.Draws())
	assert.True(t, n.Dirty())
}

func TestNode_SetPropertyValue(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	n := f.initialized(t, normalMapDescriptor())
	require.NoError(t, n.Evaluate(context.Background(), map[string]gpu.Image{"height": f.upstream(t)}))
	require.False(t, n.Dirty())

	require.NoError(t, n.SetPropertyValue("does_not_exist", float32(3)))
	assert.False(t, n.Dirty(), "unknown names change nothing")
	assert.Empty(t, f.updates)

	require.NoError(t, n.SetPropertyValue("strength", float32(0.015)))
	assert.True(t, n.Dirty())
	require.Len(t, f.updates, 1, "one change requests exactly one update")
	assert.Same(t, n, f.updates[0])

	p, _ := n.Property("strength")
	assert.Equal(t, float32(0.015), p.Interface())

	err := n.SetPropertyValue("strength", "loud")
	assert.ErrorIs(t, err, property.ErrTypeMismatch)
	assert.Len(t, f.updates, 1)

	// Changes made through the property itself reach the node as well.
	require.NoError(t, p.SetValue(float32(0.002)))
	assert.Len(t, f.updates, 2)
}

func TestNode_InvalidateAndQueue(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	q := NewUpdateQueue()
	f.rt.Updates = q

	a := f.initialized(t, normalMapDescriptor())
	b := f.initialized(t, Descriptor{Shader: whiteBody})

	a.Invalidate()
	b.Invalidate()
	require.NoError(t, a.SetPropertyValue("strength", float32(0.01)))
	assert.Equal(t, 2, q.Len())

	drained := q.Drain()
	require.Len(t, drained, 2)
	assert.Same(t, a, drained[0])
	assert.Same(t, b, drained[1])
	assert.Equal(t, 0, q.Len())

	a.Invalidate()
	assert.Equal(t, 1, q.Len(), "a drained node can be queued again")
}

func TestNode_Resize(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	n := f.initialized(t, Descriptor{Shader: whiteBody})
	require.NoError(t, n.Evaluate(context.Background(), nil))
	old := n.Image()

	require.NoError(t, n.Resize(512, 512))
	assert.True(t, n.Dirty())
	assert.Len(t, f.updates, 1)
	assert.NotEqual(t, old.ID, n.Image().ID)
	assert.Equal(t, 512, n.Image().Width)
	assert.Equal(t, 512, n.Image().Height)
	assert.Equal(t, 1, f.backend.LiveImages(), "the previous image is released")

	require.NoError(t, n.Evaluate(context.Background(), nil))
	require.Error(t, n.Resize(0, 0))
	assert.True(t, n.Dirty())
	assert.False(t, n.Image().Valid())
	assert.Equal(t, 0, f.backend.LiveImages())
}

func TestNode_Dispose(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	n := f.initialized(t, normalMapDescriptor())
	p, _ := n.Property("strength")

	n.Dispose()
	n.Dispose()
	assert.Equal(t, StateDisposed, n.State())
	assert.Equal(t, 0, f.backend.LivePrograms())
	assert.Equal(t, 0, f.backend.LiveImages())

	var frees int
	for _, c := range f.backend.Commands {
		switch c.(type) {
		case *recording.FreeImage, *recording.FreeProgram:
			frees++
		}
	}
	assert.Equal(t, 2, frees, "resources are released once")

	assert.ErrorIs(t, n.Evaluate(context.Background(), nil), ErrDisposed)
	assert.ErrorIs(t, n.Resize(8, 8), ErrDisposed)
	assert.ErrorIs(t, n.Initialize(context.Background()), ErrDisposed)
	assert.NoError(t, n.SetPropertyValue("strength", float32(0.01)))

	require.NoError(t, p.SetValue(float32(0.01)))
	assert.Empty(t, f.updates, "a disposed node requests no updates")
}

func TestNode_Spans(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	n := f.initialized(t, normalMapDescriptor())
	inputs := map[string]gpu.Image{"height": f.upstream(t)}
	require.NoError(t, n.Evaluate(context.Background(), inputs))

	f.backend.ReleaseImage(n.Image())
	require.Error(t, n.Evaluate(context.Background(), inputs))

	spans := f.spans.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "node.Initialize", spans[0].Name())
	assert.Equal(t, "node.Evaluate", spans[1].Name())
	assert.Equal(t, "node.Evaluate", spans[2].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("node.id", n.ID()))
	assert.Contains(t, spans[0].Attributes(), attribute.String("node.type", "normal_map"))
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
	assert.Equal(t, codes.Error, spans[2].Status().Code)
	assert.NotEmpty(t, spans[2].Events(), "the draw failure is recorded on the span")
}
