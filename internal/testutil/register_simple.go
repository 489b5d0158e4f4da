package testutil

import (
	"github.com/specialistvlad/texgrid/internal/node"
	"github.com/specialistvlad/texgrid/internal/registry"
)

// SimpleModule is a test helper for easily creating a mock module that
// registers a single node type.
type SimpleModule struct {
	Name        string
	DisplayName string
	Factory     registry.Factory
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	r.MustRegister(m.Name, m.DisplayName, m.Factory)
}

// ConstantModule registers a node type with no inputs or properties that
// returns a constant color.
func ConstantModule(name string) *SimpleModule {
	return &SimpleModule{
		Name:        name,
		DisplayName: name,
		Factory: func() node.Descriptor {
			return node.Descriptor{Shader: "vec4 sample(vec2 uv) { return vec4(1.0); }"}
		},
	}
}
