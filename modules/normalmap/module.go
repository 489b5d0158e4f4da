// Package normalmap provides the "normal_map" node type, which derives a
// tangent-space normal map from a grayscale height input.
package normalmap

import (
	"github.com/specialistvlad/texgrid/internal/node"
	"github.com/specialistvlad/texgrid/internal/property"
	"github.com/specialistvlad/texgrid/internal/registry"
)

// TypeName is the registry key of the node type.
const TypeName = "normal_map"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Shader samples the height at the pixel and its right and upper neighbours
// one texel away, and builds the normal from the two surface tangents.
const Shader = `vec4 sample(vec2 uv)
{
    vec2 texel = vec2(1.0) / _textureSize;

    float h0 = abs(texture2D(height, uv).r) * prop_strength * 0.5;
    float hx = abs(texture2D(height, uv + vec2(texel.x, 0.0)).r) * prop_strength * 0.5;
    float hy = abs(texture2D(height, uv + vec2(0.0, texel.y)).r) * prop_strength * 0.5;

    vec3 tangent = vec3(texel.x, 0.0, hx - h0);
    vec3 bitangent = vec3(0.0, texel.y, hy - h0);
    vec3 normal = normalize(cross(tangent, bitangent));

    return vec4(normal * 0.5 + 0.5, 1.0);
}
`

// Descriptor returns a new normal map descriptor.
func Descriptor() node.Descriptor {
	return node.Descriptor{
		Title:  "Normal Map",
		Inputs: []string{"height"},
		Properties: []*property.Property{
			property.NewFloat("strength", "Strength", 0.001, -0.02, 0.02, 0.00001),
		},
		Shader: Shader,
	}
}

// Register registers the node type with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(TypeName, "Normal Map", Descriptor)
}
