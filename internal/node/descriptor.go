package node

import (
	"fmt"

	"github.com/specialistvlad/texgrid/internal/property"
)

// Descriptor is everything a node type supplies: its inputs, its properties
// with their display metadata and ranges, and the body of
//
//	vec4 sample(vec2 uv)
//
// written against the assembled preamble.
type Descriptor struct {
	Title      string
	Inputs     []string
	Properties []*property.Property
	Shader     string
}

// Clone returns a deep copy; the properties are independent of d's.
func (d Descriptor) Clone() Descriptor {
	props := make([]*property.Property, len(d.Properties))
	for i, p := range d.Properties {
		props[i] = p.Clone()
	}
	return Descriptor{
		Title:      d.Title,
		Inputs:     append([]string(nil), d.Inputs...),
		Properties: props,
		Shader:     d.Shader,
	}
}

// Validate checks that inputs and properties are named and unique.
func (d Descriptor) Validate() error {
	seen := make(map[string]struct{}, len(d.Inputs))
	for i, name := range d.Inputs {
		if name == "" {
			return fmt.Errorf("input %d: %w", i, ErrEmptyName)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("input %q: %w", name, ErrDuplicateName)
		}
		seen[name] = struct{}{}
	}

	seen = make(map[string]struct{}, len(d.Properties))
	for i, p := range d.Properties {
		if p == nil || p.Name == "" {
			return fmt.Errorf("property %d: %w", i, ErrEmptyName)
		}
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("property %q: %w", p.Name, ErrDuplicateName)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}
