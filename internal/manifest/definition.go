// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Definition, the format-agnostic representation of a node
// type manifest, and the conversion of raw property declarations into typed
// properties.
package manifest

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/texgrid/internal/node"
	"github.com/specialistvlad/texgrid/internal/property"
)

var (
	// ErrUnknownPropertyType is returned for a property type keyword outside
	// float, int, bool, enum, color and string.
	ErrUnknownPropertyType = errors.New("unknown property type")

	// ErrInvalidDefault is returned when a default value does not fit the
	// property type.
	ErrInvalidDefault = errors.New("invalid default value")

	// ErrUnsupportedFormat is returned for files that are neither HCL nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
)

// Definition is a node type declared in a manifest file.
type Definition struct {
	Name          string
	Title         string
	Description   string
	FSInformation *FSInfo
	Inputs        []InputDefinition
	Properties    []PropertyDefinition
	Shader        string
}

// InputDefinition is one input slot; its position is its texture unit.
type InputDefinition struct {
	Name        string
	Description string
}

// PropertyDefinition is one declared property. Prototype holds the default
// value and editing range; every descriptor gets its own clone.
type PropertyDefinition struct {
	Description string
	Prototype   *property.Property
}

// DisplayName returns the title, falling back to the type name.
func (d *Definition) DisplayName() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Descriptor builds a fresh node descriptor. Successive calls share nothing
// mutable.
func (d *Definition) Descriptor() node.Descriptor {
	inputs := make([]string, len(d.Inputs))
	for i, in := range d.Inputs {
		inputs[i] = in.Name
	}
	props := make([]*property.Property, len(d.Properties))
	for i, p := range d.Properties {
		props[i] = p.Prototype.Clone()
	}
	return node.Descriptor{
		Title:      d.DisplayName(),
		Inputs:     inputs,
		Properties: props,
		Shader:     d.Shader,
	}
}

func (d *Definition) validate() error {
	if d.Name == "" {
		return errors.New("node type has no name")
	}
	if d.Shader == "" {
		return fmt.Errorf("node type %q has no shader", d.Name)
	}
	if err := d.Descriptor().Validate(); err != nil {
		return fmt.Errorf("node type %q: %w", d.Name, err)
	}
	return nil
}

// propertySpec is a property declaration before type checking. Default holds
// nil, bool, string, a number or a []any of numbers, as produced by both
// decoders.
type propertySpec struct {
	Name        string
	Type        string
	DisplayName string
	Default     any
	Min         *float64
	Max         *float64
	Step        *float64
	Options     []string
}

func (s propertySpec) build() (*property.Property, error) {
	kind, ok := property.ParseKind(s.Type)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPropertyType, s.Type)
	}
	displayName := s.DisplayName
	if displayName == "" {
		displayName = s.Name
	}

	switch kind {
	case property.KindFloat:
		value, err := s.number(property.DefaultValue)
		if err != nil {
			return nil, err
		}
		return property.NewFloat(s.Name, displayName,
			float32(value),
			float32(orDefault(s.Min, property.DefaultMin)),
			float32(orDefault(s.Max, property.DefaultMax)),
			float32(orDefault(s.Step, property.DefaultStep)),
		), nil

	case property.KindInt:
		value, err := s.number(property.DefaultValue)
		if err != nil {
			return nil, err
		}
		bounds := []float64{
			value,
			orDefault(s.Min, property.DefaultMin),
			orDefault(s.Max, property.DefaultMax),
			orDefault(s.Step, property.DefaultStep),
		}
		ints := make([]int32, len(bounds))
		for i, b := range bounds {
			if b != math.Trunc(b) || b < math.MinInt32 || b > math.MaxInt32 {
				return nil, fmt.Errorf("%w: int property %q needs whole numbers, got %v", ErrInvalidDefault, s.Name, b)
			}
			ints[i] = int32(b)
		}
		return property.NewInt(s.Name, displayName, ints[0], ints[1], ints[2], ints[3]), nil

	case property.KindBool:
		switch v := s.Default.(type) {
		case nil:
			return property.NewBool(s.Name, displayName, false), nil
		case bool:
			return property.NewBool(s.Name, displayName, v), nil
		}
		return nil, s.invalid()

	case property.KindEnum:
		if len(s.Options) == 0 {
			return nil, fmt.Errorf("enum property %q declares no options", s.Name)
		}
		index, err := s.enumIndex()
		if err != nil {
			return nil, err
		}
		return property.NewEnum(s.Name, displayName, s.Options, index), nil

	case property.KindColor:
		c, err := s.color()
		if err != nil {
			return nil, err
		}
		return property.NewColor(s.Name, displayName, c), nil

	case property.KindString:
		switch v := s.Default.(type) {
		case nil:
			return property.NewString(s.Name, displayName, ""), nil
		case string:
			return property.NewString(s.Name, displayName, v), nil
		}
		return nil, s.invalid()
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownPropertyType, s.Type)
}

func (s propertySpec) invalid() error {
	return fmt.Errorf("%w for %s property %q: %v", ErrInvalidDefault, s.Type, s.Name, s.Default)
}

func (s propertySpec) number(fallback float64) (float64, error) {
	if s.Default == nil {
		return fallback, nil
	}
	if f, ok := asFloat(s.Default); ok {
		return f, nil
	}
	return 0, s.invalid()
}

func (s propertySpec) enumIndex() (int, error) {
	switch v := s.Default.(type) {
	case nil:
		return 0, nil
	case string:
		for i, opt := range s.Options {
			if opt == v {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: %q is not an option of %q", ErrInvalidDefault, v, s.Name)
	}
	f, ok := asFloat(s.Default)
	if !ok || f != math.Trunc(f) || f < 0 || int(f) >= len(s.Options) {
		return 0, s.invalid()
	}
	return int(f), nil
}

func (s propertySpec) color() (property.RGBA, error) {
	switch v := s.Default.(type) {
	case nil:
		return property.RGBA{A: 1}, nil
	case string:
		c, err := property.ParseHex(v)
		if err != nil {
			return property.RGBA{}, fmt.Errorf("%w: %w", ErrInvalidDefault, err)
		}
		return c, nil
	case []any:
		if len(v) != 3 && len(v) != 4 {
			return property.RGBA{}, s.invalid()
		}
		ch := [4]float32{0, 0, 0, 1}
		for i, x := range v {
			f, ok := asFloat(x)
			if !ok {
				return property.RGBA{}, s.invalid()
			}
			ch[i] = float32(f)
		}
		return property.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
	}
	return property.RGBA{}, s.invalid()
}

func orDefault(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}
