// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes the YAML form of node type manifests.
package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/texgrid/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	NodeTypes []yamlNodeType `yaml:"node_types"`
}

type yamlNodeType struct {
	Name        string         `yaml:"name"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Inputs      []yamlInput    `yaml:"inputs"`
	Properties  []yamlProperty `yaml:"properties"`
	Shader      string         `yaml:"shader"`
}

// yamlInput accepts either a bare name or a {name, description} mapping.
type yamlInput struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func (in *yamlInput) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&in.Name)
	}
	type plain yamlInput
	return value.Decode((*plain)(in))
}

type yamlProperty struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	DisplayName string   `yaml:"display_name"`
	Description string   `yaml:"description"`
	Default     any      `yaml:"default"`
	Min         *float64 `yaml:"min"`
	Max         *float64 `yaml:"max"`
	Step        *float64 `yaml:"step"`
	Options     []string `yaml:"options"`
}

// ParseYAML decodes a YAML manifest. Unknown keys are rejected.
func ParseYAML(ctx context.Context, src []byte, filePath string) ([]*Definition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing node type definitions from file", "file_path", filePath)

	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var file yamlFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filePath, err)
	}

	definitions := make([]*Definition, 0, len(file.NodeTypes))
	seen := make(map[string]struct{}, len(file.NodeTypes))
	for i, nt := range file.NodeTypes {
		def, err := nt.definition(filePath)
		if err != nil {
			return nil, fmt.Errorf("%s: node_types[%d]: %w", filePath, i, err)
		}
		if _, exists := seen[def.Name]; exists {
			return nil, fmt.Errorf("%s: node_types[%d]: duplicate node type %q", filePath, i, def.Name)
		}
		seen[def.Name] = struct{}{}
		definitions = append(definitions, def)
	}

	logger.Debug("Successfully parsed node type definitions", "count", len(definitions))
	return definitions, nil
}

func (nt yamlNodeType) definition(filePath string) (*Definition, error) {
	def := &Definition{
		Name:          nt.Name,
		Title:         nt.Title,
		Description:   nt.Description,
		FSInformation: NewFSInfo(filePath),
		Shader:        nt.Shader,
	}
	for _, in := range nt.Inputs {
		def.Inputs = append(def.Inputs, InputDefinition(in))
	}
	for _, p := range nt.Properties {
		if p.Type == "" {
			return nil, fmt.Errorf("property %q has no type", p.Name)
		}
		prototype, err := propertySpec{
			Name:        p.Name,
			Type:        p.Type,
			DisplayName: p.DisplayName,
			Default:     p.Default,
			Min:         p.Min,
			Max:         p.Max,
			Step:        p.Step,
			Options:     p.Options,
		}.build()
		if err != nil {
			return nil, err
		}
		def.Properties = append(def.Properties, PropertyDefinition{Description: p.Description, Prototype: prototype})
	}
	if err := def.validate(); err != nil {
		return nil, err
	}
	return def, nil
}
