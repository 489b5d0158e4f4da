// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes `node_type` blocks from HCL manifests.
package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/texgrid/internal/ctxlog"
)

// rootSchema defines the top-level structure of the file, expecting one or more 'node_type' blocks.
type rootSchema struct {
	NodeTypes []*hclNodeType `hcl:"node_type,block"`
}

// hclNodeType represents a single 'node_type' block in the HCL file for decoding purposes.
type hclNodeType struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

var nodeTypeBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "title"},
		{Name: "description"},
		// `shader` is required, but we check for its existence manually
		// to provide a better error message.
		{Name: "shader"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "input", LabelNames: []string{"name"}},
		{Type: "property", LabelNames: []string{"name"}},
	},
}

var inputBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
	},
}

// ParseHCLFile decodes an HCL file that contains one or more 'node_type' blocks.
func ParseHCLFile(ctx context.Context, hclFile *hcl.File, filePath string) ([]*Definition, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing node type definitions from file", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if hclFile == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, allDiags
	}

	schema := &rootSchema{}
	diags := gohcl.DecodeBody(hclFile.Body, nil, schema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	definitions := make([]*Definition, 0, len(schema.NodeTypes))
	seen := make(map[string]struct{}, len(schema.NodeTypes))

	for _, parsed := range schema.NodeTypes {
		bodyContent, contentDiags := parsed.Body.Content(nodeTypeBodySchema)
		allDiags = append(allDiags, contentDiags...)
		if contentDiags.HasErrors() {
			continue // Skip this node type but continue parsing others
		}

		if _, exists := seen[parsed.Name]; exists {
			allDiags = append(allDiags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate node type definition",
				Detail:   fmt.Sprintf("A node type named '%s' has already been defined in this file.", parsed.Name),
				Subject:  parsed.Body.MissingItemRange().Ptr(),
			})
			continue
		}
		seen[parsed.Name] = struct{}{}

		definition := &Definition{
			Name:          parsed.Name,
			FSInformation: NewFSInfo(filePath),
		}

		stringAttrs := []struct {
			name   string
			target *string
		}{
			{"title", &definition.Title},
			{"description", &definition.Description},
			{"shader", &definition.Shader},
		}
		for _, sa := range stringAttrs {
			if attr, exists := bodyContent.Attributes[sa.name]; exists {
				allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, sa.target)...)
			}
		}

		if definition.Shader == "" {
			missing := parsed.Body.MissingItemRange()
			allDiags = append(allDiags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing 'shader' attribute",
				Detail:   fmt.Sprintf("Node type '%s' must define the body of its sample function in a 'shader' attribute.", parsed.Name),
				Subject:  &missing,
			})
		}

		var inputDiags hcl.Diagnostics
		definition.Inputs, inputDiags = parseInputs(bodyContent.Blocks)
		allDiags = append(allDiags, inputDiags...)

		var propertyDiags hcl.Diagnostics
		definition.Properties, propertyDiags = parseProperties(bodyContent.Blocks)
		allDiags = append(allDiags, propertyDiags...)

		definitions = append(definitions, definition)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Successfully parsed node type definitions", "count", len(definitions))
	return definitions, allDiags
}

// parseInputs decodes all 'input' blocks, keeping their declaration order.
func parseInputs(blocks hcl.Blocks) ([]InputDefinition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var inputs []InputDefinition
	seen := make(map[string]struct{})

	for _, block := range blocks.OfType("input") {
		// The schema guarantees us one label.
		name := block.Labels[0]

		if _, exists := seen[name]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate input definition",
				Detail:   fmt.Sprintf("An input named '%s' has already been defined.", name),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[name] = struct{}{}

		bodyContent, contentDiags := block.Body.Content(inputBodySchema)
		diags = append(diags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}

		input := InputDefinition{Name: name}
		if attr, exists := bodyContent.Attributes["description"]; exists {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &input.Description)...)
		}
		inputs = append(inputs, input)
	}

	return inputs, diags
}
