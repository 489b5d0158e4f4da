// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes `property` blocks and converts their literal values.
package manifest

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/texgrid/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var propertyBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
		{Name: "display_name"},
		{Name: "description"},
		{Name: "default"},
		{Name: "min"},
		{Name: "max"},
		{Name: "step"},
		{Name: "options"},
	},
}

// parseProperties decodes all 'property' blocks, keeping their declaration order.
func parseProperties(blocks hcl.Blocks) ([]PropertyDefinition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var props []PropertyDefinition
	seen := make(map[string]struct{})

	for _, block := range blocks.OfType("property") {
		name := block.Labels[0]

		if _, exists := seen[name]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate property definition",
				Detail:   fmt.Sprintf("A property named '%s' has already been defined.", name),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[name] = struct{}{}

		def, propDiags := parseProperty(block)
		diags = append(diags, propDiags...)
		if propDiags.HasErrors() {
			continue
		}
		props = append(props, def)
	}

	return props, diags
}

func parseProperty(block *hcl.Block) (PropertyDefinition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	spec := propertySpec{Name: block.Labels[0]}

	bodyContent, contentDiags := block.Body.Content(propertyBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return PropertyDefinition{}, diags
	}
	attrs := bodyContent.Attributes

	// Manually check for the required 'type' attribute for a better error.
	typeAttr, exists := attrs["type"]
	if !exists {
		missingItemRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'type' attribute",
			Detail:   "The 'type' attribute is required for all property blocks.",
			Subject:  &missingItemRange,
		})
		return PropertyDefinition{}, diags
	}
	kind, kindDiags := hclutil.PropertyKind(typeAttr.Expr)
	diags = append(diags, kindDiags...)
	if kindDiags.HasErrors() {
		return PropertyDefinition{}, diags
	}
	spec.Type = kind.String()

	var def PropertyDefinition
	if attr, exists := attrs["display_name"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &spec.DisplayName)...)
	}
	if attr, exists := attrs["description"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &def.Description)...)
	}

	bounds := []struct {
		name   string
		target **float64
	}{
		{"min", &spec.Min},
		{"max", &spec.Max},
		{"step", &spec.Step},
	}
	for _, b := range bounds {
		attr, exists := attrs[b.name]
		if !exists {
			continue
		}
		var f float64
		valDiags := decodeLiteral(attr, cty.Number, &f)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() {
			*b.target = &f
		}
	}

	if attr, exists := attrs["options"]; exists {
		diags = append(diags, decodeLiteral(attr, cty.List(cty.String), &spec.Options)...)
	}

	if attr, exists := attrs["default"]; exists {
		// A nil eval context is used because defaults must be literal values.
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() {
			v, err := goValue(val)
			if err != nil {
				diags = append(diags, invalidDefault(attr, err))
			}
			spec.Default = v
		}
	}

	if diags.HasErrors() {
		return PropertyDefinition{}, diags
	}

	prototype, err := spec.build()
	if err != nil {
		subject := block.DefRange
		if attr, exists := attrs["default"]; exists && errors.Is(err, ErrInvalidDefault) {
			subject = attr.Expr.Range()
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid property definition",
			Detail:   err.Error(),
			Subject:  &subject,
		})
		return PropertyDefinition{}, diags
	}
	def.Prototype = prototype
	return def, diags
}

// decodeLiteral evaluates a literal attribute, converts it to ty and stores
// it in target.
func decodeLiteral(attr *hcl.Attribute, ty cty.Type, target any) hcl.Diagnostics {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	converted, err := convert.Convert(val, ty)
	if err == nil {
		err = gocty.FromCtyValue(converted, target)
	}
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid value for '%s'", attr.Name),
			Detail:   fmt.Sprintf("Expected %s: %s.", ty.FriendlyName(), err),
			Subject:  attr.Expr.Range().Ptr(),
		})
	}
	return diags
}

func invalidDefault(attr *hcl.Attribute, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid default value",
		Detail:   err.Error(),
		Subject:  attr.Expr.Range().Ptr(),
	}
}

// goValue turns a literal into the plain Go values propertySpec expects.
func goValue(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.New("value must be known")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, err
		}
		return f, nil
	case ty.IsTupleType() || ty.IsListType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			x, err := goValue(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
}
