// Package hclutil holds small helpers shared by the HCL decoders.
package hclutil

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/texgrid/internal/property"
)

// Keyword reads an expression that must be a single bare identifier, such as
// the `float` in `type = float`, and returns it. what names the attribute in
// diagnostics.
func Keyword(expr hcl.Expression, what string) (string, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	// AbsTraversalForExpr accepts exactly the shape of a bare keyword.
	traversal, hclDiags := hcl.AbsTraversalForExpr(expr)
	if hclDiags.HasErrors() || len(traversal) != 1 || traversal.RootName() == "" {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid %s specification", what),
			Detail:   fmt.Sprintf("The '%s' attribute must be a bare keyword, not a string or a complex expression.", what),
			Subject:  expr.Range().Ptr(),
		})
		return "", diags
	}
	return traversal.RootName(), diags
}

var propertyKinds = []property.Kind{
	property.KindFloat,
	property.KindInt,
	property.KindBool,
	property.KindEnum,
	property.KindColor,
	property.KindString,
}

// PropertyKind decodes a property type keyword.
func PropertyKind(expr hcl.Expression) (property.Kind, hcl.Diagnostics) {
	name, diags := Keyword(expr, "type")
	if diags.HasErrors() {
		return 0, diags
	}

	kind, ok := property.ParseKind(name)
	if !ok {
		supported := make([]string, len(propertyKinds))
		for i, k := range propertyKinds {
			supported[i] = k.String()
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported property type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a valid property type. Supported types are: %s.", name, strings.Join(supported, ", ")),
			Subject:  expr.Range().Ptr(),
		})
		return 0, diags
	}
	return kind, diags
}
