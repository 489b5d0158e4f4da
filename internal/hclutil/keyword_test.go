package hclutil

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/texgrid/internal/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return expr
}

func TestPropertyKind(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		src         string
		want        property.Kind
		errContains string
	}{
		{src: "float", want: property.KindFloat},
		{src: "int", want: property.KindInt},
		{src: "bool", want: property.KindBool},
		{src: "enum", want: property.KindEnum},
		{src: "color", want: property.KindColor},
		{src: "string", want: property.KindString},
		{src: "vec3", errContains: "not a valid property type"},
		{src: `"float"`, errContains: "must be a bare keyword"},
		{src: "float.x", errContains: "must be a bare keyword"},
		{src: "list(float)", errContains: "must be a bare keyword"},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()

			kind, diags := PropertyKind(parseExpr(t, tc.src))
			if tc.errContains != "" {
				require.True(t, diags.HasErrors())
				assert.Contains(t, diags.Error(), tc.errContains)
				return
			}
			require.False(t, diags.HasErrors(), diags.Error())
			assert.Equal(t, tc.want, kind)
		})
	}
}
