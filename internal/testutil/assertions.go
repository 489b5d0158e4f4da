package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertNodeTypeOK checks the output of a dry run for the success line of a
// node type.
func AssertNodeTypeOK(t *testing.T, result *HarnessResult, typeName string) {
	t.Helper()

	line := fmt.Sprintf("ok    %s\n", typeName)
	require.True(t,
		strings.Contains(result.Output, line),
		"expected dry run to report node type '%s' as ok", typeName,
	)
}

// AssertNodeTypeFailed checks the output of a dry run for the error line of
// a node type.
func AssertNodeTypeFailed(t *testing.T, result *HarnessResult, typeName string) {
	t.Helper()

	prefix := fmt.Sprintf("error %-24s ", typeName)
	require.True(t,
		strings.Contains(result.Output, prefix),
		"expected dry run to report node type '%s' as failed", typeName,
	)
}
