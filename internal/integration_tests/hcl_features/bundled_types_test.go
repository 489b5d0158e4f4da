package integration_tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/texgrid/internal/app"
	"github.com/specialistvlad/texgrid/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Test for: the node types shipped in nodetypes/ load and evaluate
func TestHCLFeatures_BundledTypes_DryRun(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := filepath.Join("..", "..", "..", "nodetypes")
	_, err := os.Stat(dir)
	require.NoError(t, err)

	cfg, err := app.NewConfig(app.Config{TypesPath: dir, LogLevel: "info", Width: 32, Height: 32})
	require.NoError(t, err)
	out := &testutil.SafeBuffer{}
	a := app.NewApp(out, cfg)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err, out.String())
	for _, name := range []string{"blend", "checker", "invert", "normal_map", "white_noise"} {
		testutil.AssertNodeTypeOK(t, &testutil.HarnessResult{Output: out.String()}, name)
	}
	require.Contains(t, out.String(), "node_types_loaded=4")
}
