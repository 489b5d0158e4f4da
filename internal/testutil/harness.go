package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/texgrid/internal/app"
	"github.com/specialistvlad/texgrid/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Output holds everything the app wrote, logs included.
	Output string
	Err    error
	App    *app.App
}

// Options tweak the configuration the harness builds the app with.
type Options struct {
	Width  int
	Height int
	Seed   float32
	List   bool
	Dump   string
	// LoadOnly stops after manifest loading instead of calling App.Run.
	LoadOnly bool
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context. files maps paths relative to the
// types directory to their content. Without modules the compiled-in ones are
// registered.
func RunIntegrationTest(t *testing.T, files map[string]string, opts Options, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts, modules...)
}

// RunIntegrationTestWithContext provides a standardized harness for running integration
// tests with a specific context provided by the caller.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts Options, modules ...registry.Module) *HarnessResult {
	t.Helper()

	// 1. Create a temporary types directory for the test.
	typesDir := filepath.Join(t.TempDir(), "types")
	require.NoError(t, os.Mkdir(typesDir, 0o755))

	// 2. Write all manifest files, creating subdirectories as needed.
	for name, content := range files {
		filePath := filepath.Join(typesDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	if opts.Width == 0 {
		opts.Width = 64
	}
	if opts.Height == 0 {
		opts.Height = 64
	}
	appConfig, err := app.NewConfig(app.Config{
		TypesPath: typesDir,
		LogLevel:  "debug",
		LogFormat: "text",
		Width:     opts.Width,
		Height:    opts.Height,
		Seed:      opts.Seed,
		List:      opts.List,
		Dump:      opts.Dump,
	})
	require.NoError(t, err)

	output := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(output, appConfig, modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			Output: output.String(),
			Err:    fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	if opts.LoadOnly {
		err = testApp.LoadManifests(ctx)
	} else {
		err = testApp.Run(ctx)
	}

	if os.Getenv("TEXGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Output for %s ---\n%s", t.Name(), output.String())
	}

	return &HarnessResult{
		Output: output.String(),
		Err:    err,
		App:    testApp,
	}
}
