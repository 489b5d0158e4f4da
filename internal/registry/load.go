package registry

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/texgrid/internal/ctxlog"
	"github.com/specialistvlad/texgrid/internal/fsutil"
	"github.com/specialistvlad/texgrid/internal/manifest"
)

// LoadManifests registers every node type declared in the manifest files
// under path. Loading stops at the first file that fails to parse or
// declares a type that is already registered.
func (r *Registry) LoadManifests(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading node types from manifests path...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, manifest.Extensions...)
	if err != nil {
		logger.Error("Failed to walk manifests directory", "path", path, "error", err)
		return err
	}

	if len(filePaths) == 0 {
		logger.Warn("No manifest files found in path", "path", path)
		return nil
	}

	logger.Debug("Found manifest files to load", "files", filePaths)

	var loaded int
	for _, filePath := range filePaths {
		defs, err := r.loader.LoadFile(ctx, filePath)
		if err != nil {
			return fmt.Errorf("failed to load manifest %s: %w", filePath, err)
		}
		for _, def := range defs {
			if err := r.register(def.Name, def.DisplayName(), def.Descriptor, def.FSInformation.FilePath); err != nil {
				return fmt.Errorf("failed to register node type from %s: %w", filePath, err)
			}
			loaded++
		}
		logger.Debug("Successfully loaded node types from manifest", "file", filePath, "count", len(defs))
	}

	logger.Info("Registry loaded successfully.", "node_types_loaded", loaded)
	return nil
}

// WriteDiagnostics prints HCL diagnostics from LoadManifests with source
// snippets.
func (r *Registry) WriteDiagnostics(w io.Writer, diags hcl.Diagnostics) error {
	return r.loader.WriteDiagnostics(w, diags)
}
