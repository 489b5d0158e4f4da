// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file dispatches manifest files to the HCL or YAML decoder.
package manifest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Extensions lists the manifest file extensions Loader understands.
var Extensions = []string{".hcl", ".yaml", ".yml"}

// Loader parses manifest files. It keeps the parsed HCL sources so
// diagnostics can be printed with source snippets.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a Loader with an empty source cache.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// LoadFile decodes every node type declared in the file at path. HCL
// problems are returned as hcl.Diagnostics.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]*Definition, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		hclFile, diags := l.parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, diags
		}
		defs, diags := ParseHCLFile(ctx, hclFile, path)
		if diags.HasErrors() {
			return nil, diags
		}
		return defs, nil

	case ".yaml", ".yml":
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}
		return ParseYAML(ctx, src, path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// WriteDiagnostics prints diags with the offending source lines.
func (l *Loader) WriteDiagnostics(w io.Writer, diags hcl.Diagnostics) error {
	return hcl.NewDiagnosticTextWriter(w, l.parser.Files(), 78, false).WriteDiagnostics(diags)
}
