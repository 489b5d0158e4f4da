package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/texgrid/internal/ctxlog"
	"github.com/specialistvlad/texgrid/internal/gpu"
	"github.com/specialistvlad/texgrid/internal/gpu/recording"
	"github.com/specialistvlad/texgrid/internal/node"
)

// LoadManifests registers the node types declared under the configured
// types path. HCL diagnostics are printed with source snippets before the
// error is returned.
func (a *App) LoadManifests(ctx context.Context) error {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)

	if a.config.TypesPath == "" {
		logger.Debug("No types path configured, using compiled-in node types only.")
		return nil
	}

	err := a.registry.LoadManifests(ctx, a.config.TypesPath)
	if err == nil {
		return nil
	}
	var diags hcl.Diagnostics
	if errors.As(err, &diags) {
		if werr := a.registry.WriteDiagnostics(a.outW, diags); werr != nil {
			logger.Warn("Failed to print diagnostics.", "error", werr)
		}
	}
	return fmt.Errorf("failed to load node types: %w", err)
}

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.")

	if err := a.LoadManifests(ctx); err != nil {
		return err
	}

	switch {
	case a.config.List:
		a.list()
		return nil
	case a.config.Dump != "":
		return a.dump(ctx, a.config.Dump)
	}
	return a.dryRun(ctx)
}

func (a *App) list() {
	for _, name := range a.registry.Names() {
		displayName, _ := a.registry.DisplayName(name)
		source := a.registry.Source(name)
		if source == "" {
			source = "builtin"
		}
		fmt.Fprintf(a.outW, "%-24s %-24s %s\n", name, displayName, source)
	}
}

// dryRunner holds the recording backend and environment shared by every
// node of one dry run.
type dryRunner struct {
	backend *recording.Backend
	queue   *node.UpdateQueue
	rt      node.Runtime
}

func (a *App) newDryRunner() *dryRunner {
	backend := recording.New()
	queue := node.NewUpdateQueue()
	env := &node.StaticEnvironment{
		Seed:   a.config.Seed,
		Width:  a.config.Width,
		Height: a.config.Height,
		Mesh:   backend.NewQuad(),
	}
	return &dryRunner{
		backend: backend,
		queue:   queue,
		rt:      node.Runtime{Backend: backend, Env: env, Updates: queue},
	}
}

func (a *App) dump(ctx context.Context, name string) error {
	dr := a.newDryRunner()
	n, err := a.registry.Build(ctx, name, dr.rt)
	if err != nil {
		return err
	}
	defer n.Dispose()

	src := n.Source()
	fmt.Fprintf(a.outW, "// %s: vertex\n%s\n// %s: fragment\n%s", name, src.Vertex, name, src.Fragment)
	return nil
}

// dryRun builds one node of every registered type, queues it, then drains the
// queue and evaluates each node with a blank placeholder image on every
// input. A line is printed per type.
func (a *App) dryRun(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	dr := a.newDryRunner()

	placeholder, err := dr.backend.NewImage(a.config.Width, a.config.Height)
	if err != nil {
		return fmt.Errorf("allocate placeholder input: %w", err)
	}
	defer dr.backend.ReleaseImage(placeholder)

	names := a.registry.Names()
	failures := make(map[string]error)

	var built []*node.Node
	defer func() {
		for _, n := range built {
			n.Dispose()
		}
	}()
	for _, name := range names {
		n, err := a.registry.Build(ctx, name, dr.rt)
		if err != nil {
			failures[name] = err
			continue
		}
		built = append(built, n)
		n.Invalidate()
	}

	for _, n := range dr.queue.Drain() {
		inputs := make(map[string]gpu.Image, len(n.Inputs()))
		for _, in := range n.Inputs() {
			inputs[in] = placeholder
		}
		if err := n.Evaluate(ctx, inputs); err != nil {
			failures[n.TypeName()] = err
		}
	}

	for _, name := range names {
		if err, failed := failures[name]; failed {
			logger.Error("Node type failed dry run.", "type", name, "error", err)
			fmt.Fprintf(a.outW, "error %-24s %v\n", name, err)
			continue
		}
		fmt.Fprintf(a.outW, "ok    %s\n", name)
	}

	logger.Info("Dry run finished.", "node_types", len(names), "failed", len(failures), "draws", len(dr.backend.Draws()))
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d node types failed", len(failures), len(names))
	}
	return nil
}
