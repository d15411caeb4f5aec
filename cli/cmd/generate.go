package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/halmstraw/finance-app-dsl/gen"
	"github.com/halmstraw/finance-app-dsl/lang"
	"github.com/halmstraw/finance-app-dsl/log"
)

// Generate validates a source file and writes platform scaffolds. The
// source must check clean of error-severity diagnostics before anything is
// written.
type Generate struct {
	Source   string   `arg:"" default:"-"  help:"Source input file or '-' for stdin."            name:"source"`
	Platform []string `       enum:"${platforms}" help:"Target platform(s); defaults to the app's declared platforms." optional:"" short:"p"`
	Out      string   `       default:"."  help:"Output directory."                               type:"path"`
	DryRun   bool     `       help:"List the files that would be written without writing them."`
}

// PlatformEnum returns the supported target platforms as a kong enum
// value, keeping the flag in lockstep with the emitters.
func PlatformEnum() string {
	var names []string

	for platform := range lang.Platforms() {
		names = append(names, string(platform))
	}

	return strings.Join(names, ",")
}

// Run executes the generate command.
func (g *Generate) Run(ctx context.Context) error {
	doc, err := loadDocument(ctx, g.Source)
	if err != nil {
		return err
	}

	app, diags, err := lang.CompileDocument(ctx, doc)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "generate"),
				slog.String("source", g.Source))
	}

	renderDiagnostics(os.Stdout, doc.Source, diags)

	if lang.HasErrors(diags) {
		return ErrCheckFailed.With(slog.String("source", g.Source))
	}

	platforms := make([]lang.Platform, 0, len(g.Platform))

	for _, name := range g.Platform {
		platform, ok := lang.ParsePlatform(name)
		if !ok {
			return gen.ErrUnknownPlatform.With(slog.String("platform", name))
		}

		platforms = append(platforms, platform)
	}

	out, err := gen.Generate(ctx, app, platforms, gen.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	for _, path := range out.Paths() {
		target := filepath.Join(g.Out, path)

		if g.DryRun {
			log.InfoContext(ctx, "would write", slog.String("file", target))

			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return ErrWriteOutput.With(slog.String("file", target)).Wrap(err)
		}

		if err := os.WriteFile(target, []byte(out[path]), 0o644); err != nil {
			return ErrWriteOutput.With(slog.String("file", target)).Wrap(err)
		}

		log.DebugContext(ctx, "wrote", slog.String("file", target))
	}

	log.InfoContext(ctx, "generation complete",
		slog.String("app", app.Name),
		slog.Int("files", len(out)),
		slog.Bool("dry-run", g.DryRun))

	return nil
}
