package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/halmstraw/finance-app-dsl/lang"
	"github.com/halmstraw/finance-app-dsl/log"
)

// Check runs the full front-end pipeline over a source file and reports
// every diagnostic. The command fails only when an error-severity
// diagnostic exists; warnings alone exit zero.
type Check struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	doc, err := loadDocument(ctx, c.Source)
	if err != nil {
		return err
	}

	app, diags, err := lang.CompileDocument(ctx, doc)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "check"),
				slog.String("source", c.Source))
	}

	log.DebugContext(ctx, "check complete",
		slog.String("app", app.Name),
		slog.Int("diagnostics", len(diags)))

	renderDiagnostics(os.Stdout, doc.Source, diags)

	if lang.HasErrors(diags) {
		return ErrCheckFailed.With(slog.String("source", c.Source))
	}

	return nil
}
