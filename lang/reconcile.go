package lang

import (
	"context"
	"log/slog"
)

// Reconcile merges a grammar-parsed Document with a direct-text Extraction
// into a single Application.
//
// The grammar tree is the source of truth: application metadata and every
// collection it populated are taken as-is. Extraction results fill in only
// collections the grammar tree could not populate, which happens when a
// malformed section was skipped during error recovery. Empty collections
// after reconciliation are not an error.
//
// Reconcile fails only when the grammar tree is entirely absent, returning
// [ErrDocumentParse].
func Reconcile(doc *Document, ext *Extraction) (*Application, error) {
	if doc == nil || doc.App == nil {
		return nil, ErrDocumentParse
	}

	// Copy the root so a cached Document is never mutated.
	app := *doc.App

	if ext != nil {
		if len(app.Models) == 0 && len(ext.Models) > 0 {
			app.Models = ext.Models
		}

		if len(app.Screens) == 0 && len(ext.Screens) > 0 {
			app.Screens = ext.Screens
		}

		if app.API == nil && ext.API != nil {
			app.API = ext.API
		}
	}

	return &app, nil
}

// Compile runs the full front-end pipeline: lex, parse, extract, reconcile,
// validate. The returned diagnostics combine syntax and validation
// findings; the error is non-nil only for blank input or a missing grammar
// tree. Each invocation is independent and may run concurrently with
// others.
func Compile(
	ctx context.Context,
	src string,
	opts ...Option,
) (*Application, []Diagnostic, error) {
	doc, err := ParseString(ctx, src, opts...)
	if err != nil {
		return nil, nil, err
	}

	return CompileDocument(ctx, doc, opts...)
}

// CompileDocument finishes the pipeline for an already parsed Document:
// extract, reconcile, validate. It is the continuation of [Compile] for
// callers that obtained their Document from [ParseReader].
func CompileDocument(
	ctx context.Context,
	doc *Document,
	opts ...Option,
) (*Application, []Diagnostic, error) {
	o := makeOptions(opts...)

	if doc == nil {
		return nil, nil, ErrDocumentParse
	}

	app, err := Reconcile(doc, Extract(doc.Source))
	if err != nil {
		return nil, doc.Syntax, err
	}

	diags := make([]Diagnostic, 0, len(doc.Syntax))
	diags = append(diags, doc.Syntax...)
	diags = append(diags, Validate(app)...)

	o.logger.DebugContext(ctx, "compile complete",
		slog.String("app", app.Name),
		slog.Int("models", len(app.Models)),
		slog.Int("screens", len(app.Screens)),
		slog.Int("diagnostics", len(diags)))

	return app, diags, nil
}
