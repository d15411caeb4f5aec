package cmd

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/halmstraw/finance-app-dsl/lang"
)

// contextKey stores a [kong.Context] value in a [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// loadDocument parses the named source file, or stdin when the name is
// "-", through the read-ahead parse path. The returned Document retains
// the raw text the diagnostic renderer excerpts as Document.Source.
func loadDocument(
	ctx context.Context,
	name string,
	opts ...lang.Option,
) (*lang.Document, error) {
	if name == stdinSource {
		return lang.ParseReader(ctx, os.Stdin, opts...)
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, lang.ErrReadInput.Wrap(err)
	}
	defer file.Close()

	return lang.ParseReader(ctx, file, opts...)
}
