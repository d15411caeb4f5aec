package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/halmstraw/finance-app-dsl/lang"
)

// Dump prints the parsed document as JSON, including any syntax
// diagnostics. Unlike check, it does not validate: the dump shows exactly
// what the parser recovered, which is what makes it useful for debugging
// malformed input.
type Dump struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
	Indent int    `       default:"2" help:"Indent width for JSON output."       short:"i"`
}

// Run executes the dump command.
func (d *Dump) Run(ctx context.Context) error {
	doc, err := loadDocument(ctx, d.Source)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "dump"),
				slog.String("source", d.Source))
	}

	data, err := json.MarshalIndent(doc, "", spaces(d.Indent))
	if err != nil {
		return lang.ErrJSONMarshal.Wrap(err)
	}

	fmt.Fprintln(os.Stdout, string(data))

	return nil
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}

	indent := make([]byte, n)
	for i := range indent {
		indent[i] = ' '
	}

	return string(indent)
}
