package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func FuzzParseString(f *testing.F) {
	f.Add(financeSource)
	f.Add("")
	f.Add("app")
	f.Add("model M { a: string required }")
	f.Add("screen S { layout: { type: stack } }")
	f.Add(`api { baseUrl: "x" }`)
	f.Add("}}}{{{")
	f.Add(`app A { name: "unterminated`)
	f.Add("model ü { id: string }")

	f.Fuzz(func(t *testing.T, src string) {
		doc, err := ParseString(context.Background(), src, WithCache(false))

		// Blank input is the only fatal parse condition; anything else must
		// produce a document, however degraded.
		if err != nil {
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("unexpected error: %v", err)
			}

			if strings.TrimSpace(src) != "" {
				t.Errorf("non-blank input %q reported as empty", src)
			}

			return
		}

		if doc == nil {
			t.Fatal("nil document without error")
		}

		// The extractor and reconciler must tolerate whatever the parser
		// accepted.
		if _, err := Reconcile(doc, Extract(src)); err != nil &&
			!errors.Is(err, ErrDocumentParse) {
			t.Errorf("reconcile error: %v", err)
		}
	})
}

func FuzzLex(f *testing.F) {
	f.Add(financeSource)
	f.Add(`"\x"`)
	f.Add("3.14 -7 1e9")
	f.Add("/* unterminated")

	f.Fuzz(func(t *testing.T, src string) {
		toks := Lex(src)

		if len(toks) == 0 {
			t.Fatal("token stream must end with EOF")
		}

		if last := toks[len(toks)-1]; last.Kind != KindEOF {
			t.Errorf("last token = %v, want EOF", last.Kind)
		}

		for _, tok := range toks[:len(toks)-1] {
			if tok.Kind == KindEOF {
				t.Error("EOF token before end of stream")
			}
		}
	})
}
