package lang

import (
	"context"
	"errors"
	"testing"
)

func TestReconcile_NilDocument(t *testing.T) {
	for _, tt := range []struct {
		name string
		doc  *Document
	}{
		{"nil document", nil},
		{"missing tree", &Document{}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			app, err := Reconcile(tt.doc, Extract(""))

			if !errors.Is(err, ErrDocumentParse) {
				t.Errorf("err = %v, want ErrDocumentParse", err)
			}

			if app != nil {
				t.Errorf("app = %+v, want nil", app)
			}
		})
	}
}

func TestReconcile_GrammarWins(t *testing.T) {
	doc := &Document{App: &Application{
		Name:   "FinanceApp",
		Models: []*Model{{Name: "Account"}},
	}}

	ext := &Extraction{
		Models: []*Model{{Name: "Shadow"}},
		API:    &API{BaseURL: "https://shadow.example.com"},
	}

	app, err := Reconcile(doc, ext)
	if err != nil {
		t.Fatal(err)
	}

	if len(app.Models) != 1 || app.Models[0].Name != "Account" {
		t.Errorf("models = %+v, want grammar result", app.Models)
	}

	// API was absent from the grammar tree, so extraction fills it in.
	if app.API == nil || app.API.BaseURL != "https://shadow.example.com" {
		t.Errorf("API = %+v, want extraction fallback", app.API)
	}
}

func TestReconcile_ExtractionFillsGaps(t *testing.T) {
	doc := &Document{App: &Application{Name: "FinanceApp"}}

	ext := &Extraction{
		Models:  []*Model{{Name: "Account"}},
		Screens: []*Screen{{Name: "AccountList", Title: "AccountList"}},
	}

	app, err := Reconcile(doc, ext)
	if err != nil {
		t.Fatal(err)
	}

	if len(app.Models) != 1 || len(app.Screens) != 1 {
		t.Errorf("models = %d, screens = %d, want 1 each",
			len(app.Models), len(app.Screens))
	}
}

func TestReconcile_DoesNotMutateDocument(t *testing.T) {
	doc := &Document{App: &Application{Name: "FinanceApp"}}

	if _, err := Reconcile(doc, &Extraction{
		Models: []*Model{{Name: "Account"}},
	}); err != nil {
		t.Fatal(err)
	}

	if doc.App.Models != nil {
		t.Error("reconciliation wrote extraction results into the document")
	}
}

func TestReconcile_NilExtraction(t *testing.T) {
	doc := &Document{App: &Application{Name: "FinanceApp"}}

	app, err := Reconcile(doc, nil)
	if err != nil {
		t.Fatal(err)
	}

	if app.Name != "FinanceApp" {
		t.Errorf("name = %q", app.Name)
	}
}

func TestCompile_Complete(t *testing.T) {
	app, diags, err := Compile(t.Context(), financeSource, WithCache(false))
	if err != nil {
		t.Fatal(err)
	}

	if HasErrors(diags) {
		t.Fatalf("unexpected errors: %v", rules(diags, SeverityError))
	}

	if app.Name != "FinanceApp" {
		t.Errorf("name = %q, want FinanceApp", app.Name)
	}

	if len(app.Models) != 2 || len(app.Screens) != 2 {
		t.Errorf("models = %d, screens = %d, want 2 each",
			len(app.Models), len(app.Screens))
	}
}

func TestCompile_EmptyInput(t *testing.T) {
	_, _, err := Compile(context.Background(), "  \n\t ", WithCache(false))

	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}

func TestCompile_RecoveredModelStillValidated(t *testing.T) {
	// The malformed screen is skipped by the grammar parser but its sibling
	// sections survive, so validation still runs over a populated tree.
	const src = `app Demo {
  name: "Demo"
}

screen Broken 42 {

model Account {
  id: string required
}`

	app, diags, err := Compile(context.Background(), src, WithCache(false))
	if err != nil {
		t.Fatal(err)
	}

	if !HasErrors(diags) {
		t.Error("expected syntax errors for the malformed screen")
	}

	if len(app.Models) != 1 {
		t.Errorf("models = %d, want 1", len(app.Models))
	}
}

func TestCompile_CombinesSyntaxAndValidation(t *testing.T) {
	const src = `app Demo {
  name: "Demo"
}

screen Broken 42 {

model account {
  id: string
}`

	_, diags, err := Compile(context.Background(), src, WithCache(false))
	if err != nil {
		t.Fatal(err)
	}

	if countRule(diags, "syntax") == 0 {
		t.Errorf("missing syntax diagnostics in %v", diags)
	}

	if countRule(diags, "model-naming") == 0 {
		t.Errorf("missing validation diagnostics in %v", diags)
	}

	if countRule(diags, "no-screens") == 0 {
		t.Errorf("missing advisory diagnostics in %v", diags)
	}
}
