package lang

import (
	"context"
	"encoding/json"
	"testing"
)

func TestDocumentMarshalJSON(t *testing.T) {
	doc, err := ParseString(context.Background(), financeSource, WithCache(false))
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		App struct {
			Name      string           `json:"name"`
			Platforms []string         `json:"platforms"`
			Models    []map[string]any `json:"models"`
			Screens   []map[string]any `json:"screens"`
		} `json:"app"`
		Syntax []map[string]any `json:"syntax"`
	}

	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}

	if out.App.Name != "FinanceApp" {
		t.Errorf("app.name = %q", out.App.Name)
	}

	if len(out.App.Models) != 2 || len(out.App.Screens) != 2 {
		t.Errorf("models = %d, screens = %d, want 2 each",
			len(out.App.Models), len(out.App.Screens))
	}

	if len(out.Syntax) != 0 {
		t.Errorf("syntax = %v, want empty", out.Syntax)
	}
}

func TestDocumentMarshalJSON_Diagnostics(t *testing.T) {
	const src = `app Demo {
  name: "Demo"
}

model Broken 42 {`

	doc, err := ParseString(context.Background(), src, WithCache(false))
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		Syntax []struct {
			Severity string `json:"severity"`
			Rule     string `json:"rule"`
			Message  string `json:"message"`
			Line     int    `json:"line"`
		} `json:"syntax"`
	}

	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}

	if len(out.Syntax) == 0 {
		t.Fatal("no syntax diagnostics marshaled")
	}

	d := out.Syntax[0]

	if d.Severity != "error" || d.Rule != "syntax" {
		t.Errorf("diagnostic = %+v", d)
	}

	if d.Line != 5 {
		t.Errorf("line = %d, want 5", d.Line)
	}
}

func TestApplicationToMap(t *testing.T) {
	app, diags, err := Compile(context.Background(), financeSource, WithCache(false))
	if err != nil {
		t.Fatal(err)
	}

	if HasErrors(diags) {
		t.Fatalf("unexpected errors: %v", diags)
	}

	out := app.ToMap()

	nav, ok := out["navigation"].(map[string]any)
	if !ok {
		t.Fatal("navigation missing from map")
	}

	if nav["type"] != "tab" {
		t.Errorf("navigation.type = %v, want tab", nav["type"])
	}

	api, ok := out["api"].(map[string]any)
	if !ok {
		t.Fatal("api missing from map")
	}

	endpoints, ok := api["endpoints"].([]map[string]any)
	if !ok || len(endpoints) == 0 {
		t.Fatalf("api.endpoints = %v", api["endpoints"])
	}

	if endpoints[0]["response"] != "Account[]" {
		t.Errorf("response = %v, want Account[]", endpoints[0]["response"])
	}
}

func TestApplicationToMap_OmitsAbsentSections(t *testing.T) {
	out := (&Application{Name: "Empty"}).ToMap()

	for _, key := range []string{"navigation", "api", "mockData", "theme"} {
		if _, present := out[key]; present {
			t.Errorf("%s present for an app without one", key)
		}
	}

	// Collections are always present, even when empty.
	if _, present := out["models"]; !present {
		t.Error("models missing")
	}
}
