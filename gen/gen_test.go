package gen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/halmstraw/finance-app-dsl/lang"
)

func scaffoldApp() *lang.Application {
	return &lang.Application{
		Name:      "FinanceApp",
		ID:        "com.example.finance",
		Version:   "1.0.0",
		Platforms: []lang.Platform{lang.PlatformWeb, lang.PlatformIOS},
		Models: []*lang.Model{
			{Name: "Account", Properties: []*lang.Property{
				{Name: "id", Type: lang.DataType{Base: "string"}, Required: true},
				{Name: "type", Type: lang.DataType{Base: "string"},
					Enum: []string{"checking", "savings"}},
			}},
		},
		Screens: []*lang.Screen{
			{Name: "AccountList", Title: "Accounts", Initial: true},
		},
		Mock: &lang.MockData{
			Sections: []*lang.MockSection{{
				Name: "accounts",
				Items: []lang.MockItem{
					{{Key: "id", Value: "=index + 1"}, {Key: "name", Value: "Checking"}},
				},
			}},
		},
	}
}

func TestGenerate_DeclaredPlatforms(t *testing.T) {
	out, err := Generate(context.Background(), scaffoldApp(), nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"web/app.yaml",
		"web/models/account.yaml",
		"web/src/screens/AccountList.js",
		"web/mock/accounts.json",
		"ios/app.yaml",
		"ios/Sources/Screens/AccountListView.swift",
	} {
		if _, ok := out[want]; !ok {
			t.Errorf("missing %s in %v", want, out.Paths())
		}
	}

	// Android was not declared and must not be emitted.
	for path := range out {
		if strings.HasPrefix(path, "android/") {
			t.Errorf("unexpected %s", path)
		}
	}
}

func TestGenerate_ExplicitPlatformOverride(t *testing.T) {
	out, err := Generate(context.Background(), scaffoldApp(),
		[]lang.Platform{lang.PlatformAndroid})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := out["android/app/src/screens/AccountListScreen.kt"]; !ok {
		t.Errorf("missing android stub in %v", out.Paths())
	}

	for path := range out {
		if !strings.HasPrefix(path, "android/") {
			t.Errorf("unexpected %s", path)
		}
	}
}

func TestGenerate_DefaultsToWeb(t *testing.T) {
	out, err := Generate(context.Background(), &lang.Application{Name: "Bare"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := out["web/app.yaml"]; !ok {
		t.Errorf("missing manifest in %v", out.Paths())
	}
}

func TestGenerate_EmptyOptionalSections(t *testing.T) {
	app := &lang.Application{
		Name:      "Bare",
		Platforms: []lang.Platform{lang.PlatformIOS},
	}

	out, err := Generate(context.Background(), app, nil)
	if err != nil {
		t.Fatal(err)
	}

	// No models, screens, or mock data: the manifest is the whole output.
	if len(out) != 1 {
		t.Errorf("output = %v, want manifest only", out.Paths())
	}
}

func TestGenerate_Errors(t *testing.T) {
	if _, err := Generate(context.Background(), nil, nil); !errors.Is(err, ErrNoApplication) {
		t.Errorf("err = %v, want ErrNoApplication", err)
	}

	_, err := Generate(context.Background(), scaffoldApp(),
		[]lang.Platform{lang.Platform("desktop")})

	if !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("err = %v, want ErrUnknownPlatform", err)
	}
}

func TestModelDescriptor(t *testing.T) {
	app := scaffoldApp()
	desc := modelDescriptor(app.Models[0])

	for _, want := range []string{
		"name: Account",
		"- name: id",
		"required: true",
		"enum: [checking, savings]",
	} {
		if !strings.Contains(desc, want) {
			t.Errorf("descriptor missing %q:\n%s", want, desc)
		}
	}
}

func TestScaffold_ManifestContainsAppMetadata(t *testing.T) {
	emitter, err := For(lang.PlatformWeb)
	if err != nil {
		t.Fatal(err)
	}

	out, err := emitter.Emit(scaffoldApp())
	if err != nil {
		t.Fatal(err)
	}

	manifest := out["app.yaml"]

	for _, want := range []string{"FinanceApp", "com.example.finance", "1.0.0"} {
		if !strings.Contains(manifest, want) {
			t.Errorf("manifest missing %q:\n%s", want, manifest)
		}
	}
}

func TestEmitterPlatforms(t *testing.T) {
	for platform := range lang.Platforms() {
		emitter, err := For(platform)
		if err != nil {
			t.Fatal(err)
		}

		if emitter.Platform() != platform {
			t.Errorf("Platform() = %v, want %v", emitter.Platform(), platform)
		}
	}
}
