package gen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/halmstraw/finance-app-dsl/lang"
)

// scaffold holds the platform-independent emission steps. Each platform
// emitter embeds it and contributes only the screen stub shape.
type scaffold struct{}

// emit assembles the shared file set and one stub per screen.
func (s scaffold) emit(app *lang.Application, stub stubFunc) (Output, error) {
	out := make(Output)

	manifest, err := yaml.Marshal(app.ToMap())
	if err != nil {
		return nil, lang.WrapError(err)
	}

	out["app.yaml"] = string(manifest)

	for _, model := range app.Models {
		out["models/"+lowerFirst(model.Name)+".yaml"] = modelDescriptor(model)
	}

	for _, screen := range app.Screens {
		path, content := stub(app, screen)
		out[path] = content
	}

	if app.Mock != nil {
		expanded, _ := ExpandMock(app)

		for name, items := range expanded {
			data, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				return nil, lang.ErrJSONMarshal.Wrap(err)
			}

			out["mock/"+name+".json"] = string(data) + "\n"
		}
	}

	return out, nil
}

// stubFunc renders one screen stub, returning its relative path and content.
type stubFunc func(app *lang.Application, screen *lang.Screen) (string, string)

func modelDescriptor(model *lang.Model) string {
	var b strings.Builder

	fmt.Fprintf(&b, "name: %s\nproperties:\n", model.Name)

	for _, prop := range model.Properties {
		fmt.Fprintf(&b, "  - name: %s\n    type: %s\n", prop.Name, prop.Type)

		if prop.Required {
			b.WriteString("    required: true\n")
		}

		if prop.HasDefault {
			fmt.Fprintf(&b, "    default: %q\n", prop.Default)
		}

		if len(prop.Enum) > 0 {
			fmt.Fprintf(&b, "    enum: [%s]\n", strings.Join(prop.Enum, ", "))
		}
	}

	return b.String()
}

type webEmitter struct{ scaffold }

func (e *webEmitter) Platform() lang.Platform { return lang.PlatformWeb }

func (e *webEmitter) Emit(app *lang.Application) (Output, error) {
	return e.emit(app, func(app *lang.Application, screen *lang.Screen) (string, string) {
		var b strings.Builder

		fmt.Fprintf(&b, "// %s: %s\n", screen.Name, screen.Title)
		fmt.Fprintf(&b, "export function %s() {\n", screen.Name)
		fmt.Fprintf(&b, "  return render(%q);\n}\n", screen.Title)

		return "src/screens/" + screen.Name + ".js", b.String()
	})
}

type iosEmitter struct{ scaffold }

func (e *iosEmitter) Platform() lang.Platform { return lang.PlatformIOS }

func (e *iosEmitter) Emit(app *lang.Application) (Output, error) {
	return e.emit(app, func(app *lang.Application, screen *lang.Screen) (string, string) {
		var b strings.Builder

		fmt.Fprintf(&b, "// %s\n", screen.Title)
		fmt.Fprintf(&b, "struct %sView: View {\n", screen.Name)
		fmt.Fprintf(&b, "    var body: some View { Text(%q) }\n}\n", screen.Title)

		return "Sources/Screens/" + screen.Name + "View.swift", b.String()
	})
}

type androidEmitter struct{ scaffold }

func (e *androidEmitter) Platform() lang.Platform { return lang.PlatformAndroid }

func (e *androidEmitter) Emit(app *lang.Application) (Output, error) {
	return e.emit(app, func(app *lang.Application, screen *lang.Screen) (string, string) {
		var b strings.Builder

		fmt.Fprintf(&b, "// %s\n", screen.Title)
		fmt.Fprintf(&b, "@Composable\nfun %sScreen() {\n", screen.Name)
		fmt.Fprintf(&b, "    Text(%q)\n}\n", screen.Title)

		return "app/src/screens/" + screen.Name + "Screen.kt", b.String()
	})
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}
