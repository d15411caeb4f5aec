package lang

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
)

// maxTabItems is the advisory limit for tab navigation entries.
const maxTabItems = 5

// Validate applies the semantic rules to a reconciled Application and
// returns the complete diagnostic list. It never mutates the Application
// and never halts early: rules are independent and every finding is
// enumerated, so callers can decide how to act on the full list.
//
// Structural problems (missing layout, duplicate ids, zero or multiple
// initial screens, unresolved references) are errors; style and
// best-practice deviations are warnings.
func Validate(app *Application) []Diagnostic {
	v := &validator{app: app}

	v.checkApp()
	v.checkModels()
	v.checkScreens()
	v.checkNavigation()
	v.checkAPI()

	return v.diags
}

type validator struct {
	app   *Application
	diags []Diagnostic
}

func (v *validator) errorf(rule, ref, format string, args ...any) {
	v.diags = append(v.diags, Diagnostic{
		Severity: SeverityError,
		Rule:     rule,
		Ref:      ref,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) warnf(rule, ref, format string, args ...any) {
	v.diags = append(v.diags, Diagnostic{
		Severity: SeverityWarning,
		Rule:     rule,
		Ref:      ref,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) checkApp() {
	if len(v.app.Models) == 0 {
		v.warnf("no-models", "", "no models defined")
	}

	if len(v.app.Screens) == 0 {
		v.warnf("no-screens", "", "no screens defined")
	}

	if v.app.Navigation == nil {
		v.warnf("no-navigation", "", "no navigation defined")
	}

	if v.app.API == nil {
		v.warnf("no-api", "", "no api defined")
	}

	// Exactly one diagnostic regardless of how many screens violate.
	initial := 0

	for _, s := range v.app.Screens {
		if s.Initial {
			initial++
		}
	}

	switch {
	case len(v.app.Screens) == 0:
		// Covered by no-screens.
	case initial == 0:
		v.errorf("initial-screen", "", "no screen is marked initial")
	case initial > 1:
		v.errorf("initial-screen", "",
			"%d screens are marked initial, expected exactly one", initial)
	}
}

func (v *validator) checkModels() {
	seen := make(map[string]bool, len(v.app.Models))

	for _, model := range v.app.Models {
		ref := "model." + model.Name

		if seen[model.Name] {
			v.errorf("model-duplicate", ref, "duplicate model %q", model.Name)
		}

		seen[model.Name] = true

		if !isPascalCase(model.Name) {
			v.warnf("model-naming", ref,
				"model %q should be PascalCase", model.Name)
		}

		if len(model.Properties) == 0 {
			v.errorf("model-empty", ref,
				"model %q must have at least one property", model.Name)

			continue
		}

		if model.Property("id") == nil {
			v.warnf("model-id", ref,
				"model %q has no %q property", model.Name, "id")
		}

		for _, prop := range model.Properties {
			v.checkProperty(ref, prop)
		}
	}
}

func (v *validator) checkProperty(modelRef string, prop *Property) {
	ref := modelRef + "." + prop.Name

	if !prop.Type.Known() {
		v.errorf("property-type", ref,
			"unknown data type %q", prop.Type.String())
	}

	if len(prop.Enum) > 0 {
		if prop.Type.Base != "string" || prop.Type.Array {
			v.errorf("enum-type", ref,
				"enum values can only be used with string properties")
		}

		// One diagnostic per duplicated value, however many repeats.
		reported := make(map[string]bool)
		counts := make(map[string]int)

		for _, value := range prop.Enum {
			counts[value]++
		}

		for _, value := range prop.Enum {
			if counts[value] > 1 && !reported[value] {
				v.errorf("enum-duplicate", ref,
					"duplicate enum value %q", value)

				reported[value] = true
			}
		}
	}

	if prop.Required && prop.HasDefault {
		v.warnf("required-default", ref,
			"required with a default value is redundant")
	}
}

func (v *validator) checkScreens() {
	seen := make(map[string]bool, len(v.app.Screens))

	for _, screen := range v.app.Screens {
		ref := "screen." + screen.Name

		if seen[screen.Name] {
			v.errorf("screen-duplicate", ref,
				"duplicate screen %q", screen.Name)
		}

		seen[screen.Name] = true

		if screen.Layout == nil {
			v.errorf("screen-layout", ref,
				"screen %q has no layout", screen.Name)

			continue
		}

		v.checkLayout(ref, screen.Layout)
	}
}

func (v *validator) checkLayout(ref string, layout *Layout) {
	switch layout.Type {
	case LayoutForm:
		if len(layout.Fields) == 0 {
			v.errorf("layout-fields", ref, "form layout has no fields")
		}

	case LayoutStack, LayoutScroll, LayoutTabs:
		if len(layout.Components) == 0 {
			v.warnf("layout-components", ref,
				"%s layout has no components", layout.Type)
		}

	default:
		v.errorf("layout-type", ref,
			"unknown layout type %q", string(layout.Type))
	}
}

func (v *validator) checkNavigation() {
	nav := v.app.Navigation
	if nav == nil {
		return
	}

	switch nav.Type {
	case NavTab, NavDrawer, NavStack:
	default:
		v.errorf("navigation-type", "navigation",
			"unknown navigation type %q", string(nav.Type))
	}

	if nav.Type == NavTab && len(nav.Items) > maxTabItems {
		v.warnf("navigation-items", "navigation",
			"tab navigation has %d items, at most %d are usable",
			len(nav.Items), maxTabItems)
	}

	screens := v.app.ScreenNames()

	for i, item := range nav.Items {
		if item.Screen == "" {
			v.errorf("navigation-screen", fmt.Sprintf("navigation.items[%d]", i),
				"navigation item has no screen reference")

			continue
		}

		if v.app.Screen(item.Screen) == nil {
			v.diags = append(v.diags, Diagnostic{
				Severity: SeverityError,
				Rule:     "navigation-screen",
				Ref:      fmt.Sprintf("navigation.items[%d]", i),
				Message: fmt.Sprintf("navigation references unknown screen %q",
					item.Screen),
				Suggest: suggest(item.Screen, screens),
			})
		}
	}
}

func (v *validator) checkAPI() {
	api := v.app.API
	if api == nil {
		return
	}

	if api.BaseURL == "" {
		v.warnf("api-baseurl", "api", "api has no baseUrl")
	}

	models := v.app.ModelNames()
	seen := make(map[string]bool, len(api.Endpoints))

	for _, ep := range api.Endpoints {
		ref := "api.endpoints." + ep.ID

		if ep.ID == "" {
			v.errorf("endpoint-id", "api", "endpoint has no id")
		} else if seen[ep.ID] {
			v.errorf("endpoint-duplicate", ref,
				"duplicate endpoint id %q", ep.ID)
		}

		seen[ep.ID] = true

		v.checkEndpoint(ref, ep, models)
	}
}

func (v *validator) checkEndpoint(ref string, ep *Endpoint, models []string) {
	validMethod := slices.Contains(
		[]string{"GET", "POST", "PUT", "DELETE"}, ep.Method)
	if !validMethod {
		v.errorf("endpoint-method", ref,
			"unknown HTTP method %q", ep.Method)
	}

	// Every {name} token in the path must be declared as a parameter.
	for _, name := range ep.PathParams() {
		if ep.Param(name) == nil {
			v.errorf("endpoint-path-param", ref,
				"path parameter %q not defined in params", name)
		}
	}

	v.checkModelRef(ref, "body", ep.Body, models)
	v.checkModelRef(ref, "response", ep.Response, models)

	switch ep.Method {
	case "POST", "PUT":
		if ep.Body == "" {
			v.warnf("endpoint-body", ref,
				"%s endpoint should declare a body model", ep.Method)
		}
	case "GET", "DELETE":
		if ep.Body != "" {
			v.warnf("endpoint-body", ref,
				"%s endpoint should not declare a body", ep.Method)
		}
	}

	if (ep.Method == "PUT" || ep.Method == "DELETE") && len(ep.PathParams()) == 0 {
		v.warnf("endpoint-identifier", ref,
			"%s path should carry an identifying path parameter", ep.Method)
	}
}

func (v *validator) checkModelRef(ref, kind, name string, models []string) {
	if name == "" || v.app.Model(name) != nil {
		return
	}

	v.diags = append(v.diags, Diagnostic{
		Severity: SeverityError,
		Rule:     "endpoint-" + kind + "-model",
		Ref:      ref,
		Message:  fmt.Sprintf("%s references unknown model %q", kind, name),
		Suggest:  suggest(name, models),
	})
}

// suggest returns up to three declared names fuzzy-matching the unresolved
// reference, best first.
func suggest(name string, declared []string) []string {
	matches := fuzzy.Find(name, declared)
	if len(matches) == 0 {
		return nil
	}

	names := make([]string, 0, 3)

	for _, m := range matches {
		names = append(names, m.Str)

		if len(names) == 3 {
			break
		}
	}

	return names
}

// isPascalCase reports whether the name starts with an uppercase letter and
// contains no separators.
func isPascalCase(name string) bool {
	if name == "" {
		return false
	}

	first := []rune(name)[0]

	return unicode.IsUpper(first) && !strings.ContainsAny(name, "_-")
}
