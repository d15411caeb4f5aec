package gen

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/halmstraw/finance-app-dsl/lang"
)

// ExpandMock materializes the application's mock data sections. A string
// value beginning with "=" is an expression evaluated against an
// environment holding the item's plain sibling values plus "index", the
// zero-based position of the item in its section. All other values pass
// through unchanged.
//
// Expansion is best effort: a failing expression leaves the raw value in
// place and contributes one error, so a single bad item never discards a
// section.
func ExpandMock(app *lang.Application) (map[string][]map[string]any, []error) {
	if app == nil || app.Mock == nil {
		return nil, nil
	}

	sections := make(map[string][]map[string]any, len(app.Mock.Sections))

	var errs []error

	for _, section := range app.Mock.Sections {
		items := make([]map[string]any, 0, len(section.Items))

		for i, item := range section.Items {
			expanded, itemErrs := expandItem(section.Name, i, item)
			items = append(items, expanded)
			errs = append(errs, itemErrs...)
		}

		sections[section.Name] = items
	}

	return sections, errs
}

func expandItem(section string, index int, item lang.MockItem) (map[string]any, []error) {
	out := make(map[string]any, len(item))

	// Plain values are bound first so expressions can reference siblings.
	env := map[string]any{"index": index}

	for _, entry := range item {
		out[entry.Key] = entry.Value

		if !isExpression(entry.Value) {
			env[entry.Key] = entry.Value
		}
	}

	var errs []error

	for _, entry := range item {
		if !isExpression(entry.Value) {
			continue
		}

		code := strings.TrimPrefix(entry.Value.(string), "=")

		value, err := expr.Eval(code, env)
		if err != nil {
			errs = append(errs, fmt.Errorf(
				"mockData.%s[%d].%s: %w", section, index, entry.Key, err))

			continue
		}

		out[entry.Key] = value
	}

	return out, errs
}

func isExpression(value any) bool {
	s, ok := value.(string)

	return ok && strings.HasPrefix(s, "=")
}
