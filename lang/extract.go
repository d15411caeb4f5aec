package lang

import (
	"regexp"
	"strings"
)

// Extraction is the result of the direct-text recovery pass: models,
// screens, and API summaries recovered from raw source by pattern matching,
// independently of the grammar parser.
type Extraction struct {
	Models  []*Model
	Screens []*Screen
	API     *API
}

var (
	// Model bodies are assumed brace-free: a model containing a nested
	// object-typed default value would be truncated at the inner brace.
	// Known limitation of the text pass; the grammar parser handles such
	// models correctly.
	modelBlockPattern = regexp.MustCompile(`(?s)\bmodel\s+(\w+)\s*\{([^{}]*)\}`)

	propertyLinePattern = regexp.MustCompile(`^(\w+)\s*:\s*([A-Za-z]+(?:\[\])?)\s*(.*)$`)
	defaultAttrPattern  = regexp.MustCompile(`\bdefault\s*:\s*([^,\s]+)`)
	enumAttrPattern     = regexp.MustCompile(`\benum\s*:\s*\[([^\]]*)\]`)

	screenStartPattern = regexp.MustCompile(`\bscreen\s+(\w+)\s*\{`)
	titleAttrPattern   = regexp.MustCompile(`\btitle\s*:\s*"([^"]*)"`)

	apiBlockPattern = regexp.MustCompile(`(?s)\bapi\s*:?\s*\{.*?\bbaseUrl\s*:\s*"([^"]*)"`)

	// The method is captured as a bare identifier; validation, not
	// extraction, restricts it to the canonical HTTP verbs.
	endpointPattern = regexp.MustCompile(
		`(?s)\bendpoint\s+(\w+)\s*\{[^{}]*?\bpath\s*:\s*"([^"]*)"[^{}]*?\bmethod\s*:\s*(\w+)`)
	responseAttrPattern = regexp.MustCompile(`\bresponse\s*:\s*(\w+)(\[\])?`)
)

// Extract runs the direct-text pass over raw source. It is best-effort and
// never fails: blocks that do not match their shape pattern are silently
// skipped, and absence of matches yields empty collections. Running Extract
// twice on the same source yields structurally equal results.
func Extract(src string) *Extraction {
	return &Extraction{
		Models:  extractModels(src),
		Screens: extractScreens(src),
		API:     extractAPI(src),
	}
}

func extractModels(src string) []*Model {
	var models []*Model

	for _, match := range modelBlockPattern.FindAllStringSubmatch(src, -1) {
		model := &Model{Name: match[1]}

		for line := range strings.Lines(match[2]) {
			line = strings.TrimSpace(line)

			if line == "" || strings.HasPrefix(line, "//") {
				continue
			}

			prop := extractProperty(line)
			if prop != nil {
				model.Properties = append(model.Properties, prop)
			}
		}

		models = append(models, model)
	}

	return models
}

// extractProperty splits a model body line into name, type, and trailing
// attributes, recovering required/default/enum features from the remainder.
func extractProperty(line string) *Property {
	match := propertyLinePattern.FindStringSubmatch(line)
	if match == nil {
		return nil
	}

	prop := &Property{
		Name: match[1],
		Type: ParseDataType(match[2]),
	}

	rest := match[3]

	if strings.Contains(rest, "required") {
		prop.Required = true
	}

	if m := defaultAttrPattern.FindStringSubmatch(rest); m != nil {
		prop.Default = strings.Trim(m[1], `"'`)
		prop.HasDefault = true
	}

	if m := enumAttrPattern.FindStringSubmatch(rest); m != nil {
		for _, value := range strings.Split(m[1], ",") {
			value = strings.Trim(strings.TrimSpace(value), `"'`)

			if value != "" {
				prop.Enum = append(prop.Enum, value)
			}
		}
	}

	return prop
}

func extractScreens(src string) []*Screen {
	var screens []*Screen

	for _, loc := range screenStartPattern.FindAllStringSubmatchIndex(src, -1) {
		name := src[loc[2]:loc[3]]

		// Screen bodies may nest braces (layouts, components), so the body
		// is delimited by balanced-brace scanning rather than a pattern.
		body, ok := balancedBody(src, loc[1]-1)
		if !ok {
			continue
		}

		screen := &Screen{
			Name:    name,
			Title:   name,
			Initial: strings.Contains(body, "initial"),
		}

		if m := titleAttrPattern.FindStringSubmatch(body); m != nil {
			screen.Title = m[1]
		}

		screens = append(screens, screen)
	}

	return screens
}

// balancedBody returns the text between the brace at open and its matching
// close brace, exclusive.
func balancedBody(src string, open int) (string, bool) {
	depth := 0

	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--

			if depth == 0 {
				return src[open+1 : i], true
			}
		}
	}

	return "", false
}

func extractAPI(src string) *API {
	match := apiBlockPattern.FindStringSubmatch(src)
	if match == nil {
		return nil
	}

	api := &API{BaseURL: match[1]}

	// Endpoints are matched globally, not confined to the api block, so
	// the informal inline form is recovered wherever it appears.
	for _, m := range endpointPattern.FindAllStringSubmatchIndex(src, -1) {
		ep := &Endpoint{
			ID:     src[m[2]:m[3]],
			Path:   src[m[4]:m[5]],
			Method: strings.ToUpper(src[m[6]:m[7]]),
		}

		if body, ok := balancedBody(src, strings.Index(src[m[0]:], "{")+m[0]); ok {
			if r := responseAttrPattern.FindStringSubmatch(body); r != nil {
				ep.Response = r[1]
				ep.ResponseArray = r[2] != ""
			}
		}

		api.Endpoints = append(api.Endpoints, ep)
	}

	return api
}
