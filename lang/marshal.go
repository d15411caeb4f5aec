package lang

import (
	"encoding/json"
)

// MarshalJSON implements json.Marshaler for Document. The dump is a debug
// artifact, not a stable contract: internal bookkeeping (source positions,
// offsets) is stripped, and only the reconciled shape of the tree appears.
func (doc *Document) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"syntax": diagnosticMaps(doc.Syntax),
	}

	if doc.App != nil {
		out["app"] = doc.App.ToMap()
	}

	return json.Marshal(out)
}

func diagnosticMaps(diags []Diagnostic) []map[string]any {
	out := make([]map[string]any, 0, len(diags))

	for _, d := range diags {
		m := map[string]any{
			"severity": d.Severity.String(),
			"rule":     d.Rule,
			"message":  d.Message,
		}

		if d.Ref != "" {
			m["ref"] = d.Ref
		}

		if d.Pos.Line > 0 {
			m["line"] = d.Pos.Line
			m["column"] = d.Pos.Column
		}

		if len(d.Suggest) > 0 {
			m["suggest"] = d.Suggest
		}

		out = append(out, m)
	}

	return out
}

// ToMap converts the Application to a native Go map structure for JSON or
// YAML output.
func (a *Application) ToMap() map[string]any {
	out := map[string]any{
		"name":        a.Name,
		"displayName": a.DisplayName,
		"id":          a.ID,
		"version":     a.Version,
	}

	if len(a.Platforms) > 0 {
		platforms := make([]string, 0, len(a.Platforms))
		for _, p := range a.Platforms {
			platforms = append(platforms, string(p))
		}

		out["platforms"] = platforms
	}

	if len(a.Theme) > 0 {
		out["theme"] = a.Theme
	}

	models := make([]map[string]any, 0, len(a.Models))
	for _, m := range a.Models {
		models = append(models, m.toMap())
	}

	out["models"] = models

	screens := make([]map[string]any, 0, len(a.Screens))
	for _, s := range a.Screens {
		screens = append(screens, s.toMap())
	}

	out["screens"] = screens

	if a.Navigation != nil {
		items := make([]map[string]any, 0, len(a.Navigation.Items))

		for _, item := range a.Navigation.Items {
			entry := map[string]any{
				"title":  item.Title,
				"screen": item.Screen,
			}

			if item.Icon != "" {
				entry["icon"] = item.Icon
			}

			items = append(items, entry)
		}

		out["navigation"] = map[string]any{
			"type":  string(a.Navigation.Type),
			"items": items,
		}
	}

	if a.API != nil {
		endpoints := make([]map[string]any, 0, len(a.API.Endpoints))
		for _, ep := range a.API.Endpoints {
			endpoints = append(endpoints, ep.toMap())
		}

		out["api"] = map[string]any{
			"baseUrl":   a.API.BaseURL,
			"mock":      a.API.Mock,
			"endpoints": endpoints,
		}
	}

	if a.Mock != nil {
		sections := make(map[string]any, len(a.Mock.Sections))

		for _, section := range a.Mock.Sections {
			items := make([]map[string]any, 0, len(section.Items))

			for _, item := range section.Items {
				entry := make(map[string]any, len(item))
				for _, e := range item {
					entry[e.Key] = e.Value
				}

				items = append(items, entry)
			}

			sections[section.Name] = items
		}

		out["mockData"] = sections
	}

	return out
}

func (m *Model) toMap() map[string]any {
	props := make([]map[string]any, 0, len(m.Properties))

	for _, p := range m.Properties {
		prop := map[string]any{
			"name": p.Name,
			"type": p.Type.String(),
		}

		if p.Required {
			prop["required"] = true
		}

		if p.HasDefault {
			prop["default"] = p.Default
		}

		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}

		props = append(props, prop)
	}

	return map[string]any{
		"name":       m.Name,
		"properties": props,
	}
}

func (s *Screen) toMap() map[string]any {
	out := map[string]any{
		"name":  s.Name,
		"title": s.Title,
	}

	if s.Initial {
		out["initial"] = true
	}

	if len(s.Params) > 0 {
		params := make([]map[string]any, 0, len(s.Params))
		for _, p := range s.Params {
			params = append(params, paramMap(p))
		}

		out["params"] = params
	}

	if s.Layout != nil {
		out["layout"] = s.Layout.toMap()
	}

	return out
}

func (l *Layout) toMap() map[string]any {
	out := map[string]any{"type": string(l.Type)}

	if len(l.Components) > 0 {
		components := make([]map[string]any, 0, len(l.Components))
		for _, c := range l.Components {
			components = append(components, c.Attrs)
		}

		out["components"] = components
	}

	if len(l.Fields) > 0 {
		fields := make([]map[string]any, 0, len(l.Fields))

		for _, f := range l.Fields {
			field := map[string]any{
				"name": f.Name,
				"type": f.Type,
			}

			if f.Label != "" {
				field["label"] = f.Label
			}

			if f.Required {
				field["required"] = true
			}

			fields = append(fields, field)
		}

		out["fields"] = fields
	}

	if len(l.Actions) > 0 {
		actions := make([]map[string]any, 0, len(l.Actions))

		for _, a := range l.Actions {
			action := map[string]any{"label": a.Label}

			if a.Action != "" {
				action["action"] = a.Action
			}

			if a.Target != "" {
				action["target"] = a.Target
			}

			actions = append(actions, action)
		}

		out["actions"] = actions
	}

	if l.Submit != nil {
		out["submitButton"] = map[string]any{
			"label":  l.Submit.Label,
			"action": l.Submit.Action,
		}
	}

	if l.Cancel != nil {
		out["cancelButton"] = map[string]any{
			"label":  l.Cancel.Label,
			"action": l.Cancel.Action,
		}
	}

	return out
}

func (e *Endpoint) toMap() map[string]any {
	out := map[string]any{
		"id":     e.ID,
		"path":   e.Path,
		"method": e.Method,
	}

	if len(e.Params) > 0 {
		params := make([]map[string]any, 0, len(e.Params))
		for _, p := range e.Params {
			params = append(params, paramMap(p))
		}

		out["params"] = params
	}

	if e.Body != "" {
		out["body"] = e.Body
	}

	if e.Response != "" {
		response := e.Response
		if e.ResponseArray {
			response += "[]"
		}

		out["response"] = response
	}

	return out
}

func paramMap(p *Param) map[string]any {
	out := map[string]any{"name": p.Name}

	if p.Type.Base != "" {
		out["type"] = p.Type.String()
	}

	if p.Required {
		out["required"] = true
	}

	return out
}
