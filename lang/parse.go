package lang

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

// Document is the result of a grammar parse: a (possibly partial)
// application tree plus any syntax diagnostics recovered along the way.
type Document struct {
	// App is the grammar tree root. Nil when no app header was found;
	// Reconcile turns that into ErrDocumentParse.
	App *Application
	// Syntax holds recoverable syntax errors in source order.
	Syntax []Diagnostic
	// Source is the original input text.
	Source string
}

// ParseString parses DSL source text into a Document.
//
// Parsing is deterministic recursive descent. On a token mismatch the
// parser records a positioned syntax diagnostic and recovers by skipping
// forward to the next plausible section start, so one malformed section
// never aborts the rest. The returned error is non-nil only for empty or
// blank input.
func ParseString(ctx context.Context, src string, opts ...Option) (*Document, error) {
	o := makeOptions(opts...)

	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyInput
	}

	if o.cache {
		if doc, ok := cachedDocument(src); ok {
			o.logger.DebugContext(ctx, "parse cache hit",
				slog.Int("bytes", len(src)))

			return doc, nil
		}
	}

	p := &parser{toks: Lex(src)}

	doc := p.parseDocument()
	doc.Source = src

	if o.cache {
		storeDocument(src, doc)
	}

	o.logger.DebugContext(ctx, "parse complete",
		slog.Bool("app", doc.App != nil),
		slog.Int("diagnostics", len(doc.Syntax)))

	return doc, nil
}

// sectionKeywords start top-level statements; error recovery skips forward
// to the next one.
var sectionKeywords = map[string]bool{
	"app":        true,
	"model":      true,
	"screen":     true,
	"navigation": true,
	"api":        true,
	"mockData":   true,
}

// parser holds the parser state over a lexed token slice.
type parser struct {
	toks       []Token
	pos        int
	diags      []Diagnostic
	app        *Application
	headerSeen bool
}

func (p *parser) parseDocument() *Document {
	for !p.at(KindEOF) {
		tok := p.cur()

		if tok.Kind != KindIdent {
			p.syntax(tok.Pos, "expected section keyword, got "+describe(tok))
			p.recoverSection()

			continue
		}

		switch tok.Text {
		case "app":
			p.parseApp()
		case "model":
			p.parseModel()
		case "screen":
			p.parseScreen()
		case "navigation":
			p.parseNavigation()
		case "api":
			p.parseAPI()
		case "mockData":
			p.parseMockData()
		default:
			p.syntax(tok.Pos, "unknown section "+strconv.Quote(tok.Text))
			p.recoverSection()
		}
	}

	doc := &Document{Syntax: p.diags}
	if p.headerSeen {
		doc.App = p.app
	}

	return doc
}

// application returns the tree root, creating it on first use so sections
// parsed before (or without) an app header are not lost.
func (p *parser) application() *Application {
	if p.app == nil {
		p.app = &Application{}
	}

	return p.app
}

// parseApp parses: 'app' ID '{' meta* '}'.
func (p *parser) parseApp() {
	p.advance() // 'app'

	name, ok := p.expectIdent("app name")
	if !ok {
		p.recoverSection()

		return
	}

	app := p.application()

	if p.headerSeen {
		p.syntax(p.cur().Pos, "duplicate app declaration "+strconv.Quote(name))
		p.recoverSection()

		return
	}

	app.Name = name
	p.headerSeen = true

	if !p.expectPunct("{") {
		p.recoverSection()

		return
	}

	for !p.atPunct("}") {
		if p.at(KindEOF) {
			p.syntax(p.cur().Pos, "unterminated app block")

			return
		}

		key, ok := p.expectIdent("app attribute")
		if !ok {
			p.advance()

			continue
		}

		if !p.expectPunct(":") {
			p.skipValue()

			continue
		}

		switch key {
		case "name":
			app.DisplayName, _ = p.expectString("app name value")
		case "id":
			app.ID, _ = p.expectString("app id value")
		case "version":
			app.Version, _ = p.expectString("app version value")
		case "platforms":
			p.parsePlatforms(app)
		case "theme":
			app.Theme = p.parseTheme()
		default:
			p.syntax(p.cur().Pos, "unknown app attribute "+strconv.Quote(key))
			p.skipValue()
		}

		p.acceptPunct(",")
	}

	p.advance() // '}'
}

func (p *parser) parsePlatforms(app *Application) {
	if !p.expectPunct("[") {
		return
	}

	for !p.atPunct("]") && !p.at(KindEOF) {
		tok := p.cur()

		if tok.Kind != KindIdent && tok.Kind != KindString {
			p.syntax(tok.Pos, "expected platform name, got "+describe(tok))
			p.advance()

			continue
		}

		p.advance()

		platform, ok := ParsePlatform(tok.Value)
		if !ok {
			p.syntax(tok.Pos, "unknown platform "+strconv.Quote(tok.Value))
		} else {
			app.Platforms = append(app.Platforms, platform)
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("]")
}

func (p *parser) parseTheme() map[string]string {
	if !p.expectPunct("{") {
		return nil
	}

	theme := make(map[string]string)

	for !p.atPunct("}") && !p.at(KindEOF) {
		key, ok := p.expectIdent("theme attribute")
		if !ok {
			p.advance()

			continue
		}

		if !p.expectPunct(":") {
			continue
		}

		tok := p.cur()
		if tok.Kind == KindString || tok.Kind == KindIdent || tok.Kind == KindNumber {
			theme[key] = tok.Value

			p.advance()
		} else {
			p.syntax(tok.Pos, "expected theme value, got "+describe(tok))
			p.advance()
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("}")

	return theme
}

// parseModel parses: 'model' ID '{' Property* '}'.
func (p *parser) parseModel() {
	pos := p.cur().Pos

	p.advance() // 'model'

	name, ok := p.expectIdent("model name")
	if !ok {
		p.recoverSection()

		return
	}

	if !p.expectPunct("{") {
		p.recoverSection()

		return
	}

	model := &Model{Name: name, Pos: pos}

	for !p.atPunct("}") {
		if p.at(KindEOF) {
			p.syntax(p.cur().Pos, "unterminated model block "+strconv.Quote(name))

			break
		}

		prop := p.parseProperty()
		if prop == nil {
			p.advance()

			continue
		}

		model.Properties = append(model.Properties, prop)

		p.acceptPunct(",")
	}

	p.acceptPunct("}")

	app := p.application()
	app.Models = append(app.Models, model)
}

// parseProperty parses: ID ':' DataType Feature*.
func (p *parser) parseProperty() *Property {
	tok := p.cur()

	name, ok := p.expectIdent("property name")
	if !ok {
		return nil
	}

	if !p.expectPunct(":") {
		return nil
	}

	base, ok := p.expectIdent("property type")
	if !ok {
		return nil
	}

	prop := &Property{
		Name: name,
		Type: DataType{Base: base},
		Pos:  tok.Pos,
	}

	// Array suffix: '[' immediately followed by ']'.
	if p.atPunct("[") && p.peekPunct(1, "]") {
		p.advance()
		p.advance()

		prop.Type.Array = true
	}

	// Features in any order; an identifier that is not a feature keyword
	// starts the next property.
	for {
		switch {
		case p.atIdent("required"):
			p.advance()

			prop.Required = true

		case p.atIdent("default"):
			p.advance()

			if !p.expectPunct(":") {
				return prop
			}

			value, ok := p.literal()
			if ok {
				prop.Default = value
				prop.HasDefault = true
			}

		case p.atIdent("enum"):
			p.advance()

			if !p.expectPunct(":") {
				return prop
			}

			prop.Enum = p.parseEnumValues()

		default:
			return prop
		}
	}
}

func (p *parser) parseEnumValues() []string {
	if !p.expectPunct("[") {
		return nil
	}

	var values []string

	for !p.atPunct("]") && !p.at(KindEOF) {
		tok := p.cur()

		switch tok.Kind {
		case KindString, KindIdent, KindNumber:
			values = append(values, tok.Value)

			p.advance()
		default:
			p.syntax(tok.Pos, "expected enum value, got "+describe(tok))
			p.advance()
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("]")

	return values
}

// parseScreen parses: 'screen' ID '{' attributes '}'.
func (p *parser) parseScreen() {
	pos := p.cur().Pos

	p.advance() // 'screen'

	name, ok := p.expectIdent("screen name")
	if !ok {
		p.recoverSection()

		return
	}

	if !p.expectPunct("{") {
		p.recoverSection()

		return
	}

	screen := &Screen{Name: name, Title: name, Pos: pos}

	for !p.atPunct("}") {
		if p.at(KindEOF) {
			p.syntax(p.cur().Pos, "unterminated screen block "+strconv.Quote(name))

			break
		}

		key, ok := p.expectIdent("screen attribute")
		if !ok {
			p.advance()

			continue
		}

		switch key {
		case "initial":
			// Bare flag, or 'initial: true'.
			screen.Initial = true

			if p.acceptPunct(":") {
				if value, ok := p.literal(); ok {
					screen.Initial = value != "false"
				}
			}

		case "title":
			if p.expectPunct(":") {
				if title, ok := p.expectString("screen title"); ok {
					screen.Title = title
				}
			}

		case "params":
			if p.expectPunct(":") {
				screen.Params = p.parseParams()
			}

		case "layout":
			if p.expectPunct(":") {
				screen.Layout = p.parseLayout()
			}

		default:
			p.syntax(p.cur().Pos, "unknown screen attribute "+strconv.Quote(key))
			p.skipValue()
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("}")

	app := p.application()
	app.Screens = append(app.Screens, screen)
}

// parseParams parses a parameter list: either property bags
// ('{ name: id type: string required }') or shorthand 'ID ':' DataType'.
func (p *parser) parseParams() []*Param {
	if !p.expectPunct("[") {
		return nil
	}

	var params []*Param

	for !p.atPunct("]") && !p.at(KindEOF) {
		if p.atPunct("{") {
			attrs := p.parseBag()
			param := &Param{
				Name:     stringAttr(attrs, "name"),
				Type:     ParseDataType(stringAttr(attrs, "type")),
				Required: boolAttr(attrs, "required"),
			}
			params = append(params, param)
		} else {
			name, ok := p.expectIdent("parameter name")
			if !ok {
				p.advance()

				continue
			}

			param := &Param{Name: name}

			if p.acceptPunct(":") {
				if base, ok := p.expectIdent("parameter type"); ok {
					param.Type = DataType{Base: base}

					if p.atPunct("[") && p.peekPunct(1, "]") {
						p.advance()
						p.advance()

						param.Type.Array = true
					}
				}
			}

			if p.atIdent("required") {
				p.advance()

				param.Required = true
			}

			params = append(params, param)
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("]")

	return params
}

// parseLayout parses: '{' 'type' ':' LayoutType sections* '}'.
func (p *parser) parseLayout() *Layout {
	if !p.expectPunct("{") {
		return nil
	}

	layout := &Layout{}

	for !p.atPunct("}") {
		if p.at(KindEOF) {
			p.syntax(p.cur().Pos, "unterminated layout block")

			break
		}

		key, ok := p.expectIdent("layout attribute")
		if !ok {
			p.advance()

			continue
		}

		if !p.expectPunct(":") {
			continue
		}

		switch key {
		case "type":
			if kind, ok := p.expectIdent("layout type"); ok {
				layout.Type = LayoutType(kind)
			}

		case "components":
			for _, attrs := range p.parseBagList() {
				layout.Components = append(layout.Components, &Component{
					Type:  stringAttr(attrs, "type"),
					Attrs: attrs,
				})
			}

		case "fields":
			for _, attrs := range p.parseBagList() {
				layout.Fields = append(layout.Fields, &Field{
					Name:     stringAttr(attrs, "name"),
					Label:    stringAttr(attrs, "label"),
					Type:     stringAttr(attrs, "type"),
					Required: boolAttr(attrs, "required"),
				})
			}

		case "actions":
			for _, attrs := range p.parseBagList() {
				layout.Actions = append(layout.Actions, &Action{
					Label:  stringAttr(attrs, "label"),
					Action: stringAttr(attrs, "action"),
					Target: stringAttr(attrs, "target"),
				})
			}

		case "submitButton":
			attrs := p.parseBag()
			layout.Submit = &Button{
				Label:  stringAttr(attrs, "label"),
				Action: stringAttr(attrs, "action"),
			}

		case "cancelButton":
			attrs := p.parseBag()
			layout.Cancel = &Button{
				Label:  stringAttr(attrs, "label"),
				Action: stringAttr(attrs, "action"),
			}

		default:
			p.syntax(p.cur().Pos, "unknown layout attribute "+strconv.Quote(key))
			p.skipValue()
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("}")

	return layout
}

// parseNavigation parses: 'navigation' ':'? '{' type, items '}'.
func (p *parser) parseNavigation() {
	p.advance() // 'navigation'
	p.acceptPunct(":")

	if !p.expectPunct("{") {
		p.recoverSection()

		return
	}

	nav := &Navigation{}

	for !p.atPunct("}") {
		if p.at(KindEOF) {
			p.syntax(p.cur().Pos, "unterminated navigation block")

			break
		}

		key, ok := p.expectIdent("navigation attribute")
		if !ok {
			p.advance()

			continue
		}

		if !p.expectPunct(":") {
			continue
		}

		switch key {
		case "type":
			if kind, ok := p.expectIdent("navigation type"); ok {
				nav.Type = NavType(kind)
			}

		case "items":
			for _, attrs := range p.parseBagList() {
				nav.Items = append(nav.Items, &NavItem{
					Title:  stringAttr(attrs, "title"),
					Screen: stringAttr(attrs, "screen"),
					Icon:   stringAttr(attrs, "icon"),
				})
			}

		default:
			p.syntax(p.cur().Pos, "unknown navigation attribute "+strconv.Quote(key))
			p.skipValue()
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("}")

	app := p.application()
	app.Navigation = nav
}

// parseAPI parses: 'api' ':'? '{' baseUrl, mock, endpoints '}'.
// Both the structural endpoint form ('{ id: ... }' inside endpoints) and
// the informal inline form ('endpoint NAME { ... }') are accepted.
func (p *parser) parseAPI() {
	p.advance() // 'api'
	p.acceptPunct(":")

	if !p.expectPunct("{") {
		p.recoverSection()

		return
	}

	api := &API{}

	for !p.atPunct("}") {
		if p.at(KindEOF) {
			p.syntax(p.cur().Pos, "unterminated api block")

			break
		}

		key, ok := p.expectIdent("api attribute")
		if !ok {
			p.advance()

			continue
		}

		if key == "mock" {
			api.Mock = true

			if p.acceptPunct(":") {
				if value, ok := p.literal(); ok {
					api.Mock = value != "false"
				}
			}

			p.acceptPunct(",")

			continue
		}

		if key == "endpoint" {
			if ep := p.parseInlineEndpoint(); ep != nil {
				api.Endpoints = append(api.Endpoints, ep)
			}

			p.acceptPunct(",")

			continue
		}

		if !p.expectPunct(":") {
			continue
		}

		switch key {
		case "baseUrl":
			api.BaseURL, _ = p.expectString("api baseUrl")

		case "endpoints":
			api.Endpoints = append(api.Endpoints, p.parseEndpoints()...)

		default:
			p.syntax(p.cur().Pos, "unknown api attribute "+strconv.Quote(key))
			p.skipValue()
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("}")

	app := p.application()
	app.API = api
}

func (p *parser) parseEndpoints() []*Endpoint {
	if !p.expectPunct("[") {
		return nil
	}

	var endpoints []*Endpoint

	for !p.atPunct("]") && !p.at(KindEOF) {
		if p.atIdent("endpoint") {
			p.advance()

			if ep := p.parseInlineEndpoint(); ep != nil {
				endpoints = append(endpoints, ep)
			}
		} else if p.atPunct("{") {
			if ep := p.parseEndpointBody(""); ep != nil {
				endpoints = append(endpoints, ep)
			}
		} else {
			p.syntax(p.cur().Pos, "expected endpoint, got "+describe(p.cur()))
			p.advance()
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("]")

	return endpoints
}

// parseInlineEndpoint parses the informal form after the 'endpoint' keyword:
// NAME '{' attributes '}'. The name becomes the endpoint id unless the body
// declares its own.
func (p *parser) parseInlineEndpoint() *Endpoint {
	name, ok := p.expectIdent("endpoint name")
	if !ok {
		return nil
	}

	return p.parseEndpointBody(name)
}

func (p *parser) parseEndpointBody(id string) *Endpoint {
	pos := p.cur().Pos

	if !p.expectPunct("{") {
		return nil
	}

	ep := &Endpoint{ID: id, Pos: pos}

	for !p.atPunct("}") {
		if p.at(KindEOF) {
			p.syntax(p.cur().Pos, "unterminated endpoint block")

			break
		}

		key, ok := p.expectIdent("endpoint attribute")
		if !ok {
			p.advance()

			continue
		}

		if !p.expectPunct(":") {
			continue
		}

		switch key {
		case "id":
			if value, ok := p.expectIdent("endpoint id"); ok {
				ep.ID = value
			}

		case "path":
			ep.Path, _ = p.expectString("endpoint path")

		case "method":
			if value, ok := p.expectIdent("endpoint method"); ok {
				ep.Method = strings.ToUpper(value)
			}

		case "params":
			ep.Params = p.parseParams()

		case "body":
			if value, ok := p.expectIdent("endpoint body model"); ok {
				ep.Body = value
			}

		case "response":
			if value, ok := p.expectIdent("endpoint response model"); ok {
				ep.Response = value

				if p.atPunct("[") && p.peekPunct(1, "]") {
					p.advance()
					p.advance()

					ep.ResponseArray = true
				}
			}

		default:
			p.syntax(p.cur().Pos, "unknown endpoint attribute "+strconv.Quote(key))
			p.skipValue()
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("}")

	return ep
}

// parseMockData parses: 'mockData' ':'? '{' (ID ':' '[' Item,* ']')* '}'.
func (p *parser) parseMockData() {
	p.advance() // 'mockData'
	p.acceptPunct(":")

	if !p.expectPunct("{") {
		p.recoverSection()

		return
	}

	mock := &MockData{}

	for !p.atPunct("}") {
		if p.at(KindEOF) {
			p.syntax(p.cur().Pos, "unterminated mockData block")

			break
		}

		name, ok := p.expectIdent("mock section name")
		if !ok {
			p.advance()

			continue
		}

		if !p.expectPunct(":") {
			continue
		}

		section := &MockSection{Name: name}

		if p.expectPunct("[") {
			for !p.atPunct("]") && !p.at(KindEOF) {
				if p.atPunct("{") {
					section.Items = append(section.Items, p.parseMockItem())
				} else {
					p.syntax(p.cur().Pos, "expected mock item, got "+describe(p.cur()))
					p.advance()
				}

				p.acceptPunct(",")
			}

			p.acceptPunct("]")
		}

		mock.Sections = append(mock.Sections, section)

		p.acceptPunct(",")
	}

	p.acceptPunct("}")

	app := p.application()
	app.Mock = mock
}

func (p *parser) parseMockItem() MockItem {
	p.advance() // '{'

	var item MockItem

	for !p.atPunct("}") && !p.at(KindEOF) {
		key, ok := p.expectIdent("mock item key")
		if !ok {
			p.advance()

			continue
		}

		if !p.expectPunct(":") {
			continue
		}

		value, ok := p.value()
		if !ok {
			p.advance()

			continue
		}

		item = append(item, MockEntry{Key: key, Value: value})

		p.acceptPunct(",")
	}

	p.acceptPunct("}")

	return item
}

// parseBag parses a generic property bag: '{' (ID ':' Value | ID)* '}'.
// Bare identifiers become boolean flags.
func (p *parser) parseBag() map[string]any {
	if !p.expectPunct("{") {
		return nil
	}

	attrs := make(map[string]any)

	for !p.atPunct("}") && !p.at(KindEOF) {
		key, ok := p.expectIdent("attribute name")
		if !ok {
			p.advance()

			continue
		}

		if p.acceptPunct(":") {
			if value, ok := p.value(); ok {
				attrs[key] = value
			}
		} else {
			attrs[key] = true
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("}")

	return attrs
}

func (p *parser) parseBagList() []map[string]any {
	if !p.expectPunct("[") {
		return nil
	}

	var bags []map[string]any

	for !p.atPunct("]") && !p.at(KindEOF) {
		if p.atPunct("{") {
			bags = append(bags, p.parseBag())
		} else {
			p.syntax(p.cur().Pos, "expected '{', got "+describe(p.cur()))
			p.advance()
		}

		p.acceptPunct(",")
	}

	p.acceptPunct("]")

	return bags
}

// value parses a generic value: literal, list, or bag.
func (p *parser) value() (any, bool) {
	tok := p.cur()

	switch {
	case tok.Kind == KindString:
		p.advance()

		return tok.Value, true

	case tok.Kind == KindNumber:
		p.advance()

		if i, err := strconv.ParseInt(tok.Text, 10, 64); err == nil {
			return i, true
		}

		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return tok.Text, true
		}

		return f, true

	case tok.Kind == KindIdent:
		p.advance()

		switch tok.Text {
		case "true":
			return true, true
		case "false":
			return false, true
		default:
			return tok.Text, true
		}

	case p.atPunct("["):
		p.advance()

		list := make([]any, 0, 4)

		for !p.atPunct("]") && !p.at(KindEOF) {
			item, ok := p.value()
			if !ok {
				p.advance()

				continue
			}

			list = append(list, item)

			p.acceptPunct(",")
		}

		p.acceptPunct("]")

		return list, true

	case p.atPunct("{"):
		return p.parseBag(), true

	default:
		p.syntax(tok.Pos, "expected value, got "+describe(tok))

		return nil, false
	}
}

// literal parses a scalar literal and returns its raw text.
func (p *parser) literal() (string, bool) {
	tok := p.cur()

	switch tok.Kind {
	case KindString, KindNumber, KindIdent:
		p.advance()

		return tok.Value, true
	default:
		p.syntax(tok.Pos, "expected literal, got "+describe(tok))

		return "", false
	}
}

// skipValue skips a balanced value after a failed attribute parse.
func (p *parser) skipValue() {
	switch {
	case p.atPunct("{"), p.atPunct("["):
		open := p.cur().Text

		closing := "}"
		if open == "[" {
			closing = "]"
		}

		p.advance()

		depth := 1

		for !p.at(KindEOF) && depth > 0 {
			switch p.cur().Text {
			case open:
				depth++
			case closing:
				depth--
			}

			p.advance()
		}

	case p.at(KindEOF):

	default:
		p.advance()
	}
}

// recoverSection skips past the offending token, then forward to the next
// token that plausibly starts a section, or EOF. Brace depth is not
// tracked: a malformed section frequently leaves braces unbalanced, and
// counting them would swallow everything that follows.
func (p *parser) recoverSection() {
	if p.at(KindEOF) {
		return
	}

	p.advance()

	for !p.at(KindEOF) {
		if p.atSectionStart() {
			return
		}

		p.advance()
	}
}

// atSectionStart distinguishes a section keyword from an identically named
// attribute key (e.g. the 'screen' key of a navigation item) by lookahead.
func (p *parser) atSectionStart() bool {
	tok := p.cur()

	if tok.Kind != KindIdent || !sectionKeywords[tok.Text] {
		return false
	}

	switch tok.Text {
	case "app", "model", "screen":
		// Named sections: keyword followed by the section name.
		return p.peekKind(1) == KindIdent

	default:
		// navigation, api, mockData: keyword followed by a block, with an
		// optional ':' in between.
		if p.peekPunct(1, "{") {
			return true
		}

		return p.peekPunct(1, ":") && p.peekPunct(2, "{")
	}
}

// Token helpers

func (p *parser) cur() Token {
	return p.toks[p.pos]
}

func (p *parser) advance() {
	if p.toks[p.pos].Kind != KindEOF {
		p.pos++
	}
}

func (p *parser) at(k Kind) bool {
	return p.cur().Kind == k
}

func (p *parser) atPunct(s string) bool {
	tok := p.cur()

	return tok.Kind == KindPunct && tok.Text == s
}

func (p *parser) peekKind(n int) Kind {
	if p.pos+n >= len(p.toks) {
		return KindEOF
	}

	return p.toks[p.pos+n].Kind
}

func (p *parser) peekPunct(n int, s string) bool {
	if p.pos+n >= len(p.toks) {
		return false
	}

	tok := p.toks[p.pos+n]

	return tok.Kind == KindPunct && tok.Text == s
}

func (p *parser) atIdent(s string) bool {
	tok := p.cur()

	return tok.Kind == KindIdent && tok.Text == s
}

func (p *parser) acceptPunct(s string) bool {
	if p.atPunct(s) {
		p.advance()

		return true
	}

	return false
}

func (p *parser) expectPunct(s string) bool {
	if p.acceptPunct(s) {
		return true
	}

	p.syntax(p.cur().Pos, "expected "+strconv.Quote(s)+", got "+describe(p.cur()))

	return false
}

func (p *parser) expectIdent(what string) (string, bool) {
	tok := p.cur()

	if tok.Kind != KindIdent {
		p.syntax(tok.Pos, "expected "+what+", got "+describe(tok))

		return "", false
	}

	p.advance()

	return tok.Text, true
}

func (p *parser) expectString(what string) (string, bool) {
	tok := p.cur()

	if tok.Kind != KindString {
		p.syntax(tok.Pos, "expected "+what+", got "+describe(tok))

		return "", false
	}

	p.advance()

	return tok.Value, true
}

func (p *parser) syntax(pos Position, msg string) {
	p.diags = append(p.diags, Diagnostic{
		Severity: SeverityError,
		Rule:     "syntax",
		Message:  msg,
		Pos:      pos,
	})
}

func describe(tok Token) string {
	switch tok.Kind {
	case KindEOF:
		return "end of input"
	case KindIdent, KindPunct, KindNumber:
		return strconv.Quote(tok.Text)
	case KindString:
		return "string " + strconv.Quote(tok.Value)
	default:
		return "invalid character " + strconv.Quote(tok.Text)
	}
}

// Bag attribute accessors

func stringAttr(attrs map[string]any, key string) string {
	if v, ok := attrs[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}

	return ""
}

func boolAttr(attrs map[string]any, key string) bool {
	if v, ok := attrs[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}

	return false
}
