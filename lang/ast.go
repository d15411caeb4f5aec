package lang

import (
	"iter"
	"regexp"
	"strings"
)

// Platform identifies a code generation target.
type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Platforms returns an iterator over all supported platforms.
func Platforms() iter.Seq[Platform] {
	return func(yield func(Platform) bool) {
		for _, p := range []Platform{PlatformWeb, PlatformIOS, PlatformAndroid} {
			if !yield(p) {
				return
			}
		}
	}
}

// ParsePlatform parses a platform name case-insensitively.
func ParsePlatform(s string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "web":
		return PlatformWeb, true
	case "ios":
		return PlatformIOS, true
	case "android":
		return PlatformAndroid, true
	default:
		return "", false
	}
}

// Application is the root of the reconciled model. It exclusively owns all
// nested collections; screens are referenced by navigation items by name
// only, resolved at validation time.
type Application struct {
	Name        string
	DisplayName string
	ID          string
	Version     string
	Platforms   []Platform
	Theme       map[string]string
	Models      []*Model
	Screens     []*Screen
	Navigation  *Navigation
	API         *API
	Mock        *MockData
}

// Model is a named data model with an ordered property list.
type Model struct {
	Name       string
	Properties []*Property
	Pos        Position
}

// Property returns the named property, or nil.
func (m *Model) Property(name string) *Property {
	for _, p := range m.Properties {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// DataType is a property or parameter type, optionally array-valued.
type DataType struct {
	Base  string
	Array bool
}

// String returns the DSL spelling of the type, e.g. "string" or "number[]".
func (t DataType) String() string {
	if t.Array {
		return t.Base + "[]"
	}

	return t.Base
}

// baseTypes is the closed set of property base types.
var baseTypes = map[string]bool{
	"string":  true,
	"number":  true,
	"decimal": true,
	"boolean": true,
	"date":    true,
	"array":   true,
	"object":  true,
}

// Known reports whether the base type is one the DSL defines.
func (t DataType) Known() bool { return baseTypes[t.Base] }

// ParseDataType splits a type spelling into base and array flag.
func ParseDataType(s string) DataType {
	s = strings.TrimSpace(s)

	if base, ok := strings.CutSuffix(s, "[]"); ok {
		return DataType{Base: base, Array: true}
	}

	return DataType{Base: s}
}

// Property is a single model property. Default holds the raw literal text
// from the source; HasDefault distinguishes an absent default from an
// explicitly empty one.
type Property struct {
	Name       string
	Type       DataType
	Required   bool
	Default    string
	HasDefault bool
	Enum       []string
	Pos        Position
}

// Screen is a named screen with a title, optional parameters, and a layout.
type Screen struct {
	Name    string
	Title   string
	Initial bool
	Params  []*Param
	Layout  *Layout
	Pos     Position
}

// Param is a screen or endpoint parameter.
type Param struct {
	Name     string
	Type     DataType
	Required bool
}

// LayoutType enumerates the screen layout shapes.
type LayoutType string

const (
	LayoutStack  LayoutType = "stack"
	LayoutForm   LayoutType = "form"
	LayoutScroll LayoutType = "scroll"
	LayoutTabs   LayoutType = "tabs"
)

// Layout describes a screen's content. Which collections are populated
// depends on the layout type: form layouts carry Fields and buttons, the
// rest carry Components.
type Layout struct {
	Type       LayoutType
	Components []*Component
	Fields     []*Field
	Actions    []*Action
	Submit     *Button
	Cancel     *Button
}

// Component is a generic layout component: a type name plus a property bag.
type Component struct {
	Type  string
	Attrs map[string]any
}

// Field is a form input field.
type Field struct {
	Name     string
	Label    string
	Type     string
	Required bool
}

// Action is a tappable action within a layout.
type Action struct {
	Label  string
	Action string
	Target string
}

// Button is a form submit or cancel button.
type Button struct {
	Label  string
	Action string
}

// NavType enumerates the navigation container shapes.
type NavType string

const (
	NavTab    NavType = "tab"
	NavDrawer NavType = "drawer"
	NavStack  NavType = "stack"
)

// Navigation is the app's navigation container.
type Navigation struct {
	Type  NavType
	Items []*NavItem
}

// NavItem references a screen by name. The reference is resolved during
// validation, never held as a pointer.
type NavItem struct {
	Title  string
	Screen string
	Icon   string
}

// API describes the app's backend surface.
type API struct {
	BaseURL   string
	Mock      bool
	Endpoints []*Endpoint
}

// Endpoint is a single API endpoint. Body and Response reference models by
// name; ResponseArray marks a list response.
type Endpoint struct {
	ID            string
	Path          string
	Method        string
	Params        []*Param
	Body          string
	Response      string
	ResponseArray bool
	Pos           Position
}

var pathParamPattern = regexp.MustCompile(`\{(\w+)\}`)

// PathParams returns the `{name}` parameter tokens in the endpoint path,
// in order of appearance.
func (e *Endpoint) PathParams() []string {
	matches := pathParamPattern.FindAllStringSubmatch(e.Path, -1)
	if len(matches) == 0 {
		return nil
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}

	return names
}

// Param returns the named declared parameter, or nil.
func (e *Endpoint) Param(name string) *Param {
	for _, p := range e.Params {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// MockData holds named sections of property-bag items. It is structurally
// parsed but otherwise unvalidated.
type MockData struct {
	Sections []*MockSection
}

// Section returns the named mock section, or nil.
func (m *MockData) Section(name string) *MockSection {
	if m == nil {
		return nil
	}

	for _, s := range m.Sections {
		if s.Name == name {
			return s
		}
	}

	return nil
}

// MockSection is an ordered list of mock items.
type MockSection struct {
	Name  string
	Items []MockItem
}

// MockItem is an ordered property bag.
type MockItem []MockEntry

// MockEntry is a single key/value pair of a mock item.
type MockEntry struct {
	Key   string
	Value any
}

// Get returns the value for key and whether it was present.
func (it MockItem) Get(key string) (any, bool) {
	for _, e := range it {
		if e.Key == key {
			return e.Value, true
		}
	}

	return nil, false
}

// Model returns the named model, or nil.
func (a *Application) Model(name string) *Model {
	for _, m := range a.Models {
		if m.Name == name {
			return m
		}
	}

	return nil
}

// Screen returns the named screen, or nil.
func (a *Application) Screen(name string) *Screen {
	for _, s := range a.Screens {
		if s.Name == name {
			return s
		}
	}

	return nil
}

// InitialScreen returns the first screen marked initial, or nil.
func (a *Application) InitialScreen() *Screen {
	for _, s := range a.Screens {
		if s.Initial {
			return s
		}
	}

	return nil
}

// ModelNames returns the declared model names in order.
func (a *Application) ModelNames() []string {
	names := make([]string, 0, len(a.Models))
	for _, m := range a.Models {
		names = append(names, m.Name)
	}

	return names
}

// ScreenNames returns the declared screen names in order.
func (a *Application) ScreenNames() []string {
	names := make([]string, 0, len(a.Screens))
	for _, s := range a.Screens {
		names = append(names, s.Name)
	}

	return names
}
