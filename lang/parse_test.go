package lang

import (
	"context"
	"errors"
	"testing"
)

// financeSource is a complete, well-formed input exercising every section.
const financeSource = `
app FinanceApp {
  name: "Personal Finance"
  id: "com.example.finance"
  version: "1.0.0"
  platforms: [web, ios]
  theme: { primaryColor: "#0A84FF" }
}

model Account {
  id: string required
  name: string required
  balance: decimal default: 0
  type: string enum: [checking, savings, credit]
}

model Transaction {
  id: string required
  accountId: string required
  amount: decimal required
  tags: string[]
}

screen AccountList {
  title: "Accounts"
  initial
  layout: {
    type: stack
    components: [
      { type: list, id: accounts, data: Account }
    ]
  }
}

screen AccountDetail {
  title: "Account"
  params: [ { name: accountId, type: string, required } ]
  layout: {
    type: form
    fields: [
      { name: name, label: "Name", type: text, required }
    ]
    submitButton: { label: "Save", action: save }
  }
}

navigation {
  type: tab
  items: [
    { title: "Accounts", screen: AccountList, icon: "list" }
  ]
}

api {
  baseUrl: "https://api.example.com"
  mock
  endpoints: [
    { id: getAccounts, path: "/accounts", method: GET, response: Account[] },
    { id: createAccount, path: "/accounts", method: POST, body: Account, response: Account }
  ]
}

mockData {
  accounts: [
    { id: "1", name: "Checking", balance: 1200.50 }
  ]
}
`

func parseApp(t *testing.T, src string) (*Application, []Diagnostic) {
	t.Helper()

	doc, err := ParseString(context.Background(), src, WithCache(false))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if doc.App == nil {
		t.Fatal("expected grammar tree")
	}

	return doc.App, doc.Syntax
}

func TestParseString_Complete(t *testing.T) {
	app, diags := parseApp(t, financeSource)

	if len(diags) != 0 {
		t.Fatalf("unexpected syntax diagnostics: %v", diags)
	}

	if app.Name != "FinanceApp" {
		t.Errorf("Name = %q", app.Name)
	}

	if app.DisplayName != "Personal Finance" {
		t.Errorf("DisplayName = %q", app.DisplayName)
	}

	if app.ID != "com.example.finance" || app.Version != "1.0.0" {
		t.Errorf("ID/Version = %q/%q", app.ID, app.Version)
	}

	if len(app.Platforms) != 2 ||
		app.Platforms[0] != PlatformWeb || app.Platforms[1] != PlatformIOS {
		t.Errorf("Platforms = %v", app.Platforms)
	}

	if app.Theme["primaryColor"] != "#0A84FF" {
		t.Errorf("Theme = %v", app.Theme)
	}

	if len(app.Models) != 2 || len(app.Screens) != 2 {
		t.Fatalf("got %d models, %d screens", len(app.Models), len(app.Screens))
	}

	if app.Navigation == nil || app.API == nil || app.Mock == nil {
		t.Fatal("missing navigation, api, or mockData")
	}
}

func TestParseString_Model(t *testing.T) {
	app, _ := parseApp(t, financeSource)

	account := app.Model("Account")
	if account == nil {
		t.Fatal("model Account not found")
	}

	if len(account.Properties) != 4 {
		t.Fatalf("got %d properties", len(account.Properties))
	}

	id := account.Property("id")
	if id == nil || !id.Required || id.Type.Base != "string" {
		t.Errorf("id property = %+v", id)
	}

	balance := account.Property("balance")
	if balance == nil || !balance.HasDefault || balance.Default != "0" {
		t.Errorf("balance property = %+v", balance)
	}

	kind := account.Property("type")
	if kind == nil || len(kind.Enum) != 3 || kind.Enum[0] != "checking" {
		t.Errorf("type property = %+v", kind)
	}

	tags := app.Model("Transaction").Property("tags")
	if tags == nil || !tags.Type.Array || tags.Type.Base != "string" {
		t.Errorf("tags property = %+v", tags)
	}
}

func TestParseString_Screen(t *testing.T) {
	app, _ := parseApp(t, financeSource)

	list := app.Screen("AccountList")
	if list == nil {
		t.Fatal("screen AccountList not found")
	}

	if !list.Initial || list.Title != "Accounts" {
		t.Errorf("AccountList = %+v", list)
	}

	if list.Layout == nil || list.Layout.Type != LayoutStack {
		t.Fatalf("AccountList layout = %+v", list.Layout)
	}

	if len(list.Layout.Components) != 1 ||
		list.Layout.Components[0].Type != "list" {
		t.Errorf("components = %+v", list.Layout.Components)
	}

	detail := app.Screen("AccountDetail")
	if detail.Initial {
		t.Error("AccountDetail should not be initial")
	}

	if len(detail.Params) != 1 || detail.Params[0].Name != "accountId" ||
		!detail.Params[0].Required {
		t.Errorf("params = %+v", detail.Params)
	}

	if detail.Layout.Type != LayoutForm || len(detail.Layout.Fields) != 1 {
		t.Errorf("detail layout = %+v", detail.Layout)
	}

	if detail.Layout.Submit == nil || detail.Layout.Submit.Label != "Save" {
		t.Errorf("submit = %+v", detail.Layout.Submit)
	}
}

func TestParseString_API(t *testing.T) {
	app, _ := parseApp(t, financeSource)

	api := app.API

	if api.BaseURL != "https://api.example.com" || !api.Mock {
		t.Errorf("api = %+v", api)
	}

	if len(api.Endpoints) != 2 {
		t.Fatalf("got %d endpoints", len(api.Endpoints))
	}

	get := api.Endpoints[0]
	if get.ID != "getAccounts" || get.Method != "GET" ||
		get.Response != "Account" || !get.ResponseArray {
		t.Errorf("getAccounts = %+v", get)
	}

	post := api.Endpoints[1]
	if post.Method != "POST" || post.Body != "Account" || post.ResponseArray {
		t.Errorf("createAccount = %+v", post)
	}
}

func TestParseString_InlineEndpoint(t *testing.T) {
	src := `
app A { name: "A" id: "a" version: "1" }
api {
  baseUrl: "https://x.test"
  endpoint getThing {
    path: "/things/{id}"
    method: GET
    response: Thing
  }
}
`

	app, diags := parseApp(t, src)

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	if len(app.API.Endpoints) != 1 {
		t.Fatalf("got %d endpoints", len(app.API.Endpoints))
	}

	ep := app.API.Endpoints[0]
	if ep.ID != "getThing" || ep.Path != "/things/{id}" {
		t.Errorf("endpoint = %+v", ep)
	}
}

func TestParseString_OptionalSections(t *testing.T) {
	// Navigation and api are optional at the grammar level.
	app, diags := parseApp(t, `app A { name: "A" id: "a" version: "1" }`)

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	if app.Navigation != nil || app.API != nil {
		t.Error("expected nil navigation and api")
	}

	if len(app.Models) != 0 || len(app.Screens) != 0 {
		t.Error("expected empty collections")
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\t\n"} {
		_, err := ParseString(context.Background(), src, WithCache(false))
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("ParseString(%q) error = %v, want ErrEmptyInput", src, err)
		}
	}
}

func TestParseString_ErrorRecovery(t *testing.T) {
	// The broken model must not prevent the following sections from
	// parsing.
	src := `
app A { name: "A" id: "a" version: "1" }

model Broken 42 {

model Good {
  id: string required
}

screen Home {
  title: "Home"
  initial
  layout: { type: stack, components: [ { type: text } ] }
}
`

	app, diags := parseApp(t, src)

	if len(diags) == 0 {
		t.Fatal("expected syntax diagnostics for the malformed model")
	}

	for _, d := range diags {
		if d.Pos.Line == 0 {
			t.Errorf("syntax diagnostic without position: %v", d)
		}
	}

	if app.Model("Good") == nil {
		t.Error("model after the malformed one was not recovered")
	}

	if app.Screen("Home") == nil {
		t.Error("screen after the malformed model was not recovered")
	}
}

func TestParseString_PartialNeverError(t *testing.T) {
	// Garbage input parses to a Document with diagnostics, never an error.
	inputs := []string{
		"model",
		"app",
		"}}}{{{",
		"screen X {",
		"bogus section here",
		"app A { name: }",
	}

	for _, src := range inputs {
		doc, err := ParseString(context.Background(), src, WithCache(false))
		if err != nil {
			t.Errorf("ParseString(%q) error = %v, want nil", src, err)

			continue
		}

		if len(doc.Syntax) == 0 {
			t.Errorf("ParseString(%q) produced no diagnostics", src)
		}
	}
}

func TestParseString_DuplicateApp(t *testing.T) {
	src := `
app A { name: "A" id: "a" version: "1" }
app B { name: "B" id: "b" version: "2" }
`

	app, diags := parseApp(t, src)

	if app.Name != "A" {
		t.Errorf("Name = %q, want first declaration kept", app.Name)
	}

	if len(diags) == 0 {
		t.Error("expected diagnostic for duplicate app declaration")
	}
}

func TestParseString_CacheReturnsSameDocument(t *testing.T) {
	ctx := context.Background()
	src := `app Cached { name: "C" id: "c" version: "1" }`

	first, err := ParseString(ctx, src)
	if err != nil {
		t.Fatal(err)
	}

	second, err := ParseString(ctx, src)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("expected cache to return the identical document")
	}
}
