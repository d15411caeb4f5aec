// Package lang implements the front end for the application DSL: a textual
// description of a simple application (data models, screens, navigation,
// API endpoints, mock data) that downstream emitters turn into scaffolding
// code.
//
// The grammar is simple enough for a hand-written recursive descent parser.
// No parser generator, no generated code.
//
// # Grammar
//
// Informal EBNF:
//
//	App        → 'app' ID '{' 'name' ':' STRING 'id' ':' STRING 'version' ':' STRING
//	             ('platforms' ':' '[' Platform (',' Platform)* ']')?
//	             ('theme' ':' '{' (ID ':' STRING)* '}')? '}'
//	             Model* Screen* Navigation? API? MockData?
//	Model      → 'model' ID '{' Property* '}'
//	Property   → ID ':' DataType Feature*
//	DataType   → ('string'|'number'|'decimal'|'boolean'|'date'|'array'|'object') '[]'?
//	Feature    → 'required' | 'default' ':' Literal | 'enum' ':' '[' Literal,* ']'
//	Screen     → 'screen' ID '{' 'title' ':' STRING 'initial'? Params? Layout '}'
//	Layout     → 'layout' ':' '{' 'type' ':' ('stack'|'form'|'scroll'|'tabs') ... '}'
//	Navigation → 'navigation' ':'? '{' 'type' ':' ('tab'|'drawer'|'stack')
//	             'items' ':' '[' NavItem,* ']' '}'
//	API        → 'api' ':'? '{' 'baseUrl' ':' STRING 'mock'?
//	             'endpoints' ':' '[' Endpoint,* ']' '}'
//	Endpoint   → '{' 'id' ':' ID 'path' ':' STRING 'method' ':' ID
//	             ('params' ':' '[' Param,* ']')? ('body' ':' ID)?
//	             'response' ':' ID '[]'? '}'
//	MockData   → 'mockData' '{' (ID ':' '[' Item,* ']')* '}'
//
// Commas between list items are optional, as is the ':' after 'navigation'
// and 'api'. Comments use '//' and '/* */'. The navigation, api, platforms,
// theme, and mockData sections are all optional at the grammar level; the
// validator warns when models, screens, navigation, or api are absent.
//
// # Pipeline
//
// Source text flows through four stages:
//
//	ParseString  source → *Document (grammar tree + syntax diagnostics)
//	Extract      source → *Extraction (best-effort regex recovery pass)
//	Reconcile    Document + Extraction → *Application
//	Validate     Application → []Diagnostic
//
// [Compile] runs all four. The parser recovers from malformed sections by
// skipping to the next section keyword, so a single bad block never aborts
// the whole parse; syntax problems accumulate as diagnostics on the
// Document. A hard error is returned only for empty or blank input
// ([ErrEmptyInput]) or, from [Reconcile], when no grammar tree exists at
// all ([ErrDocumentParse]).
//
// The pipeline is synchronous and holds no shared mutable state across
// invocations; independent invocations may run concurrently.
package lang
