package lang

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Position identifies a location in source text.
type Position struct {
	Offset int `json:"-"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Kind classifies a lexical token.
type Kind int

const (
	KindEOF Kind = iota
	KindIdent
	KindString
	KindNumber
	KindPunct
	// KindInvalid is the catch-all terminal for unrecognized characters.
	// Lexing never fails; invalid tokens surface as syntax diagnostics
	// when the parser encounters them.
	KindInvalid
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindIdent:
		return "identifier"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindPunct:
		return "punctuation"
	default:
		return "invalid"
	}
}

// Token is a single lexical token.
type Token struct {
	Kind Kind
	// Text is the raw source text of the token.
	Text string
	// Value is the interpreted value: for strings, the unquoted text with
	// escapes resolved; for all other kinds, identical to Text.
	Value string
	Pos   Position
}

// lexer walks the input rune by rune, tracking line and column.
type lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

// Lex converts source text into a token slice terminated by a KindEOF
// token. Whitespace and comments ('//...' and '/*...*/') are skipped.
// Lexing never aborts: characters outside the grammar become KindInvalid
// tokens.
func Lex(src string) []Token {
	l := &lexer{input: []byte(src), line: 1, col: 1}

	toks := make([]Token, 0, 64)

	for {
		l.skipWhitespaceAndComments()

		if l.eof() {
			toks = append(toks, Token{Kind: KindEOF, Pos: l.position()})

			return toks
		}

		toks = append(toks, l.next())
	}
}

func (l *lexer) next() Token {
	pos := l.position()
	ch := l.peek()

	switch {
	case isIdentStart(ch):
		return l.lexIdent(pos)

	case ch == '"' || ch == '\'':
		return l.lexString(pos, ch)

	case unicode.IsDigit(ch):
		return l.lexNumber(pos)

	case ch == '-' && unicode.IsDigit(l.peekAt(1)):
		return l.lexNumber(pos)

	case ch == '{' || ch == '}' || ch == '[' || ch == ']' || ch == ':' || ch == ',':
		l.advance()

		text := string(ch)

		return Token{Kind: KindPunct, Text: text, Value: text, Pos: pos}

	default:
		l.advance()

		text := string(ch)

		return Token{Kind: KindInvalid, Text: text, Value: text, Pos: pos}
	}
}

func (l *lexer) lexIdent(pos Position) Token {
	start := l.pos

	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}

	text := string(l.input[start:l.pos])

	return Token{Kind: KindIdent, Text: text, Value: text, Pos: pos}
}

func (l *lexer) lexNumber(pos Position) Token {
	start := l.pos

	if l.peek() == '-' {
		l.advance()
	}

	for !l.eof() && unicode.IsDigit(l.peek()) {
		l.advance()
	}

	// Fractional part: '.' must be followed by a digit, otherwise it is
	// left for the next token.
	if l.peek() == '.' && unicode.IsDigit(l.peekAt(1)) {
		l.advance()

		for !l.eof() && unicode.IsDigit(l.peek()) {
			l.advance()
		}
	}

	text := string(l.input[start:l.pos])

	return Token{Kind: KindNumber, Text: text, Value: text, Pos: pos}
}

func (l *lexer) lexString(pos Position, quote rune) Token {
	start := l.pos

	l.advance() // opening quote

	var sb strings.Builder

	for !l.eof() {
		ch := l.peek()

		if ch == '\\' {
			l.advance()

			if l.eof() {
				break
			}

			esc := l.peek()
			l.advance()

			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteRune(esc)
			}

			continue
		}

		if ch == quote {
			l.advance() // closing quote

			return Token{
				Kind:  KindString,
				Text:  string(l.input[start:l.pos]),
				Value: sb.String(),
				Pos:   pos,
			}
		}

		if ch == '\n' {
			// Unterminated at end of line: treat the consumed text as the
			// string value rather than swallowing the rest of the source.
			break
		}

		sb.WriteRune(ch)
		l.advance()
	}

	return Token{
		Kind:  KindString,
		Text:  string(l.input[start:l.pos]),
		Value: sb.String(),
		Pos:   pos,
	}
}

// Helper methods

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(l.input[l.pos:])

	return r
}

func (l *lexer) peekAt(n int) rune {
	pos := l.pos

	for range n {
		if pos >= len(l.input) {
			return 0
		}

		_, size := utf8.DecodeRune(l.input[pos:])
		pos += size
	}

	if pos >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRune(l.input[pos:])

	return r
}

func (l *lexer) peekN(n int) string {
	if l.pos+n > len(l.input) {
		return string(l.input[l.pos:])
	}

	return string(l.input[l.pos : l.pos+n])
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRune(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		for !l.eof() && unicode.IsSpace(l.peek()) {
			l.advance()
		}

		if l.eof() {
			return
		}

		if l.peekN(2) == "//" {
			l.skipLineComment()

			continue
		}

		if l.peekN(2) == "/*" {
			l.skipBlockComment()

			continue
		}

		return
	}
}

func (l *lexer) skipLineComment() {
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}

	if !l.eof() {
		l.advance() // '\n'
	}
}

func (l *lexer) skipBlockComment() {
	l.advance() // '/'
	l.advance() // '*'

	for !l.eof() {
		if l.peekN(2) == "*/" {
			l.advance()
			l.advance()

			return
		}

		l.advance()
	}
}

// Character classification

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
