package reader

import (
	"fmt"
	"strings"

	"ednjit/internal/lexer"
)

// ParseError is returned by Parse for malformed input; it carries enough
// position information for report.Diagnostic to format per the
// "<path>(<line>,<col>) : error: <message>" contract.
type ParseError struct {
	Line, Column int
	Message      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("(%d,%d) : error: %s", e.Line, e.Column, e.Message)
}

// Parse reads exactly one top-level node from src's token stream. A
// source file with no tokens, or with trailing tokens after a
// complete root form, is rejected.
func Parse(src string) (Node, error) {
	toks := lexer.Lex(src)
	if len(toks) == 0 {
		return Node{}, &ParseError{Line: 1, Column: 1, Message: "empty input"}
	}

	p := &parser{toks: toks}
	n, err := p.readAhead()
	if err != nil {
		return Node{}, err
	}
	if p.pos != len(p.toks) {
		return Node{}, p.errAt(p.toks[p.pos], "unexpected trailing input after root form")
	}
	return n, nil
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.toks) {
		return lexer.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (lexer.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) errAt(t lexer.Token, format string, args ...interface{}) error {
	return &ParseError{Line: t.Line, Column: t.Column, Message: fmt.Sprintf(format, args...)}
}

// readAhead reads exactly one node starting at the current position,
// mirroring the original reader's readAhead: the head token's kind and
// text determine what follows.
func (p *parser) readAhead() (Node, error) {
	tok, ok := p.next()
	if !ok {
		return Node{}, &ParseError{Line: 1, Column: 1, Message: "unexpected end of input"}
	}

	switch tok.Kind {
	case lexer.String:
		return Node{Kind: String, Line: tok.Line, Column: tok.Column, Text: tok.Text}, nil
	case lexer.Paren:
		switch tok.Text {
		case "(":
			return p.readCollection(tok, ")", List)
		case "[":
			return p.readCollection(tok, "]", Vector)
		case "{":
			return p.readCollection(tok, "}", Map)
		default:
			return Node{}, p.errAt(tok, "unexpected closing delimiter %q", tok.Text)
		}
	case lexer.Atom:
		return p.readAtom(tok)
	default:
		return Node{}, p.errAt(tok, "unrecognized token")
	}
}

func (p *parser) readCollection(open lexer.Token, close string, kind Kind) (Node, error) {
	var children []Node
	for {
		tok, ok := p.peek()
		if !ok {
			return Node{}, p.errAt(open, "unclosed %q", open.Text)
		}
		if tok.Kind == lexer.Paren && tok.Text == close {
			p.pos++
			return Node{Kind: kind, Line: open.Line, Column: open.Column, Children: children}, nil
		}
		if tok.Kind == lexer.Paren && (tok.Text == ")" || tok.Text == "]" || tok.Text == "}") {
			return Node{}, p.errAt(tok, "unexpected closing delimiter %q", tok.Text)
		}

		child, err := p.readAhead()
		if err != nil {
			return Node{}, err
		}
		children = append(children, child)
	}
}

func (p *parser) readAtom(tok lexer.Token) (Node, error) {
	if strings.HasPrefix(tok.Text, "#") {
		return p.readTagged(tok)
	}
	return p.classifyAtom(tok)
}

// readTagged handles `#_` (Discard), `#{` (Set-via-empty-tag-name), and
// `#tag value` (Tagged).
func (p *parser) readTagged(tok lexer.Token) (Node, error) {
	tagName := tok.Text[1:]

	if tagName == "_" {
		inner, err := p.readAhead()
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: Discard, Line: tok.Line, Column: tok.Column, Children: []Node{inner}}, nil
	}

	if tagName == "" {
		// `#` immediately followed by a collection open: only `{`
		// (producing a Map) is a legal set literal.
		next, ok := p.peek()
		if !ok || !(next.Kind == lexer.Paren && next.Text == "{") {
			return Node{}, p.errAt(tok, "'#' must be followed by '{' to form a set")
		}
		p.pos++
		mapNode, err := p.readCollection(next, "}", Map)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: Set, Line: tok.Line, Column: tok.Column, Children: mapNode.Children}, nil
	}

	if !validSymbol(tagName) {
		return Node{}, p.errAt(tok, "invalid tag name %q", tagName)
	}

	inner, err := p.readAhead()
	if err != nil {
		return Node{}, err
	}
	sym := Node{Kind: Symbol, Line: tok.Line, Column: tok.Column, Text: tagName}
	return Node{Kind: Tagged, Line: tok.Line, Column: tok.Column, Children: []Node{sym, inner}}, nil
}

// classifyAtom applies the ordered classifier list from the grammar:
// nil, bool, char, int, float, keyword, symbol.
func (p *parser) classifyAtom(tok lexer.Token) (Node, error) {
	text := tok.Text

	switch {
	case text == "nil":
		return Node{Kind: Nil, Line: tok.Line, Column: tok.Column, Text: text}, nil
	case text == "true" || text == "false":
		return Node{Kind: Bool, Line: tok.Line, Column: tok.Column, Text: text}, nil
	case len(text) == 2 && text[0] == '\\':
		return Node{Kind: Char, Line: tok.Line, Column: tok.Column, Text: text}, nil
	case validInt(text):
		return Node{Kind: Int, Line: tok.Line, Column: tok.Column, Text: text}, nil
	case validFloat(text):
		return Node{Kind: Float, Line: tok.Line, Column: tok.Column, Text: text}, nil
	case validKeyword(text):
		return Node{Kind: Keyword, Line: tok.Line, Column: tok.Column, Text: text[1:]}, nil
	case validSymbol(text):
		return Node{Kind: Symbol, Line: tok.Line, Column: tok.Column, Text: text}, nil
	default:
		return Node{}, p.errAt(tok, "%q is not a valid literal, keyword, or symbol", text)
	}
}

// -----------------------------------------------------------------------------
// literal grammar

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func validInt(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return false
	}
	if i < len(s) && (s[i] == 'N' || s[i] == 'M') {
		i++
	}
	return i == len(s)
}

// validFloat implements "digits '.' digits with at least one side
// non-empty", plus an optional exponent and optional trailing 'M'. A
// leading '.' with no integer part is invalid, resolving the source
// grammar's ambiguity around a leading dot.
func validFloat(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}

	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intLen := i - intStart

	if i >= len(s) || s[i] != '.' {
		return false
	}
	i++

	fracStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	fracLen := i - fracStart

	if intLen == 0 || fracLen == 0 {
		// require the integer part to be present and non-empty: a
		// leading '.' is rejected regardless of the fractional side.
		if intLen == 0 {
			return false
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		expStart := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == expStart {
			return false // trailing E with no digits
		}
	}

	if i < len(s) && s[i] == 'M' {
		i++
	}

	return i == len(s)
}

const symbolChars = "0123456789abcdefghijklmnopqrstuvwxyz.*+!-_?$%&=:#/><;"

func isSymbolChar(c byte) bool {
	return strings.IndexByte(symbolChars, lowerByte(c)) >= 0
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

func validSymbol(s string) bool {
	if s == "" {
		return false
	}
	if s == "/" {
		return true
	}

	for i := 0; i < len(s); i++ {
		if !isSymbolChar(s[i]) {
			return false
		}
	}

	if isDigit(s[0]) {
		return false
	}
	if s[0] == ':' || s[0] == '#' || s[0] == '/' {
		return false
	}
	if (s[0] == '-' || s[0] == '+' || s[0] == '.') && len(s) > 1 && isDigit(s[1]) {
		return false
	}

	slashes := strings.Count(s, "/")
	if slashes > 1 {
		return false
	}

	return true
}

func validKeyword(s string) bool {
	return strings.HasPrefix(s, ":") && validSymbol(s[1:])
}
