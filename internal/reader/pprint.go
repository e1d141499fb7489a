package reader

import "strings"

// Pprint renders a Node back to EDN text for diagnostics. It is not
// used for round-tripping source: metadata is never rendered, and the
// output need only be readable, not byte-identical to the input.
func Pprint(n Node) string {
	var b strings.Builder
	pprintInto(&b, n)
	return b.String()
}

func pprintInto(b *strings.Builder, n Node) {
	switch n.Kind {
	case Nil:
		b.WriteString("nil")
	case Bool, Int, Float, Char:
		b.WriteString(n.Text)
	case String:
		b.WriteByte('"')
		b.WriteString(escapeString(n.Text))
		b.WriteByte('"')
	case Symbol:
		b.WriteString(n.Text)
	case Keyword:
		b.WriteByte(':')
		b.WriteString(n.Text)
	case List:
		pprintDelimited(b, n.Children, "(", ")")
	case Vector:
		pprintDelimited(b, n.Children, "[", "]")
	case Map:
		pprintDelimited(b, n.Children, "{", "}")
	case Set:
		pprintDelimited(b, n.Children, "#{", "}")
	case Tagged:
		b.WriteByte('#')
		if len(n.Children) == 2 {
			pprintInto(b, n.Children[0])
			b.WriteByte(' ')
			pprintInto(b, n.Children[1])
		}
	case Discard:
		b.WriteString("#_")
		if len(n.Children) == 1 {
			pprintInto(b, n.Children[0])
		}
	default:
		b.WriteString("<?>")
	}
}

func pprintDelimited(b *strings.Builder, children []Node, open, close string) {
	b.WriteString(open)
	for i, c := range children {
		if i > 0 {
			b.WriteByte(' ')
		}
		pprintInto(b, c)
	}
	b.WriteString(close)
}

// escapeString re-escapes quotes and backslashes for display; other
// characters pass through unchanged. The lexer keeps the backslash of
// a t/n/f/r escape, so such an escape is shown with a doubled backslash.
func escapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
