package codegen

import (
	"strconv"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"ednjit/internal/reader"
)

var specialForms = map[string]bool{
	"struct": true, "defn": true, "cond": true, "while": true,
	"=": true, "put": true, "ref": true, "deref": true, ".": true,
}

var operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

// NodeError pairs an emitter error with the node that raised it, so the
// engine driver can report a position and pretty-print without every
// lowerer having to thread source coordinates by hand.
type NodeError struct {
	Node reader.Node
	Err  error
}

func (e *NodeError) Error() string { return e.Err.Error() }
func (e *NodeError) Unwrap() error { return e.Err }

// Emit is the expression emitter's dispatch: it produces one SSA value
// for n, or an error if n cannot appear in expression position. Any
// error is wrapped in a *NodeError at the innermost node where it was
// first raised.
func (g *Generator) Emit(n reader.Node) (value.Value, error) {
	v, err := g.emitDispatch(n)
	if err != nil {
		if _, already := err.(*NodeError); !already {
			return nil, &NodeError{Node: n, Err: err}
		}
	}
	return v, err
}

func (g *Generator) emitDispatch(n reader.Node) (value.Value, error) {
	switch n.Kind {
	case reader.Int:
		return g.emitIntLit(n)
	case reader.Float:
		return g.emitFloatLit(n)
	case reader.Symbol:
		return g.emitSymbol(n)
	case reader.List:
		return g.emitList(n)
	default:
		return nil, errorf("%s is not valid in expression position", n.Kind)
	}
}

func (g *Generator) emitIntLit(n reader.Node) (value.Value, error) {
	typeName := n.Meta("type")
	if typeName == "" {
		typeName = "int32"
	}

	t, err := g.resolveType(typeName)
	if err != nil {
		return nil, err
	}
	intType, ok := t.(*types.IntType)
	if !ok {
		return nil, errorf("type %q is not an integer type", typeName)
	}

	iv, err := strconv.ParseInt(n.Text, 10, 64)
	if err != nil {
		// tolerate the N/M literal suffixes the lexer/reader pass through.
		trimmed := trimNumSuffix(n.Text)
		iv, err = strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, errorf("invalid integer literal %q", n.Text)
		}
	}

	return constant.NewInt(intType, iv), nil
}

func (g *Generator) emitFloatLit(n reader.Node) (value.Value, error) {
	typeName := n.Meta("type")
	if typeName == "" {
		typeName = "float64"
	}

	t, err := g.resolveType(typeName)
	if err != nil {
		return nil, err
	}
	floatType, ok := t.(*types.FloatType)
	if !ok {
		return nil, errorf("type %q is not a floating type", typeName)
	}

	fv, err := strconv.ParseFloat(trimNumSuffix(n.Text), 64)
	if err != nil {
		return nil, errorf("invalid float literal %q", n.Text)
	}

	return constant.NewFloat(floatType, fv), nil
}

func trimNumSuffix(s string) string {
	if len(s) == 0 {
		return s
	}
	last := s[len(s)-1]
	if last == 'N' || last == 'M' {
		return s[:len(s)-1]
	}
	return s
}

// emitSymbol resolves a variable reference, or the pseudo-literal
// `else` used by cond.
func (g *Generator) emitSymbol(n reader.Node) (value.Value, error) {
	if n.Text == "else" {
		return constant.NewInt(types.I32, 1), nil
	}

	b, ok := g.Tables.Vars[n.Text]
	if !ok {
		return nil, errorf("unknown variable %q", n.Text)
	}

	t, err := g.resolveType(b.Type)
	if err != nil {
		return nil, err
	}

	return g.Block.NewLoad(t, b.Slot), nil
}

// emitList dispatches a List node to a special-form lowerer, an
// operator, a user function call, or (if its head is itself a list)
// evaluates it as a sequence of statements, yielding the last value.
// Only the head is checked; the other elements may be any expression.
func (g *Generator) emitList(n reader.Node) (value.Value, error) {
	if len(n.Children) == 0 {
		return nil, errorf("empty list is not a valid expression")
	}

	head := n.Children[0]

	if head.Kind == reader.Symbol {
		name := head.Text
		if specialForms[name] {
			return g.emitSpecialForm(name, n)
		}
		if operators[name] {
			return g.emitOperator(name, n)
		}
		if _, ok := g.Tables.Funcs[name]; ok {
			return g.emitCall(name, n)
		}
	}

	if head.Kind == reader.List {
		return g.emitSequence(n)
	}

	if head.Kind == reader.Symbol {
		return nil, errorf("unknown operator or function %q", head.Text)
	}
	return nil, errorf("list head is not an operator, function, or nested list")
}

// emitSequence evaluates each child expression in order and yields the
// value of the last one.
func (g *Generator) emitSequence(n reader.Node) (value.Value, error) {
	var last value.Value
	for _, child := range n.Children {
		v, err := g.Emit(child)
		if err != nil {
			return nil, err
		}
		last = v
	}
	if last == nil {
		return nil, errorf("empty statement sequence")
	}
	return last, nil
}
