// Package report formats and prints compiler diagnostics. It is the
// only package that talks to the terminal on the compiler's behalf;
// every other package returns errors instead of printing them.
package report

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"ednjit/internal/reader"
)

// Kind distinguishes the error taxonomy of the source language without
// changing how a diagnostic is displayed; every kind formats
// identically. It exists purely so callers and tests can discriminate
// what went wrong.
type Kind int

const (
	KindLex Kind = iota
	KindParse
	KindType
	KindName
	KindArity
	KindShape
	KindRuntime
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex"
	case KindParse:
		return "parse"
	case KindType:
		return "type"
	case KindName:
		return "name"
	case KindArity:
		return "arity"
	case KindShape:
		return "shape"
	case KindRuntime:
		return "runtime"
	default:
		return "error"
	}
}

// Diagnostic is a single compiler-detected error, positioned against a
// source path and, where available, an offending Node.
type Diagnostic struct {
	Kind    Kind
	Path    string
	Line    int
	Column  int
	Message string
	Node    *reader.Node

	// HasPosition is false for diagnostics raised outside of any
	// source coordinate (a JIT lookup or execution failure), matching
	// the teacher's ReportModuleError, which also carries no position.
	HasPosition bool
}

// New constructs a positioned diagnostic.
func New(kind Kind, path string, line, col int, node *reader.Node, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:        kind,
		Path:        path,
		Line:        line,
		Column:      col,
		Message:     fmt.Sprintf(format, args...),
		Node:        node,
		HasPosition: true,
	}
}

// NewRuntime constructs an unpositioned diagnostic for a JIT lookup or
// execution failure.
func NewRuntime(path, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:    KindRuntime,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface, producing exactly the
// "<path>(<line>,<col>) : error: <message>\nNode: <pretty-printed-node>"
// format when a position is available, and a simpler one-liner
// otherwise.
func (d *Diagnostic) Error() string {
	if !d.HasPosition {
		return fmt.Sprintf("%s : error: %s", d.Path, d.Message)
	}

	s := fmt.Sprintf("%s(%d,%d) : error: %s", d.Path, d.Line, d.Column, d.Message)
	if d.Node != nil {
		s += "\nNode: " + reader.Pprint(*d.Node)
	}
	return s
}

// Print writes the plain diagnostic to stderr followed by a colored,
// one-line pterm banner — the dual plain/decorated output the teacher's
// report and logging packages both produce.
func Print(d *Diagnostic) {
	fmt.Fprintln(os.Stderr, d.Error())
	pterm.Error.WithWriter(os.Stderr).Println(d.Message)
}
