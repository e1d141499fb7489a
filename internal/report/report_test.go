package report

import (
	"strings"
	"testing"

	"ednjit/internal/reader"
)

func TestDiagnosticFormatWithNode(t *testing.T) {
	n := reader.Node{Kind: reader.Symbol, Text: "x"}
	d := New(KindName, "prog.edn", 3, 8, &n, "unknown variable %q", "x")

	got := d.Error()
	want := "prog.edn(3,8) : error: unknown variable \"x\"\nNode: x"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDiagnosticFormatWithoutPosition(t *testing.T) {
	d := NewRuntime("prog.edn", "function %q not found", "calc")
	if !strings.Contains(d.Error(), "function \"calc\" not found") {
		t.Fatalf("unexpected message: %q", d.Error())
	}
	if d.HasPosition {
		t.Fatal("runtime diagnostics should not carry a position")
	}
}
