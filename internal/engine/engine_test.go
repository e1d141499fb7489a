package engine

import (
	"testing"

	"ednjit/internal/config"
	"ednjit/internal/report"
)

// TestRunParseErrorNeverReachesJIT exercises the one Run path that
// does not require a working LLVM installation: a parse failure must
// short-circuit before any module is built or executed.
func TestRunParseErrorNeverReachesJIT(t *testing.T) {
	e := New(config.Default())
	err := e.Run("bad.edn", ")")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	diag, ok := err.(*report.Diagnostic)
	if !ok {
		t.Fatalf("expected *report.Diagnostic, got %T", err)
	}
	if diag.Kind != report.KindParse {
		t.Fatalf("expected KindParse, got %v", diag.Kind)
	}
}

func TestRunEmptySourceIsAParseError(t *testing.T) {
	e := New(config.Default())
	if err := e.Run("empty.edn", ""); err == nil {
		t.Fatal("expected an error for empty source")
	}
}
