package codegen

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"ednjit/internal/reader"
)

func newTestGenerator() *Generator {
	mod := ir.NewModule()
	calc := mod.NewFunc("calc", types.Double)
	entry := calc.NewBlock("entry")
	return NewGenerator("test.edn", mod, calc, entry)
}

func mustParse(t *testing.T, src string) reader.Node {
	t.Helper()
	n, err := reader.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return n
}

func TestEmitIntLiteralDefaultsToInt32(t *testing.T) {
	g := newTestGenerator()
	n := mustParse(t, "1")
	v, err := g.Emit(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !types.Equal(v.Type(), types.I32) {
		t.Fatalf("expected i32, got %s", v.Type())
	}
}

func TestEmitArithmeticPromotesToFloat(t *testing.T) {
	g := newTestGenerator()
	n := mustParse(t, "(+ 1 2.5)")
	v, err := g.Emit(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !types.Equal(v.Type(), types.Double) {
		t.Fatalf("expected double, got %s", v.Type())
	}
}

func TestEmitAssignAndLookup(t *testing.T) {
	g := newTestGenerator()
	n := mustParse(t, "((= x :int32 10) (= y :int32 32) (+ x y))")
	v, err := g.Emit(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !types.Equal(v.Type(), types.I32) {
		t.Fatalf("expected i32 result from all-integer sequence, got %s", v.Type())
	}
}

func TestEmitStructAndFieldAccess(t *testing.T) {
	g := newTestGenerator()
	n := mustParse(t, "((struct Pt ((x :int32) (y :int32))) (= p (Pt (3 4))) (+ (. p :x) (. p :y)))")
	v, err := g.Emit(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !types.Equal(v.Type(), types.I32) {
		t.Fatalf("expected i32, got %s", v.Type())
	}
	if _, ok := g.Tables.Records["Pt"]; !ok {
		t.Fatal("expected record Pt to be recorded")
	}
}

func TestUnknownVariableIsNodeError(t *testing.T) {
	g := newTestGenerator()
	n := mustParse(t, "x")
	_, err := g.Emit(n)
	if err == nil {
		t.Fatal("expected error for unknown variable")
	}
	ne, ok := err.(*NodeError)
	if !ok {
		t.Fatalf("expected *NodeError, got %T", err)
	}
	if ne.Node.Kind != reader.Symbol {
		t.Fatalf("expected the offending symbol node, got %v", ne.Node.Kind)
	}
}

func TestFunctionMaterializedOnce(t *testing.T) {
	g := newTestGenerator()
	n := mustParse(t, "((defn :int32 fact ((n :int32)) (cond ((<= n 1) 1) (else (* n (fact (- n 1)))))) (fact 5))")
	_, err := g.Emit(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, ok := g.Tables.Funcs["fact"]
	if !ok || entry.IRFunc == nil {
		t.Fatal("expected fact to be materialized")
	}

	funcCount := 0
	for _, f := range g.Mod.Funcs {
		if f.Name() == "fact" {
			funcCount++
		}
	}
	if funcCount != 1 {
		t.Fatalf("expected exactly one IR function named fact, got %d", funcCount)
	}
}

func TestPointerRoundTrip(t *testing.T) {
	g := newTestGenerator()
	n := mustParse(t, "((= x :int32 7) (= p :int32* (ref x)) (put p :int32 11) x)")
	v, err := g.Emit(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !types.Equal(v.Type(), types.I32) {
		t.Fatalf("expected i32, got %s", v.Type())
	}
}

func TestCondSingleChildClauseTerminatesChain(t *testing.T) {
	g := newTestGenerator()
	n := mustParse(t, "(cond (5) ((< 0 1) 2))")
	v, err := g.Emit(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	phi, ok := v.(*ir.InstPhi)
	if !ok {
		t.Fatalf("expected a phi result, got %T", v)
	}
	if len(phi.Incs) != 1 {
		t.Fatalf("expected the trailing clause to be unreachable, got %d incoming values", len(phi.Incs))
	}
}

func TestCondTestWithNestedBlocksStaysDominanceValid(t *testing.T) {
	g := newTestGenerator()
	n := mustParse(t, "(cond ((cond (0) (else 1)) 100) (else 200))")
	v, err := g.Emit(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !types.Equal(v.Type(), types.Double) {
		t.Fatalf("expected double, got %s", v.Type())
	}
}

func TestArityErrorOnOperator(t *testing.T) {
	g := newTestGenerator()
	n := mustParse(t, "(+ 1)")
	if _, err := g.Emit(n); err == nil {
		t.Fatal("expected arity error")
	}
}
