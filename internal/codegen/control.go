package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"ednjit/internal/reader"
)

// emitSpecialForm dispatches one of the named special forms, grounded
// on the teacher's gen_control.go/gen_defs.go split by concern.
func (g *Generator) emitSpecialForm(name string, n reader.Node) (value.Value, error) {
	switch name {
	case "struct":
		return g.emitStruct(n)
	case "defn":
		return g.emitDefn(n)
	case "cond":
		return g.emitCond(n)
	case "while":
		return g.emitWhile(n)
	case "=":
		return g.emitAssign(n)
	case "put":
		return g.emitPut(n)
	case "ref":
		return g.emitRef(n)
	case "deref":
		return g.emitDeref(n)
	case ".":
		return g.emitFieldAccess(n)
	default:
		return nil, errorf("unhandled special form %q", name)
	}
}

// truthiness compares v against zero in its own type, yielding an i1,
// used by both while's condition and cond's per-clause dispatch.
func (g *Generator) truthiness(v value.Value) (value.Value, error) {
	switch t := v.Type().(type) {
	case *types.FloatType:
		return g.Block.NewFCmp(enum.FPredONE, v, constant.NewFloat(t, 0)), nil
	case *types.IntType:
		return g.Block.NewICmp(enum.IPredNE, v, constant.NewInt(t, 0)), nil
	default:
		return nil, errorf("value of type %s has no truthiness", v.Type())
	}
}

// emitWhile lowers `(while test body)`: a condition block, a body
// block, and an after block, mirroring the teacher's genWhileExpr.
func (g *Generator) emitWhile(n reader.Node) (value.Value, error) {
	if len(n.Children) != 3 {
		return nil, errorf("while takes exactly a test and a body")
	}
	testNode, bodyNode := n.Children[1], n.Children[2]

	loopHeader := g.appendBlock()
	bodyBlock := g.appendBlock()
	afterBlock := g.appendBlock()

	g.Block.NewBr(loopHeader)

	g.Block = loopHeader
	testVal, err := g.Emit(testNode)
	if err != nil {
		return nil, err
	}
	cond, err := g.truthiness(testVal)
	if err != nil {
		return nil, err
	}
	g.Block.NewCondBr(cond, bodyBlock, afterBlock)

	g.Block = bodyBlock
	if _, err := g.Emit(bodyNode); err != nil {
		return nil, err
	}
	g.Block.NewBr(loopHeader)

	g.Block = afterBlock
	return constant.NewFloat(types.Double, 0), nil
}

// emitCond lowers a multi-way `(cond clause1 clause2 … (else exprN))`.
// Each clause is either a single-child unconditional form or a
// (test expr) pair; the last clause is always taken unconditionally
// regardless of its shape, matching the resolved "single-child clause
// terminates the chain like else" semantics. Results join through a
// phi of float64 values, mirroring the teacher's genIfExpr.
func (g *Generator) emitCond(n reader.Node) (value.Value, error) {
	clauses := n.Children[1:]
	if len(clauses) == 0 {
		return nil, errorf("cond requires at least one clause")
	}

	joinBlock := g.appendBlock()
	currentDispatch := g.Block

	var incoming []*ir.Incoming

	for i, clause := range clauses {
		isLast := i == len(clauses)-1

		var exprNode reader.Node
		var unconditional bool
		switch len(clause.Children) {
		case 1:
			exprNode = clause.Children[0]
			unconditional = true
		case 2:
			exprNode = clause.Children[1]
			unconditional = isLast
		default:
			return nil, errorf("cond clause must have 1 or 2 children")
		}

		clauseBlock := g.appendBlock()

		if unconditional {
			currentDispatch.NewBr(clauseBlock)
		} else {
			g.Block = currentDispatch
			testVal, err := g.Emit(clause.Children[0])
			if err != nil {
				return nil, err
			}
			cond, err := g.truthiness(testVal)
			if err != nil {
				return nil, err
			}
			nextDispatch := g.appendBlock()
			g.Block.NewCondBr(cond, clauseBlock, nextDispatch)
			currentDispatch = nextDispatch
		}

		g.Block = clauseBlock
		v, err := g.Emit(exprNode)
		if err != nil {
			return nil, err
		}
		f64, err := g.toFloat64ByIRType(v)
		if err != nil {
			return nil, err
		}
		g.Block.NewBr(joinBlock)
		incoming = append(incoming, ir.NewIncoming(f64, g.Block))

		if unconditional {
			// An unconditional clause terminates the dispatch chain
			// (spec: a single-child clause behaves like else,
			// regardless of position); any remaining clauses are
			// unreachable and must not touch currentDispatch again.
			break
		}
	}

	g.Block = joinBlock
	return joinBlock.NewPhi(incoming...), nil
}
