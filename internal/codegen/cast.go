package codegen

import (
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// castTo converts v to the IR type named by targetTypeName, applying
// the sign-extend/truncate/float-convert rules used throughout §4.F's
// lowerers (function returns, call arguments, field/pointer stores).
// Record and pointer targets are passed through unchanged: the callers
// that need a stricter equality check (record field assignment) do
// that check themselves instead of calling castTo.
func (g *Generator) castTo(v value.Value, targetTypeName string) (value.Value, error) {
	target, err := g.resolveType(targetTypeName)
	if err != nil {
		return nil, err
	}

	if types.Equal(v.Type(), target) {
		return v, nil
	}

	srcInt, srcIsInt := v.Type().(*types.IntType)
	dstInt, dstIsInt := target.(*types.IntType)
	_, srcIsFloat := v.Type().(*types.FloatType)
	dstFloat, dstIsFloat := target.(*types.FloatType)

	switch {
	case srcIsInt && dstIsInt:
		if srcInt.BitSize < dstInt.BitSize {
			return g.Block.NewSExt(v, dstInt), nil
		}
		return g.Block.NewTrunc(v, dstInt), nil
	case srcIsInt && dstIsFloat:
		return g.Block.NewSIToFP(v, dstFloat), nil
	case srcIsFloat && dstIsInt:
		return g.Block.NewFPToSI(v, dstInt), nil
	case srcIsFloat && dstIsFloat:
		if dstFloat == types.Double {
			return g.Block.NewFPExt(v, types.Double), nil
		}
		return g.Block.NewFPTrunc(v, types.Float), nil
	default:
		return v, nil
	}
}

// toFloat64ByIRType widens or converts v (of whatever numeric IR type
// it already has) to float64, used by cond's phi join.
func (g *Generator) toFloat64ByIRType(v value.Value) (value.Value, error) {
	switch t := v.Type().(type) {
	case *types.FloatType:
		if t == types.Double {
			return v, nil
		}
		return g.Block.NewFPExt(v, types.Double), nil
	case *types.IntType:
		return g.Block.NewSIToFP(v, types.Double), nil
	default:
		return nil, errorf("value of type %s cannot be widened to float64", v.Type())
	}
}
