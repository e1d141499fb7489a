package codegen

import (
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	rt "ednjit/internal/types"
	"ednjit/internal/reader"
)

// emitOperator lowers one of the arithmetic/comparison operators,
// applying the float/int promotion rules of spec §4.E.
func (g *Generator) emitOperator(op string, n reader.Node) (value.Value, error) {
	if len(n.Children) != 3 {
		return nil, errorf("operator %q takes exactly 2 operands", op)
	}

	lhsNode, rhsNode := n.Children[1], n.Children[2]

	lhsTypeName, err := g.operandTypeName(lhsNode)
	if err != nil {
		return nil, err
	}
	rhsTypeName, err := g.operandTypeName(rhsNode)
	if err != nil {
		return nil, err
	}

	lhsVal, err := g.Emit(lhsNode)
	if err != nil {
		return nil, err
	}
	rhsVal, err := g.Emit(rhsNode)
	if err != nil {
		return nil, err
	}

	if rt.IsFloatName(lhsTypeName) || rt.IsFloatName(rhsTypeName) {
		lhsF, err := g.toFloat64(lhsVal, lhsTypeName)
		if err != nil {
			return nil, err
		}
		rhsF, err := g.toFloat64(rhsVal, rhsTypeName)
		if err != nil {
			return nil, err
		}
		return g.emitFloatOp(op, lhsF, rhsF)
	}

	lw := rt.IntWidth(lhsTypeName)
	rw := rt.IntWidth(rhsTypeName)
	if lw == 0 || rw == 0 {
		return nil, errorf("operator %q requires numeric operands, got %q and %q", op, lhsTypeName, rhsTypeName)
	}
	width := lw
	if rw > width {
		width = rw
	}

	lhsI, err := g.toIntWidth(lhsVal, lw, width)
	if err != nil {
		return nil, err
	}
	rhsI, err := g.toIntWidth(rhsVal, rw, width)
	if err != nil {
		return nil, err
	}
	return g.emitIntOp(op, lhsI, rhsI)
}

func (g *Generator) emitFloatOp(op string, lhs, rhs value.Value) (value.Value, error) {
	switch op {
	case "+":
		return g.Block.NewFAdd(lhs, rhs), nil
	case "-":
		return g.Block.NewFSub(lhs, rhs), nil
	case "*":
		return g.Block.NewFMul(lhs, rhs), nil
	case "/":
		return g.Block.NewFDiv(lhs, rhs), nil
	}

	pred, ok := floatPredicates[op]
	if !ok {
		return nil, errorf("unknown operator %q", op)
	}
	cmp := g.Block.NewFCmp(pred, lhs, rhs)
	return g.Block.NewUIToFP(cmp, types.Double), nil
}

func (g *Generator) emitIntOp(op string, lhs, rhs value.Value) (value.Value, error) {
	switch op {
	case "+":
		return g.Block.NewAdd(lhs, rhs), nil
	case "-":
		return g.Block.NewSub(lhs, rhs), nil
	case "*":
		return g.Block.NewMul(lhs, rhs), nil
	case "/":
		return g.Block.NewSDiv(lhs, rhs), nil
	}

	pred, ok := intPredicates[op]
	if !ok {
		return nil, errorf("unknown operator %q", op)
	}
	return g.Block.NewICmp(pred, lhs, rhs), nil
}

var floatPredicates = map[string]enum.FPred{
	"==": enum.FPredOEQ,
	"!=": enum.FPredONE,
	"<":  enum.FPredOLT,
	"<=": enum.FPredOLE,
	">":  enum.FPredOGT,
	">=": enum.FPredOGE,
}

var intPredicates = map[string]enum.IPred{
	"==": enum.IPredEQ,
	"!=": enum.IPredNE,
	"<":  enum.IPredSLT,
	"<=": enum.IPredSLE,
	">":  enum.IPredSGT,
	">=": enum.IPredSGE,
}

// operandTypeName classifies an operand node for promotion purposes,
// without evaluating it: a symbol contributes its recorded type, a
// float literal contributes float64, everything else contributes
// int32.
func (g *Generator) operandTypeName(n reader.Node) (string, error) {
	switch n.Kind {
	case reader.Symbol:
		if n.Text == "else" {
			return "int32", nil
		}
		b, ok := g.Tables.Vars[n.Text]
		if !ok {
			return "", errorf("unknown variable %q", n.Text)
		}
		return b.Type, nil
	case reader.Float:
		return "float64", nil
	default:
		return "int32", nil
	}
}

func (g *Generator) toFloat64(v value.Value, typeName string) (value.Value, error) {
	switch {
	case typeName == "float64":
		return v, nil
	case typeName == "float32":
		return g.Block.NewFPExt(v, types.Double), nil
	case rt.IsIntName(typeName):
		return g.Block.NewSIToFP(v, types.Double), nil
	default:
		return nil, errorf("cannot promote %q to float64", typeName)
	}
}

func intTypeForWidth(w int) *types.IntType {
	switch w {
	case 8:
		return types.I8
	case 16:
		return types.I16
	case 32:
		return types.I32
	case 64:
		return types.I64
	default:
		return types.I32
	}
}

func (g *Generator) toIntWidth(v value.Value, srcWidth, targetWidth int) (value.Value, error) {
	if srcWidth == targetWidth {
		return v, nil
	}
	target := intTypeForWidth(targetWidth)
	if srcWidth < targetWidth {
		return g.Block.NewSExt(v, target), nil
	}
	return g.Block.NewTrunc(v, target), nil
}
