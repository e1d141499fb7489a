package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"ednjit/internal/reader"
)

// emitLValue resolves n to a storage address usable as a store target,
// without performing any load, for the two lvalue-expression shapes
// the source supports: a plain variable, or `(. target :field)` /
// `(deref p)`.
func (g *Generator) emitLValue(n reader.Node) (value.Value, error) {
	switch n.Kind {
	case reader.Symbol:
		b, ok := g.Tables.Vars[n.Text]
		if !ok {
			return nil, errorf("unknown variable %q", n.Text)
		}
		return b.Slot, nil
	case reader.List:
		if len(n.Children) == 0 {
			return nil, errorf("empty list is not a valid lvalue")
		}
		head := n.Children[0]
		if head.Kind == reader.Symbol && head.Text == "." {
			if len(n.Children) != 3 || n.Children[1].Kind != reader.Symbol || n.Children[2].Kind != reader.Keyword {
				return nil, errorf(". requires a symbol target and a keyword field name")
			}
			addr, _, err := g.fieldAddress(n.Children[1].Text, n.Children[2].Text)
			return addr, err
		}
		if head.Kind == reader.Symbol && head.Text == "deref" {
			ptrVal, _, err := g.lowerDerefTarget(n)
			return ptrVal, err
		}
		return nil, errorf("list is not a valid lvalue expression")
	default:
		return nil, errorf("%s is not a valid lvalue expression", n.Kind)
	}
}

// emitAssign dispatches `=` to one of its three shapes based on arity
// and the shape of its second child, per spec §4.F.
func (g *Generator) emitAssign(n reader.Node) (value.Value, error) {
	switch {
	case len(n.Children) == 4:
		return g.emitLiteralAssign(n)
	case len(n.Children) == 3 && n.Children[1].Kind == reader.Symbol:
		return g.emitRecordConstruct(n)
	case len(n.Children) == 3 && n.Children[1].Kind == reader.List:
		return g.emitFieldAssign(n)
	default:
		return nil, errorf("= does not match any recognized assignment shape")
	}
}

// emitLiteralAssign lowers `(= target :type value)`.
func (g *Generator) emitLiteralAssign(n reader.Node) (value.Value, error) {
	targetNode, typeNode, valueNode := n.Children[1], n.Children[2], n.Children[3]
	if typeNode.Kind != reader.Keyword {
		return nil, errorf("= expects a type keyword as its second argument")
	}
	typeName := typeNode.Text

	valNode := valueNode
	if valueNode.Kind == reader.Int || valueNode.Kind == reader.Float {
		valNode = valueNode.WithMeta("type", typeName)
	}
	v, err := g.Emit(valNode)
	if err != nil {
		return nil, err
	}
	casted, err := g.castTo(v, typeName)
	if err != nil {
		return nil, err
	}

	if targetNode.Kind == reader.Symbol {
		b, exists := g.Tables.Vars[targetNode.Text]
		var slot value.Value
		if exists && b.Type == typeName {
			slot = b.Slot
		} else {
			irType, err := g.resolveType(typeName)
			if err != nil {
				return nil, err
			}
			slot = g.Block.NewAlloca(irType)
			g.Tables.Vars[targetNode.Text] = VarBinding{Slot: slot, Type: typeName}
		}
		g.Block.NewStore(casted, slot)
		return nil, nil
	}

	addr, err := g.emitLValue(targetNode)
	if err != nil {
		return nil, err
	}
	g.Block.NewStore(casted, addr)
	return nil, nil
}

// emitRecordConstruct lowers `(= target (RecordName (f1 f2 …)))`.
func (g *Generator) emitRecordConstruct(n reader.Node) (value.Value, error) {
	targetName := n.Children[1].Text
	shapeNode := n.Children[2]
	if shapeNode.Kind != reader.List || len(shapeNode.Children) != 2 {
		return nil, errorf("record construction must have the shape (RecordName (f1 f2 …))")
	}
	recNameNode, fieldsNode := shapeNode.Children[0], shapeNode.Children[1]
	if recNameNode.Kind != reader.Symbol || fieldsNode.Kind != reader.List {
		return nil, errorf("record construction must have the shape (RecordName (f1 f2 …))")
	}

	layout, ok := g.Tables.Records[recNameNode.Text]
	if !ok {
		return nil, errorf("unknown record %q", recNameNode.Text)
	}
	if len(fieldsNode.Children) != len(layout.Fields) {
		return nil, errorf("record %q takes %d field value(s), got %d", recNameNode.Text, len(layout.Fields), len(fieldsNode.Children))
	}

	slot := g.Block.NewAlloca(layout.StructType)
	for i, fieldExpr := range fieldsNode.Children {
		fieldType := layout.Fields[i].Type

		valNode := fieldExpr
		if fieldExpr.Kind == reader.Int || fieldExpr.Kind == reader.Float {
			valNode = fieldExpr.WithMeta("type", fieldType)
		}
		v, err := g.Emit(valNode)
		if err != nil {
			return nil, err
		}
		casted, err := g.castTo(v, fieldType)
		if err != nil {
			return nil, err
		}

		zero := constant.NewInt(types.I32, 0)
		idxC := constant.NewInt(types.I32, int64(i))
		addr := g.Block.NewGetElementPtr(layout.StructType, slot, zero, idxC)
		g.Block.NewStore(casted, addr)
	}

	g.Tables.Vars[targetName] = VarBinding{Slot: slot, Type: recNameNode.Text}
	return nil, nil
}

// emitFieldAssign lowers `(= (. target :field) value)`. No implicit
// cast is applied: the value's IR type must equal the field's declared
// IR type, per spec §4.F.
func (g *Generator) emitFieldAssign(n reader.Node) (value.Value, error) {
	lvalNode := n.Children[1]
	if len(lvalNode.Children) != 3 || lvalNode.Children[0].Text != "." {
		return nil, errorf("only (. target :field) is a valid assignment target in this shape")
	}
	targetNode, fieldNode := lvalNode.Children[1], lvalNode.Children[2]
	if targetNode.Kind != reader.Symbol || fieldNode.Kind != reader.Keyword {
		return nil, errorf(". requires a symbol target and a keyword field name")
	}

	addr, fieldType, err := g.fieldAddress(targetNode.Text, fieldNode.Text)
	if err != nil {
		return nil, err
	}
	fieldIRType, err := g.resolveType(fieldType)
	if err != nil {
		return nil, err
	}

	v, err := g.Emit(n.Children[2])
	if err != nil {
		return nil, err
	}
	if !types.Equal(v.Type(), fieldIRType) {
		return nil, errorf("field %q expects type %s, got %s", fieldNode.Text, fieldIRType, v.Type())
	}

	g.Block.NewStore(v, addr)
	return nil, nil
}
