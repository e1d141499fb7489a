package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	rt "ednjit/internal/types"
	"ednjit/internal/reader"
)

// fieldAddress computes the address of one field of a record variable
// and reports the field's declared type-name.
func (g *Generator) fieldAddress(targetName, fieldName string) (value.Value, string, error) {
	b, ok := g.Tables.Vars[targetName]
	if !ok {
		return nil, "", errorf("unknown variable %q", targetName)
	}
	layout, ok := g.Tables.Records[b.Type]
	if !ok {
		return nil, "", errorf("variable %q is not a record", targetName)
	}
	idx, ok := layout.FieldIndex(fieldName)
	if !ok {
		return nil, "", errorf("record %q has no field %q", b.Type, fieldName)
	}

	zero := constant.NewInt(types.I32, 0)
	idxC := constant.NewInt(types.I32, int64(idx))
	addr := g.Block.NewGetElementPtr(layout.StructType, b.Slot, zero, idxC)
	return addr, layout.Fields[idx].Type, nil
}

// emitFieldAccess lowers `(. target :field)` as an expression: address
// of the field, then a load of its declared type.
func (g *Generator) emitFieldAccess(n reader.Node) (value.Value, error) {
	if len(n.Children) != 3 {
		return nil, errorf(". takes exactly a target and a field keyword")
	}
	targetNode, fieldNode := n.Children[1], n.Children[2]
	if targetNode.Kind != reader.Symbol || fieldNode.Kind != reader.Keyword {
		return nil, errorf(". requires a symbol target and a keyword field name")
	}

	addr, fieldType, err := g.fieldAddress(targetNode.Text, fieldNode.Text)
	if err != nil {
		return nil, err
	}
	irType, err := g.resolveType(fieldType)
	if err != nil {
		return nil, err
	}
	return g.Block.NewLoad(irType, addr), nil
}

// emitRef lowers `(ref x)`: x must be a symbol, and the result is its
// storage slot — already a pointer value.
func (g *Generator) emitRef(n reader.Node) (value.Value, error) {
	if len(n.Children) != 2 {
		return nil, errorf("ref takes exactly one argument")
	}
	xNode := n.Children[1]
	if xNode.Kind != reader.Symbol {
		return nil, errorf("ref requires a symbol argument")
	}
	b, ok := g.Tables.Vars[xNode.Text]
	if !ok {
		return nil, errorf("unknown variable %q", xNode.Text)
	}
	return b.Slot, nil
}

// emitDeref lowers `(deref p)` as an expression: the pointer value
// followed by a load of the pointee type.
func (g *Generator) emitDeref(n reader.Node) (value.Value, error) {
	ptrVal, pointeeName, err := g.lowerDerefTarget(n)
	if err != nil {
		return nil, err
	}
	pointeeType, err := g.resolveType(pointeeName)
	if err != nil {
		return nil, err
	}
	return g.Block.NewLoad(pointeeType, ptrVal), nil
}

// lowerDerefTarget evaluates the pointer operand of `(deref p)` and
// determines the pointee type-name, without performing the final load
// — used both by emitDeref and by emitLValue when deref appears as a
// store target.
func (g *Generator) lowerDerefTarget(n reader.Node) (value.Value, string, error) {
	if len(n.Children) != 2 {
		return nil, "", errorf("deref takes exactly one argument")
	}
	argNode := n.Children[1]

	if argNode.Kind == reader.Symbol {
		b, ok := g.Tables.Vars[argNode.Text]
		if !ok {
			return nil, "", errorf("unknown variable %q", argNode.Text)
		}
		ptrVal, err := g.emitSymbol(argNode)
		if err != nil {
			return nil, "", err
		}
		return ptrVal, rt.PointeeName(b.Type), nil
	}

	ptrVal, err := g.Emit(argNode)
	if err != nil {
		return nil, "", err
	}
	pointeeName := argNode.Meta("type")
	if pointeeName == "" {
		pointeeName = "int32"
	}
	return ptrVal, pointeeName, nil
}

// emitPut lowers `(put target :type value)`: stores value through the
// pointer denoted by target.
func (g *Generator) emitPut(n reader.Node) (value.Value, error) {
	if len(n.Children) != 4 {
		return nil, errorf("put takes exactly a target, a type, and a value")
	}
	targetNode, typeNode, valueNode := n.Children[1], n.Children[2], n.Children[3]
	if typeNode.Kind != reader.Keyword {
		return nil, errorf("put's second argument must be a type keyword")
	}
	typeName := typeNode.Text

	var ptrVal value.Value
	var err error
	if targetNode.Kind == reader.List && len(targetNode.Children) > 0 && targetNode.Children[0].Kind == reader.Symbol &&
		(targetNode.Children[0].Text == "deref" || targetNode.Children[0].Text == ".") {
		ptrVal, err = g.emitLValue(targetNode)
	} else {
		ptrVal, err = g.Emit(targetNode)
	}
	if err != nil {
		return nil, err
	}
	if _, ok := ptrVal.Type().(*types.PointerType); !ok {
		return nil, errorf("put target does not denote a pointer")
	}

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

	g.Block.NewStore(casted, ptrVal)
	return nil, nil
}
