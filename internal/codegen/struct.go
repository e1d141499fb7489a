package codegen

import (
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"ednjit/internal/reader"
)

// emitStruct lowers `(struct Name ((field :type) …))`, defining a
// record layout under Name. It yields no value.
func (g *Generator) emitStruct(n reader.Node) (value.Value, error) {
	if len(n.Children) != 3 {
		return nil, errorf("struct takes exactly a name and a field list")
	}

	nameNode := n.Children[1]
	if nameNode.Kind != reader.Symbol {
		return nil, errorf("struct name must be a symbol")
	}
	name := nameNode.Text

	if _, exists := g.Tables.Records[name]; exists {
		return nil, errorf("record %q is already defined", name)
	}

	fieldsNode := n.Children[2]
	if fieldsNode.Kind != reader.List {
		return nil, errorf("struct field list must be a list")
	}

	var fields []Field
	var fieldTypes []types.Type
	for _, fieldNode := range fieldsNode.Children {
		if fieldNode.Kind != reader.List || len(fieldNode.Children) != 2 {
			return nil, errorf("each struct field must be a (name :type) pair")
		}
		fnameNode, ftypeNode := fieldNode.Children[0], fieldNode.Children[1]
		if fnameNode.Kind != reader.Symbol || ftypeNode.Kind != reader.Keyword {
			return nil, errorf("struct field must be (symbol keyword)")
		}

		ft, err := g.resolveType(ftypeNode.Text)
		if err != nil {
			return nil, err
		}

		fields = append(fields, Field{Name: fnameNode.Text, Type: ftypeNode.Text})
		fieldTypes = append(fieldTypes, ft)
	}

	structType := types.NewStruct(fieldTypes...)
	g.Mod.NewTypeDef(name, structType)

	g.Tables.Records[name] = RecordLayout{Fields: fields, StructType: structType}
	return nil, nil
}
