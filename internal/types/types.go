// Package types resolves the compiler's small type-name lexicon
// (sized integers, floats, void, pointer-to, and user-defined records)
// to concrete github.com/llir/llvm/ir/types.Type values.
package types

import (
	"fmt"
	"strings"

	"github.com/llir/llvm/ir/types"
)

// Records is the subset of the codegen symbol tables the resolver
// needs: record layouts keyed by name. Kept as an interface so this
// package never imports codegen (codegen imports this package).
type Records interface {
	// LookupRecord returns the resolved struct type for name, if a
	// record with that name has been declared.
	LookupRecord(name string) (*types.StructType, bool)
}

// Resolve maps a type-name string to its IR type, consulting recs for
// any name that isn't a recognized primitive.
func Resolve(name string, recs Records) (types.Type, error) {
	if strings.HasSuffix(name, "*") {
		elemName := strings.TrimSuffix(name, "*")
		elem, err := Resolve(elemName, recs)
		if err != nil {
			return nil, err
		}
		return types.NewPointer(elem), nil
	}

	if t, ok := primitive(name); ok {
		return t, nil
	}

	if st, ok := recs.LookupRecord(name); ok {
		return st, nil
	}

	return nil, fmt.Errorf("unknown type name %q", name)
}

// IsPointerName reports whether a type-name string denotes a pointer
// type, without resolving its element type.
func IsPointerName(name string) bool {
	return strings.HasSuffix(name, "*")
}

// PointeeName strips one trailing '*' from a pointer type-name.
func PointeeName(name string) string {
	return strings.TrimSuffix(name, "*")
}

// IsFloatName reports whether a primitive type-name is one of the two
// floating types.
func IsFloatName(name string) bool {
	return name == "float32" || name == "float64"
}

// IsIntName reports whether a primitive type-name is one of the four
// sized integer types.
func IsIntName(name string) bool {
	switch name {
	case "int8", "int16", "int32", "int64":
		return true
	}
	return false
}

// IntWidth returns the bit width of a sized integer type-name, or 0 if
// name does not name one.
func IntWidth(name string) int {
	switch name {
	case "int8":
		return 8
	case "int16":
		return 16
	case "int32":
		return 32
	case "int64":
		return 64
	}
	return 0
}

func primitive(name string) (types.Type, bool) {
	switch name {
	case "int8":
		return types.I8, true
	case "int16":
		return types.I16, true
	case "int32":
		return types.I32, true
	case "int64":
		return types.I64, true
	case "float32":
		return types.Float, true
	case "float64":
		return types.Double, true
	case "void":
		return types.Void, true
	}
	return nil, false
}
