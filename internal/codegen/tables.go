package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"ednjit/internal/reader"
)

// VarBinding is the per-run entry for one variable: its storage slot
// (a pointer-typed IR value) and the recorded type-name of the value
// it holds. Re-assigning a name with `=` and the same type-name reuses
// the existing entry's slot; a different type-name, or a record
// construction, allocates a fresh slot.
type VarBinding struct {
	Slot value.Value
	Type string
}

// Field is one (name, type-name) pair of a record layout, in
// declaration order.
type Field struct {
	Name string
	Type string
}

// RecordLayout is a defined record's field list and its materialized
// LLVM struct type.
type RecordLayout struct {
	Fields     []Field
	StructType *types.StructType
}

// FieldIndex returns the positional index of a field by name.
func (r RecordLayout) FieldIndex(name string) (int, bool) {
	for i, f := range r.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Param is one declared parameter of a user function.
type Param struct {
	Name string
	Type string
}

// FuncEntry is a recorded but possibly not-yet-materialized user
// function: its signature is known from `defn` immediately, but its
// IR body is only built the first time it is called.
type FuncEntry struct {
	Params     []Param
	ReturnType string
	Body       []reader.Node

	IRFunc *ir.Func // nil until materialized
}

// Tables holds the flat, per-run symbol state cleared at the start of
// every Run: variables, record layouts, and function entries each live
// in their own map keyed by name, exactly as spec'd.
type Tables struct {
	Vars    map[string]VarBinding
	Records map[string]RecordLayout
	Funcs   map[string]*FuncEntry
}

// NewTables returns empty, ready-to-use tables.
func NewTables() *Tables {
	return &Tables{
		Vars:    make(map[string]VarBinding),
		Records: make(map[string]RecordLayout),
		Funcs:   make(map[string]*FuncEntry),
	}
}

// LookupRecord implements types.Records for the type resolver.
func (t *Tables) LookupRecord(name string) (*types.StructType, bool) {
	r, ok := t.Records[name]
	if !ok {
		return nil, false
	}
	return r.StructType, true
}
