// Package codegen walks a parsed reader.Node tree and emits typed
// github.com/llir/llvm SSA IR for it, the way the teacher's generate
// package walks Chai's AST — a recursive emitter threading one shared
// builder (the Generator) through every call instead of relying on
// hidden globals.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	rt "ednjit/internal/types"
)

// Generator holds everything one `run` needs: the IR module under
// construction, the flat symbol tables, and the block/function the
// emitter is currently appending instructions to.
type Generator struct {
	Path string
	Mod  *ir.Module

	Tables *Tables

	Func  *ir.Func
	Block *ir.Block
}

// NewGenerator returns a Generator positioned at the entry block of
// entryFunc, ready to lower the program body into it.
func NewGenerator(path string, mod *ir.Module, entryFunc *ir.Func, entryBlock *ir.Block) *Generator {
	return &Generator{
		Path:   path,
		Mod:    mod,
		Tables: NewTables(),
		Func:   entryFunc,
		Block:  entryBlock,
	}
}

// resolveType is the Generator's narrow view onto internal/types,
// bound to this run's record table.
func (g *Generator) resolveType(name string) (types.Type, error) {
	return rt.Resolve(name, g.Tables)
}

// appendBlock creates a new, empty block in the current function,
// named positionally exactly as the teacher's Generator.appendBlock
// does (`fmt.Sprintf("bb%d", len(blocks))`).
func (g *Generator) appendBlock() *ir.Block {
	return g.Func.NewBlock(fmt.Sprintf("bb%d", len(g.Func.Blocks)))
}

// errorf builds a plain Go error carrying the emitter's failure
// message; the engine driver attaches source position and pretty-print
// via report.Diagnostic at the point where a node is known to have
// failed.
func errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
