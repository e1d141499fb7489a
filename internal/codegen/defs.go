package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	rt "ednjit/internal/types"
	"ednjit/internal/reader"
)

// emitDefn records `(defn :ret name (args…) body…)` in the function
// table. It yields no value; the body is materialized lazily on first
// call so forward references within one top-level sequence work.
func (g *Generator) emitDefn(n reader.Node) (value.Value, error) {
	if len(n.Children) < 4 {
		return nil, errorf("defn requires a return type, a name, a parameter list, and a body")
	}

	retNode := n.Children[1]
	nameNode := n.Children[2]
	paramsNode := n.Children[3]

	if retNode.Kind != reader.Keyword {
		return nil, errorf("defn return type must be a keyword")
	}
	if nameNode.Kind != reader.Symbol {
		return nil, errorf("defn name must be a symbol")
	}
	if paramsNode.Kind != reader.List {
		return nil, errorf("defn parameter list must be a list")
	}

	var params []Param
	for _, p := range paramsNode.Children {
		switch p.Kind {
		case reader.Symbol:
			params = append(params, Param{Name: p.Text, Type: "int32"})
		case reader.List:
			if len(p.Children) != 2 || p.Children[0].Kind != reader.Symbol || p.Children[1].Kind != reader.Keyword {
				return nil, errorf("defn parameter must be a symbol or a (symbol :type) pair")
			}
			params = append(params, Param{Name: p.Children[0].Text, Type: p.Children[1].Text})
		default:
			return nil, errorf("defn parameter must be a symbol or a (symbol :type) pair")
		}
	}

	name := nameNode.Text
	if _, exists := g.Tables.Funcs[name]; exists {
		return nil, errorf("function %q is already defined", name)
	}

	g.Tables.Funcs[name] = &FuncEntry{
		Params:     params,
		ReturnType: retNode.Text,
		Body:       n.Children[4:],
	}
	return nil, nil
}

// emitCall lowers a call to a recorded user function, materializing its
// IR body on first use.
func (g *Generator) emitCall(name string, n reader.Node) (value.Value, error) {
	entry := g.Tables.Funcs[name]
	argNodes := n.Children[1:]

	if len(argNodes) != len(entry.Params) {
		return nil, errorf("function %q expects %d argument(s), got %d", name, len(entry.Params), len(argNodes))
	}

	if entry.IRFunc == nil {
		if err := g.materializeFunc(name, entry); err != nil {
			return nil, err
		}
	}

	args := make([]value.Value, len(argNodes))
	for i, argNode := range argNodes {
		v, err := g.Emit(argNode)
		if err != nil {
			return nil, err
		}
		casted, err := g.castTo(v, entry.Params[i].Type)
		if err != nil {
			return nil, err
		}
		args[i] = casted
	}

	return g.Block.NewCall(entry.IRFunc, args...), nil
}

// materializeFunc builds the IR function body for entry exactly once.
// entry.IRFunc is assigned before the body is emitted so that a
// recursive call inside the body resolves back to this same function
// instead of re-entering materialization.
func (g *Generator) materializeFunc(name string, entry *FuncEntry) error {
	retType, err := g.resolveType(entry.ReturnType)
	if err != nil {
		return err
	}

	paramIRTypes := make([]types.Type, len(entry.Params))
	irParams := make([]*ir.Param, len(entry.Params))
	for i, p := range entry.Params {
		pt, err := g.resolveType(p.Type)
		if err != nil {
			return err
		}
		paramIRTypes[i] = pt
		irParams[i] = ir.NewParam(p.Name, pt)
	}

	irFunc := g.Mod.NewFunc(name, retType, irParams...)
	entryBlock := irFunc.NewBlock("entry")
	entry.IRFunc = irFunc

	savedFunc, savedBlock := g.Func, g.Block
	g.Func, g.Block = irFunc, entryBlock

	for i, p := range entry.Params {
		if rt.IsPointerName(p.Type) {
			// Bind the incoming pointer directly as the variable's
			// storage: the callee sees the caller's own memory, and
			// the variable's recorded type is the pointee, matching
			// the load-from-slot semantics every other symbol uses.
			g.Tables.Vars[p.Name] = VarBinding{Slot: irParams[i], Type: rt.PointeeName(p.Type)}
		} else {
			slot := g.Block.NewAlloca(paramIRTypes[i])
			g.Block.NewStore(irParams[i], slot)
			g.Tables.Vars[p.Name] = VarBinding{Slot: slot, Type: p.Type}
		}
	}

	var bodyResult value.Value
	for _, stmt := range entry.Body {
		v, err := g.Emit(stmt)
		if err != nil {
			g.Func, g.Block = savedFunc, savedBlock
			return err
		}
		bodyResult = v
	}

	if entry.ReturnType == "void" {
		g.Block.NewRet(nil)
	} else {
		if bodyResult == nil {
			g.Func, g.Block = savedFunc, savedBlock
			return errorf("function %q body produced no value to return", name)
		}
		casted, err := g.castTo(bodyResult, entry.ReturnType)
		if err != nil {
			g.Func, g.Block = savedFunc, savedBlock
			return err
		}
		g.Block.NewRet(casted)
	}

	g.Func, g.Block = savedFunc, savedBlock
	return nil
}
