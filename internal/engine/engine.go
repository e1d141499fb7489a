// Package engine implements the entry driver of spec §4.G: it clears
// per-run state, parses one source file, builds the synthetic `calc`
// function, walks the program with internal/codegen, hands the
// resulting module to internal/jitengine, and prints the result —
// mirroring original_source's Engine::run and the teacher's
// cmd.Compiler driver style.
package engine

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"ednjit/internal/codegen"
	"ednjit/internal/config"
	"ednjit/internal/jitengine"
	"ednjit/internal/reader"
	"ednjit/internal/report"
)

// Engine runs one source file at a time. Per §5 it must not be called
// re-entrantly; construct a fresh Engine after any Run error.
type Engine struct {
	cfg config.Config
}

// New constructs an engine with the given configuration.
func New(cfg config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Run compiles and executes source, whose diagnostics (if any) are
// attributed to path. It prints the IR dump (when configured) and the
// final result to standard out, and returns an error — never
// terminates the process itself, so the CLI keeps exit-code control.
func (e *Engine) Run(path, source string) error {
	root, perr := reader.Parse(source)
	if perr != nil {
		if pe, ok := perr.(*reader.ParseError); ok {
			return report.New(report.KindParse, path, pe.Line, pe.Column, nil, "%s", pe.Message)
		}
		return report.NewRuntime(path, "%s", perr.Error())
	}

	mod := ir.NewModule()
	calcFunc := mod.NewFunc("calc", types.Double)
	entryBlock := calcFunc.NewBlock("entry")

	gen := codegen.NewGenerator(path, mod, calcFunc, entryBlock)

	result, err := gen.Emit(root)
	if err != nil {
		return diagnosticFromError(path, err)
	}

	finalVal, err := finalizeResult(gen, result)
	if err != nil {
		return diagnosticFromError(path, err)
	}
	gen.Block.NewRet(finalVal)

	if e.cfg.Engine.DumpIR {
		fmt.Println("===== Generated LLVM IR =====")
		fmt.Println(mod.String())
	}

	jitResult, err := e.execute(path, mod.String())
	if err != nil {
		return err
	}

	fmt.Printf("JIT result: %g\n", jitResult)
	return nil
}

// finalizeResult implements step 4 of §4.G: an integer result is
// widened to float64; a top-level defn/struct (no value produced)
// falls back to calling `main` if one was materialized, else 0.
func finalizeResult(gen *codegen.Generator, result value.Value) (value.Value, error) {
	if result != nil {
		if types.Equal(result.Type(), types.Double) {
			return result, nil
		}
		if _, ok := result.Type().(*types.IntType); ok {
			return gen.Block.NewSIToFP(result, types.Double), nil
		}
		if _, ok := result.Type().(*types.FloatType); ok {
			return gen.Block.NewFPExt(result, types.Double), nil
		}
		return nil, fmt.Errorf("top-level expression produced a non-numeric value of type %s", result.Type())
	}

	if entry, ok := gen.Tables.Funcs["main"]; ok && entry.IRFunc != nil {
		call := gen.Block.NewCall(entry.IRFunc)
		if types.Equal(call.Type(), types.Double) {
			return call, nil
		}
		if _, ok := call.Type().(*types.IntType); ok {
			return gen.Block.NewSIToFP(call, types.Double), nil
		}
		return nil, fmt.Errorf("main returned a non-numeric value of type %s", call.Type())
	}

	return constant.NewFloat(types.Double, 0), nil
}

func (e *Engine) execute(path, irText string) (float64, error) {
	ctx := jitengine.NewContext()
	defer ctx.Dispose()

	jm, err := ctx.NewModuleFromIR(irText)
	if err != nil {
		return 0, report.NewRuntime(path, "failed to parse generated IR: %s", err)
	}
	if err := jm.Verify(); err != nil {
		return 0, report.NewRuntime(path, "generated module failed verification: %s", err)
	}

	ee, err := jm.NewExecutionEngine(optLevelFor(e.cfg.Engine.OptLevel))
	if err != nil {
		return 0, report.NewRuntime(path, "failed to create JIT execution engine: %s", err)
	}
	defer ee.Dispose()

	result, err := ee.CallCalc()
	if err != nil {
		return 0, report.NewRuntime(path, "%s", err)
	}
	return result, nil
}

func optLevelFor(o config.OptLevel) jitengine.OptLevel {
	switch o {
	case config.OptLess:
		return jitengine.OptLess
	case config.OptDefault:
		return jitengine.OptDefault
	case config.OptAggressive:
		return jitengine.OptAggressive
	default:
		return jitengine.OptNone
	}
}

func diagnosticFromError(path string, err error) *report.Diagnostic {
	if ne, ok := err.(*codegen.NodeError); ok {
		n := ne.Node
		return report.New(report.KindType, path, n.Line, n.Column, &n, "%s", ne.Err.Error())
	}
	return report.NewRuntime(path, "%s", err.Error())
}
