package jitengine

/*
#include <stdlib.h>
#include "llvm-c/Core.h"
#include "llvm-c/ExecutionEngine.h"
#include "llvm-c/TargetMachine.h"
*/
import "C"

import (
	"errors"
	"unsafe"
)

// OptLevel mirrors the four LLVM codegen optimization levels a project
// file may request, per internal/config.
type OptLevel int

const (
	OptNone OptLevel = iota
	OptLess
	OptDefault
	OptAggressive
)

// ExecutionEngine wraps an LLVM MCJIT execution engine built over one
// Module. Per §5, the engine owns the module's compiled code and must
// be discarded (not reused) after any execution error.
type ExecutionEngine struct {
	c C.LLVMExecutionEngineRef
}

// NewExecutionEngine builds an MCJIT compiler for mod at the requested
// optimization level. mod's ownership transfers to the engine, exactly
// as it does for the teacher's AOT pipeline when a module is handed
// off to a target machine.
func (m *Module) NewExecutionEngine(opt OptLevel) (*ExecutionEngine, error) {
	initNativeTarget()

	var options C.struct_LLVMMCJITCompilerOptions
	C.LLVMInitializeMCJITCompilerOptions(&options, C.size_t(unsafe.Sizeof(options)))
	options.OptLevel = C.unsigned(opt)

	// The engine takes the module over, so the context must no longer
	// dispose it.
	owned := m.ctx.ownedObjects[:0]
	for _, obj := range m.ctx.ownedObjects {
		if obj != OwnedObject(m) {
			owned = append(owned, obj)
		}
	}
	m.ctx.ownedObjects = owned

	var eeRef C.LLVMExecutionEngineRef
	var msg *C.char
	if C.LLVMCreateMCJITCompilerForModule(byref(&eeRef), m.c, &options, C.size_t(unsafe.Sizeof(options)), byref(&msg)) != 0 {
		defer C.LLVMDisposeMessage(msg)
		return nil, errors.New(C.GoString(msg))
	}

	return &ExecutionEngine{c: eeRef}, nil
}

// Dispose releases the execution engine and every module added to it.
func (ee *ExecutionEngine) Dispose() {
	C.LLVMDisposeExecutionEngine(ee.c)
}

// CallCalc looks up the synthetic `calc` entry function, casts its
// native address to a `func() float64`, and invokes it in process.
func (ee *ExecutionEngine) CallCalc() (result float64, err error) {
	cname := C.CString("calc")
	defer C.free(unsafe.Pointer(cname))

	addr := uint64(C.LLVMGetFunctionAddress(ee.c, cname))
	if addr == 0 {
		return 0, errors.New("function \"calc\" not found in JIT module")
	}

	fnPtr := uintptr(addr)
	fn := *(*func() float64)(unsafe.Pointer(&fnPtr))
	return fn(), nil
}
