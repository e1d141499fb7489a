// Package jitengine is the compiler's sole cgo boundary: it bridges the
// pure-Go IR text produced by github.com/llir/llvm to LLVM's in-process
// MCJIT execution engine via the LLVM-C API. Every other package is
// pure Go; those that do not import this one (directly, or through
// internal/engine) are unit-testable without a working LLVM installation.
package jitengine

/*
#cgo LDFLAGS: -lLLVM
#include "llvm-c/Core.h"
#include "llvm-c/Initialization.h"
*/
import "C"

// OwnedObject is anything owned by a Context that must be released
// when the context is disposed.
type OwnedObject interface {
	dispose()
}

// Context wraps an LLVM context. It is not safe for concurrent use;
// per §5, one engine (and its context) belongs to one goroutine.
type Context struct {
	c C.LLVMContextRef

	ownedObjects []OwnedObject
}

// NewContext creates a fresh LLVM context.
func NewContext() *Context {
	return &Context{c: C.LLVMContextCreate()}
}

func (c *Context) takeOwnership(obj OwnedObject) {
	c.ownedObjects = append(c.ownedObjects, obj)
}

// Dispose releases every object this context owns, then the context
// itself. The Context must not be used afterward.
func (c *Context) Dispose() {
	for _, obj := range c.ownedObjects {
		obj.dispose()
	}
	c.ownedObjects = nil
	C.LLVMContextDispose(c.c)
}

func init() {
	pr := C.LLVMGetGlobalPassRegistry()
	C.LLVMInitializeCore(pr)
	C.LLVMInitializeAnalysis(pr)
	C.LLVMInitializeCodeGen(pr)
	C.LLVMInitializeTarget(pr)
}
