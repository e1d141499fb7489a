package jitengine

/*
#include <stdlib.h>
#include "llvm-c/Core.h"
#include "llvm-c/Analysis.h"
#include "llvm-c/IRReader.h"
*/
import "C"

import (
	"errors"
	"unsafe"
)

// Module wraps an LLVM module parsed from IR text.
type Module struct {
	c   C.LLVMModuleRef
	ctx *Context
}

// NewModuleFromIR parses irString — the textual form llir/llvm's
// (*ir.Module).String() produces — into a Module owned by ctx. This is
// the one place a pure-Go IR value crosses into the cgo world.
func (ctx *Context) NewModuleFromIR(irString string) (*Module, error) {
	cir := C.CString(irString)
	defer C.free(unsafe.Pointer(cir))

	memBuf := C.LLVMCreateMemoryBufferWithMemoryRange(
		cir,
		C.size_t(len(irString)),
		nil,
		0,
	)
	defer C.LLVMDisposeMemoryBuffer(memBuf)

	var modRef C.LLVMModuleRef
	var msg *C.char
	if C.LLVMParseIRInContext(ctx.c, memBuf, byref(&modRef), byref(&msg)) != 0 {
		defer C.LLVMDisposeMessage(msg)
		return nil, errors.New(C.GoString(msg))
	}

	m := &Module{c: modRef, ctx: ctx}
	ctx.takeOwnership(m)
	return m, nil
}

func (m *Module) dispose() {
	C.LLVMDisposeModule(m.c)
}

// Dump prints the module's LLVM IR to standard error.
func (m *Module) Dump() {
	C.LLVMDumpModule(m.c)
}

// String returns the module's LLVM IR as text.
func (m *Module) String() string {
	cstr := C.LLVMPrintModuleToString(m.c)
	defer C.LLVMDisposeMessage(cstr)
	return C.GoString(cstr)
}

// Verify checks that the module is well-formed.
func (m *Module) Verify() error {
	var cmsg *C.char
	if C.LLVMVerifyModule(m.c, C.LLVMReturnStatusAction, byref(&cmsg)) == 1 {
		msg := C.GoString(cmsg)
		C.LLVMDisposeMessage(cmsg)
		return errors.New(msg)
	}
	return nil
}
