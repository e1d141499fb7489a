package jitengine

/*
#include "llvm-c/Target.h"
#include "llvm-c/ExecutionEngine.h"
*/
import "C"

import "sync"

var nativeTargetOnce sync.Once

// initNativeTarget performs the one-time native-target and MCJIT
// bring-up the teacher's llvm.initializeAllTargets never needed
// (its pipeline emits object files via `llc`, not an in-process JIT).
// Grounded in original_source's Engine::initializeLLVM.
func initNativeTarget() {
	nativeTargetOnce.Do(func() {
		C.LLVMLinkInMCJIT()
		C.LLVMInitializeNativeTarget()
		C.LLVMInitializeNativeAsmPrinter()
		C.LLVMInitializeNativeAsmParser()
	})
}
