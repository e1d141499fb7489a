package jitengine

import "unsafe"

// byref passes a Go value by reference to C, exactly as the teacher's
// llc package does for its LLVMBool/pointer out-parameters.
func byref[T any](v *T) *T {
	return (*T)(unsafe.Pointer(v))
}
