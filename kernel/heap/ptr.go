package heap

import "unsafe"

func ptr(addr uintptr) unsafe.Pointer {
	return unsafe.Pointer(addr)
}

// Bytes returns a []byte view over n bytes of raw memory starting at addr,
// for callers (package vfs) that hold a heap-allocated chunk and need to
// read or write it with ordinary slice operations instead of unsafe
// arithmetic of their own.
func Bytes(addr uintptr, n int) []byte {
	return unsafe.Slice((*byte)(ptr(addr)), n)
}
