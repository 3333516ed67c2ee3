package vga

import "unsafe"

func poke(addr uintptr, ch byte, attribute byte) {
	*(*uint16)(unsafe.Pointer(addr)) = uint16(attribute)<<8 | uint16(ch)
}

func peek(addr uintptr) (ch byte, attribute byte) {
	cell := *(*uint16)(unsafe.Pointer(addr))
	return byte(cell), byte(cell >> 8)
}
