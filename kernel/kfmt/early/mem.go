package early

import "unsafe"

// poke writes a (char, attribute) VGA text cell at the given framebuffer
// address.
func poke(addr uintptr, ch byte, attribute byte) {
	*(*uint16)(unsafe.Pointer(addr)) = uint16(attribute)<<8 | uint16(ch)
}

// pokeByte writes a single raw byte at addr; used when scrolling copies
// whole (char, attribute) cells without reinterpreting them.
func pokeByte(addr uintptr, b byte) {
	*(*byte)(unsafe.Pointer(addr)) = b
}

// peek reads a single raw byte at addr.
func peek(addr uintptr) byte {
	return *(*byte)(unsafe.Pointer(addr))
}
