// Command isrdump disassembles a short run of raw x86 machine code, used as
// a developer aid when hand-verifying the vectorN trampolines in
// kernel/irq/vectors_386.s: paste in the bytes a disassembler extracted
// from the built kernel image at a gate's target address and get back
// readable instruction text to compare against what the stub is supposed to
// contain (push error code/vector, jump to the common handler).
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/arch/x86/x86asm"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: isrdump <hex-bytes>")
		os.Exit(2)
	}

	code, err := hex.DecodeString(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "isrdump: invalid hex input:", err)
		os.Exit(1)
	}

	for _, line := range disassemble(code) {
		fmt.Println(line)
	}
}

// disassemble decodes code as a sequence of 32-bit x86 instructions,
// returning one formatted "offset: bytes  mnemonic" line per instruction.
// Decoding stops at the first byte sequence that doesn't form a valid
// instruction.
func disassemble(code []byte) []string {
	var lines []string

	offset := 0
	for offset < len(code) {
		inst, err := x86asm.Decode(code[offset:], 32)
		if err != nil {
			lines = append(lines, fmt.Sprintf("%04x: <bad instruction: %v>", offset, err))
			break
		}

		lines = append(lines, fmt.Sprintf("%04x: %-20x %s",
			offset, code[offset:offset+inst.Len], x86asm.GNUSyntax(inst, uint64(offset), nil)))
		offset += inst.Len
	}

	return lines
}
