package main

import (
	"strings"
	"testing"
)

func TestDisassembleRecognizesPushAndJump(t *testing.T) {
	// 6A 00          push $0x0
	// 6A 08          push $0x8
	// EB FE          jmp  $-2 (self; stands in for a jmp to commonStub)
	code := []byte{0x6a, 0x00, 0x6a, 0x08, 0xeb, 0xfe}

	lines := disassemble(code)
	if len(lines) != 3 {
		t.Fatalf("expected 3 decoded instructions, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "push") || !strings.Contains(lines[1], "push") {
		t.Fatalf("expected first two lines to be push instructions, got %v", lines[:2])
	}
	if !strings.Contains(lines[2], "jmp") {
		t.Fatalf("expected third line to be a jmp instruction, got %q", lines[2])
	}
}

func TestDisassembleStopsOnInvalidBytes(t *testing.T) {
	lines := disassemble([]byte{0x0f, 0xff}) // undefined opcode
	if len(lines) == 0 {
		t.Fatal("expected at least one diagnostic line for invalid input")
	}
	if !strings.Contains(lines[len(lines)-1], "bad instruction") {
		t.Fatalf("expected trailing diagnostic, got %q", lines[len(lines)-1])
	}
}
