package keyboard

import (
	"kalio/kernel/ring"
	"testing"
)

func TestReadRuneTranslatesMakeCode(t *testing.T) {
	scancodes = ring.New[byte](256)
	scancodes.Push(0x1e) // 'a' make code

	r, ok := ReadRune()
	if !ok || r != 'a' {
		t.Fatalf("expected ('a', true), got (%q, %v)", r, ok)
	}
}

func TestReadRuneIgnoresReleaseEvents(t *testing.T) {
	scancodes = ring.New[byte](256)
	scancodes.Push(0x1e | 0x80) // release of 'a'

	if _, ok := ReadRune(); ok {
		t.Fatal("expected release scancode to be ignored")
	}
}

func TestReadRuneIgnoresUnmappedScancode(t *testing.T) {
	scancodes = ring.New[byte](256)
	scancodes.Push(0x01) // Escape, unmapped

	if _, ok := ReadRune(); ok {
		t.Fatal("expected unmapped scancode to be ignored")
	}
}
