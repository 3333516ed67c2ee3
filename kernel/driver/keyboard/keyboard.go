// Package keyboard drives the PS/2 keyboard controller: IRQ1 reads one
// scancode from port 0x60 and pushes it onto a ring buffer (package ring)
// that the shell drains from task context.
package keyboard

import (
	"kalio/kernel/cpu"
	"kalio/kernel/irq"
	"kalio/kernel/ring"
)

const dataPort = 0x60

var scancodes = ring.New[byte](256)

// Init registers the IRQ1 handler and unmasks the line.
func Init() {
	irq.HandleIRQ(1, onKey)
	irq.Unmask(1)
}

func onKey(line uint32, frame *irq.Frame, regs *irq.Regs) {
	scancodes.Push(cpu.InByte(dataPort))
}

// ReadScancode pops the next queued scancode. ok is false if none is queued.
func ReadScancode() (byte, bool) {
	return scancodes.Pop()
}

// Inject pushes a scancode onto the queue as if it had arrived from the
// hardware. It exists for host-side tooling (tools/simshell) that drives an
// in-process kernel build from a real terminal, which has no PS/2
// controller to read port 0x60 from.
func Inject(scancode byte) bool {
	return scancodes.Push(scancode)
}

// setToASCII is the US QWERTY set-1 make-code table; a 0 entry means the
// scancode has no direct ASCII mapping (modifiers, function keys, etc).
var setToASCII = [128]byte{
	0x1e: 'a', 0x30: 'b', 0x2e: 'c', 0x20: 'd', 0x12: 'e', 0x21: 'f', 0x22: 'g',
	0x23: 'h', 0x17: 'i', 0x24: 'j', 0x25: 'k', 0x26: 'l', 0x32: 'm', 0x31: 'n',
	0x18: 'o', 0x19: 'p', 0x10: 'q', 0x13: 'r', 0x1f: 's', 0x14: 't', 0x16: 'u',
	0x2f: 'v', 0x11: 'w', 0x2d: 'x', 0x15: 'y', 0x2c: 'z',
	0x02: '1', 0x03: '2', 0x04: '3', 0x05: '4', 0x06: '5',
	0x07: '6', 0x08: '7', 0x09: '8', 0x0a: '9', 0x0b: '0',
	0x39: ' ', 0x1c: '\n', 0x0e: '\b', 0x34: '.', 0x33: ',', 0x35: '/', 0x0c: '-',
}

// asciiToSet is the reverse of setToASCII, built once at init time, used by
// ScancodeForRune to translate host terminal input back into a scancode.
var asciiToSet [256]byte

func init() {
	for sc, ch := range setToASCII {
		if ch != 0 {
			asciiToSet[ch] = byte(sc)
		}
	}
}

// ScancodeForRune returns the make-code scancode that would have produced
// r, for host tooling that only has ASCII input and needs to simulate a
// hardware keypress. ok is false for runes with no mapped scancode.
func ScancodeForRune(r rune) (byte, bool) {
	if r < 0 || r > 255 {
		return 0, false
	}
	sc := asciiToSet[r]
	return sc, sc != 0
}

// isRelease reports whether a scancode is a key-release event (bit 7 set),
// which this keyboard layout otherwise ignores.
func isRelease(scancode byte) bool {
	return scancode&0x80 != 0
}

// ReadRune pops the next queued scancode and translates it to the rune the
// shell should see, skipping key-release events and scancodes with no ASCII
// mapping. ok is false if no translatable key is currently queued.
func ReadRune() (rune, bool) {
	for {
		sc, ok := scancodes.Pop()
		if !ok {
			return 0, false
		}
		if isRelease(sc) {
			continue
		}
		ch := setToASCII[sc&0x7F]
		if ch == 0 {
			continue
		}
		return rune(ch), true
	}
}
