// Package irq builds and installs the IDT, remaps the PIC, and dispatches
// every vector (CPU fault or device IRQ) to a registered Go handler.
package irq

import "kalio/kernel/kfmt"

// Regs is a snapshot of the general-purpose registers at the moment an
// interrupt fired, in the order PUSHAL leaves them on the stack (EDI, ESI,
// EBP, the original ESP, EBX, EDX, ECX, EAX).
type Regs struct {
	EDI, ESI, EBP, ESP, EBX, EDX, ECX, EAX uint32
}

// Print outputs a dump of the register values to the active console.
func (r *Regs) Print() {
	kfmt.Printf("EAX = %8x EBX = %8x ECX = %8x EDX = %8x\n", r.EAX, r.EBX, r.ECX, r.EDX)
	kfmt.Printf("ESI = %8x EDI = %8x EBP = %8x ESP = %8x\n", r.ESI, r.EDI, r.EBP, r.ESP)
}

// Frame describes the portion of the exception frame the CPU itself pushes.
// This kernel never runs anything outside ring 0 (no user-mode support), so
// a same-privilege interrupt only pushes eip/cs/eflags; UserESP and SS are
// part of the struct to match the full iret frame shape but are never
// populated by the CPU in this configuration and must not be read.
type Frame struct {
	EIP, CS, EFlags uint32
	UserESP, SS     uint32
}

// Print outputs a dump of the exception frame to the active console.
func (f *Frame) Print() {
	kfmt.Printf("EIP = %8x CS  = %8x EFL = %8x\n", f.EIP, f.CS, f.EFlags)
}
