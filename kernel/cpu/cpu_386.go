// Package cpu exposes the handful of x86 primitives that cannot be expressed
// in Go and must be implemented in assembly: port I/O, the interrupt flag,
// and the control/debug registers used by paging.
//
// Every exported function in this file is declared without a body; its
// implementation lives in the accompanying cpu_386.s Plan 9 assembly file.
// This mirrors the teacher's kernel/cpu/cpu_amd64.go convention of a
// one-line Go declaration per CPU primitive.
package cpu

// InByte reads a single byte from the given I/O port (the IN instruction).
func InByte(port uint16) uint8

// OutByte writes a single byte to the given I/O port (the OUT instruction).
func OutByte(port uint16, value uint8)

// EnableInterrupts sets the CPU interrupt flag (STI).
func EnableInterrupts()

// DisableInterrupts clears the CPU interrupt flag (CLI).
func DisableInterrupts()

// Flags returns the current EFLAGS register contents (PUSHF/POP).
func Flags() uint32

// RestoreFlags loads the EFLAGS register from the supplied value
// (PUSH/POPF), re-enabling interrupts if they were set in flags.
func RestoreFlags(flags uint32)

// Halt stops instruction execution (HLT in an infinite loop). Used by
// kernel.Panic; never returns.
func Halt()

// WaitForInterrupt executes a single HLT, returning control once any
// interrupt (timer tick, keystroke, ...) wakes the CPU back up. Used by the
// shell's idle loop between keystrokes.
func WaitForInterrupt()

// ReadCR2 returns the value stored in the CR2 register (the faulting
// address recorded by the CPU for the most recent page fault).
func ReadCR2() uint32

// LoadPageDirectory loads the physical address of a page directory's
// tablesPhysical array into CR3.
func LoadPageDirectory(physAddr uint32)

// EnablePaging sets the paging bit (bit 31) in CR0.
func EnablePaging()

// LoadIDT executes LIDT against the descriptor at the given address. The
// descriptor is the packed {limit uint16; base uint32} record built by
// package irq.
func LoadIDT(idtDescriptorAddr uint32)
