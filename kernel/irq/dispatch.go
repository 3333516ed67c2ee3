package irq

import (
	"kalio/kernel"
	"unsafe"
)

const vectorCount = 48

// ExceptionHandler handles a CPU-raised fault (vectors 0-31). Returning
// leaves Regs/Frame modifications in place when the faulting instruction is
// retried (not used by any handler in this kernel, but kept symmetrical with
// IRQHandler).
type ExceptionHandler func(vector uint32, errCode uint32, frame *Frame, regs *Regs)

// IRQHandler handles a device interrupt (vectors 32-47, PIC lines 0-15).
type IRQHandler func(irqLine uint32, frame *Frame, regs *Regs)

var (
	exceptionHandlers [32]ExceptionHandler
	irqHandlers       [16]IRQHandler

	// faultNames mirrors the original kernel's intr_to_str table, used when
	// an unhandled CPU fault reaches the default handler.
	faultNames = [32]string{
		"division by zero", "debug", "non-maskable interrupt", "breakpoint",
		"overflow", "bound range exceeded", "invalid opcode", "device not available",
		"double fault", "coprocessor segment overrun", "invalid TSS", "segment not present",
		"stack-segment fault", "general protection fault", "page fault", "reserved",
		"x87 floating-point exception", "alignment check", "machine check", "SIMD floating-point exception",
		"virtualization exception", "control protection exception", "reserved", "reserved",
		"reserved", "reserved", "reserved", "reserved",
		"hypervisor injection exception", "VMM communication exception", "security exception", "reserved",
	}
)

// HandleException registers handler for the given CPU fault vector (0-31).
func HandleException(vector uint32, handler ExceptionHandler) {
	exceptionHandlers[vector] = handler
}

// HandleIRQ registers handler for the given IRQ line (0-15).
func HandleIRQ(line uint32, handler IRQHandler) {
	irqHandlers[line] = handler
}

// dispatch is called from commonStub (vectors_386.s) with a pointer to the
// PUSHAL register block. Immediately above that block on the stack sits the
// vector number, the error code (real or synthesized zero) and the CPU's own
// eip/cs/eflags.
//
//go:nosplit
func dispatch(regsPtr uintptr) {
	regs := (*Regs)(unsafe.Pointer(regsPtr))
	vector := *(*uint32)(unsafe.Pointer(regsPtr + 32))
	errCode := *(*uint32)(unsafe.Pointer(regsPtr + 36))
	frame := (*Frame)(unsafe.Pointer(regsPtr + 40))

	switch {
	case vector < 32:
		isrDispatch(vector, errCode, frame, regs)
	case vector < uint32(vectorCount):
		irqDispatch(vector-32, frame, regs)
	}
}

// isrDispatch handles a CPU fault. Faults are never PIC-routed, so unlike
// irqDispatch it never sends an EOI.
func isrDispatch(vector, errCode uint32, frame *Frame, regs *Regs) {
	if h := exceptionHandlers[vector]; h != nil {
		h(vector, errCode, frame, regs)
		return
	}

	name := "unknown"
	if int(vector) < len(faultNames) {
		name = faultNames[vector]
	}
	regs.Print()
	frame.Print()
	kernel.Panic(&kernel.Error{Module: "irq", Message: name})
}

// irqDispatch handles a device interrupt arriving on PIC line irqLine,
// sending the End-Of-Interrupt command before invoking the handler.
func irqDispatch(irqLine uint32, frame *Frame, regs *Regs) {
	sendEOI(irqLine)

	if h := irqHandlers[irqLine]; h != nil {
		h(irqLine, frame, regs)
	}
}
