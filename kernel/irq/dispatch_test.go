package irq

import (
	"kalio/kernel/cpu"
	"testing"
)

func TestIsrDispatchInvokesRegisteredHandler(t *testing.T) {
	defer func() { exceptionHandlers[13] = nil }()

	var gotVector, gotErr uint32
	HandleException(13, func(vector, errCode uint32, frame *Frame, regs *Regs) {
		gotVector, gotErr = vector, errCode
	})

	var frame Frame
	var regs Regs
	isrDispatch(13, 0xAB, &frame, &regs)

	if gotVector != 13 || gotErr != 0xAB {
		t.Fatalf("handler invoked with (%d, %x), want (13, ab)", gotVector, gotErr)
	}
}

func TestIrqDispatchInvokesRegisteredHandler(t *testing.T) {
	portOutFn = func(port uint16, value uint8) {}
	defer func() { irqHandlers[1] = nil; portOutFn = cpu.OutByte }()

	called := false
	HandleIRQ(1, func(line uint32, frame *Frame, regs *Regs) {
		called = true
		if line != 1 {
			t.Fatalf("expected line 1, got %d", line)
		}
	})

	var frame Frame
	var regs Regs
	irqDispatch(1, &frame, &regs)

	if !called {
		t.Fatal("expected registered IRQ handler to be invoked")
	}
}

func TestIrqDispatchUnregisteredLineIsNoop(t *testing.T) {
	portOutFn = func(port uint16, value uint8) {}
	defer func() { portOutFn = cpu.OutByte }()

	var frame Frame
	var regs Regs
	irqDispatch(2, &frame, &regs)
}
