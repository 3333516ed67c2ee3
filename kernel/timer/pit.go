// Package timer drives the PIT (channel 0) at a fixed tick rate and
// implements a 5-bucket timer wheel for scheduling one-shot deferred work,
// the kernel's only form of delayed execution (there is no process
// scheduler to hand a sleep to).
package timer

import (
	"kalio/kernel/cpu"
	"kalio/kernel/irq"
)

const (
	pitChannel0 = 0x40
	pitCommand  = 0x43
	pitCmdByte  = 0x36

	pitInputHz = 1193180

	// defaultHz is the original kernel's hard-coded tick rate; bootcfg can
	// override it via the "pitHz" boot command-line key.
	defaultHz = 50
)

var ticks uint64

// Init programs PIT channel 0 to fire at hz ticks per second and registers
// the tick handler on IRQ line 0.
func Init(hz uint32) {
	if hz == 0 {
		hz = defaultHz
	}
	divisor := uint16(pitInputHz / hz)

	cpu.OutByte(pitCommand, pitCmdByte)
	cpu.OutByte(pitChannel0, uint8(divisor&0xFF))
	cpu.OutByte(pitChannel0, uint8(divisor>>8))

	irq.HandleIRQ(0, onTick)
	irq.Unmask(0)
}

// Ticks returns the number of PIT interrupts delivered since Init.
func Ticks() uint64 {
	return ticks
}

func onTick(line uint32, frame *irq.Frame, regs *irq.Regs) {
	ticks++
	wheelTick()
}
