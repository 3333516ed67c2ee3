package irq

import (
	"kalio/kernel/cpu"
	"unsafe"
)

const (
	codeSelector = 0x08 // flat kernel code segment, set up by the bootstrap GDT
	gateFlags    = 0x8E // present, ring 0, 32-bit interrupt gate
)

// gate is the packed 8-byte IDT entry the CPU itself reads; field layout and
// order are fixed by the hardware.
type gate struct {
	baseLo   uint16
	selector uint16
	zero     uint8
	flags    uint8
	baseHi   uint16
}

// idtDescriptor is the 6-byte operand LIDT expects: a 16-bit limit followed
// by a 32-bit linear base address. The base is stored as two 16-bit halves
// so the struct has no padding between limit and base.
type idtDescriptor struct {
	limit  uint16
	baseLo uint16
	baseHi uint16
}

var (
	idt [vectorCount]gate
	idtDesc idtDescriptor

	// vectorStubs lists the address of each vectorN stub in vectors_386.s,
	// in vector order, so Init can build the IDT without a 48-line switch.
	vectorStubs [vectorCount]uintptr
)

// Init builds the IDT covering every CPU-fault and IRQ vector, installs it
// with LIDT, and remaps the PIC so hardware IRQs land on vectors 32-47
// instead of colliding with the CPU-reserved 0-31 range.
func Init() {
	for v := 0; v < vectorCount; v++ {
		setGate(v, vectorStubs[v])
	}

	idtDesc.limit = uint16(unsafe.Sizeof(idt)) - 1
	base := uint32(uintptr(unsafe.Pointer(&idt[0])))
	idtDesc.baseLo = uint16(base)
	idtDesc.baseHi = uint16(base >> 16)
	cpu.LoadIDT(uint32(uintptr(unsafe.Pointer(&idtDesc))))

	remapPIC()
}

func setGate(vector int, handlerAddr uintptr) {
	idt[vector] = gate{
		baseLo:   uint16(handlerAddr & 0xFFFF),
		selector: codeSelector,
		zero:     0,
		flags:    gateFlags,
		baseHi:   uint16(handlerAddr >> 16),
	}
}

const (
	picMasterCmd  = 0x20
	picMasterData = 0x21
	picSlaveCmd   = 0xA0
	picSlaveData  = 0xA1

	icw1Init     = 0x11
	icw4_8086    = 0x01
	masterOffset = 0x20
	slaveOffset  = 0x28
	eoiCmd       = 0x20
)

// remapPIC reprograms the master/slave 8259 PICs to deliver IRQs 0-7 on
// vectors 0x20-0x27 and IRQs 8-15 on 0x28-0x2F, leaving every IRQ line
// masked except the ones drivers explicitly unmask via Unmask.
func remapPIC() {
	cpu.OutByte(picMasterCmd, icw1Init)
	cpu.OutByte(picSlaveCmd, icw1Init)

	cpu.OutByte(picMasterData, masterOffset)
	cpu.OutByte(picSlaveData, slaveOffset)

	cpu.OutByte(picMasterData, 0x04) // tell master: slave PIC at IRQ2
	cpu.OutByte(picSlaveData, 0x02)  // tell slave its cascade identity

	cpu.OutByte(picMasterData, icw4_8086)
	cpu.OutByte(picSlaveData, icw4_8086)

	cpu.OutByte(picMasterData, 0xFF)
	cpu.OutByte(picSlaveData, 0xFF)
}

// Unmask enables delivery of the given IRQ line (0-15).
func Unmask(line uint32) {
	if line < 8 {
		mask := cpu.InByte(picMasterData)
		cpu.OutByte(picMasterData, mask&^(1<<line))
		return
	}
	mask := cpu.InByte(picSlaveData)
	cpu.OutByte(picSlaveData, mask&^(1<<(line-8)))
}

// portOutFn is the port write sendEOI uses; tests replace it so irqDispatch
// can run without touching real I/O ports.
var portOutFn = cpu.OutByte

// sendEOI acknowledges the interrupt to the PIC(s) so further IRQs can be
// delivered. A slave-PIC line (8-15) needs an EOI sent to both PICs.
func sendEOI(irqLine uint32) {
	if irqLine >= 8 {
		portOutFn(picSlaveCmd, eoiCmd)
	}
	portOutFn(picMasterCmd, eoiCmd)
}
