// Package paging builds and manages the kernel's 2-level x86 page tables:
// a single page directory of 1024 entries, each pointing at a page table of
// 1024 entries, each mapping one 4 KiB frame. Page tables are created lazily
// and backed by the bump allocator (package mem) since the slab heap is not
// yet available this early in boot.
package paging

import (
	"kalio/kernel"
	"kalio/kernel/cpu"
	"kalio/kernel/irq"
	"kalio/kernel/kfmt"
	"kalio/kernel/mem"
	"unsafe"
)

const (
	entriesPerTable = 1024

	flagPresent = 1 << 0
	flagWrite   = 1 << 1

	pdeShift = 22
	pteShift = 12
	pteIndexMask = entriesPerTable - 1
)

// pte is a single page-directory or page-table entry: a frame-aligned
// physical address with the low 12 bits used for flags, exactly
// "phys|0x3" for a present, writable mapping.
type pte uint32

func (e pte) present() bool   { return e&flagPresent != 0 }
func (e pte) physAddr() uint32 { return uint32(e) &^ 0xFFF }

func makePTE(physAddr uint32, flags uint32) pte {
	return pte(physAddr&^0xFFF | flags)
}

// Directory is a page directory together with the bump allocator used to
// materialize new page tables on demand.
type Directory struct {
	entries [entriesPerTable]pte
	alloc   *mem.BumpAllocator
}

var active *Directory

// New creates an empty page directory backed by alloc for page-table
// allocations.
func New(alloc *mem.BumpAllocator) *Directory {
	return &Directory{alloc: alloc}
}

// IdentityMap maps every physical address in [0, sizeBytes) to the same
// virtual address, the mapping the kernel runs under immediately after
// paging is enabled.
func (d *Directory) IdentityMap(sizeBytes uint32) {
	for addr := uint32(0); addr < sizeBytes; addr += uint32(mem.PageSize) {
		d.AddPageTableEntry(addr, addr, flagPresent|flagWrite)
	}
}

// AddPageTableEntry maps virtAddr to physAddr, allocating and zeroing a new
// page table via the bump allocator if the covering directory entry is not
// yet present. The leaf entry must not already be present; double-mapping a
// virtual address is a caller bug, not a recoverable condition.
func (d *Directory) AddPageTableEntry(virtAddr, physAddr uint32, flags uint32) {
	dirIndex := virtAddr >> pdeShift
	tblIndex := (virtAddr >> pteShift) & pteIndexMask

	dirEntry := &d.entries[dirIndex]
	if !dirEntry.present() {
		tableAddr := uint32(d.alloc.Alloc(entriesPerTable*4, uintptr(mem.PageSize)))
		kernel.Memset(uintptr(tableAddr), 0, entriesPerTable*4)
		*dirEntry = makePTE(tableAddr, flagPresent|flagWrite)
	}

	table := (*[entriesPerTable]pte)(unsafe.Pointer(uintptr(dirEntry.physAddr())))
	kernel.Assert(!table[tblIndex].present(), "paging", "double-mapped page table entry")
	table[tblIndex] = makePTE(physAddr, flags)
}

// Activate loads this directory into CR3 and enables paging. It becomes the
// directory consulted by the page-fault handler registered in Init.
func (d *Directory) Activate() {
	active = d
	cpu.LoadPageDirectory(uint32(uintptr(unsafe.Pointer(&d.entries[0]))))
	cpu.EnablePaging()
}

// Init registers the page-fault handler with the interrupt subsystem. It
// must be called once, after irq.Init.
func Init() {
	irq.HandleException(14, handlePageFault)
}

// handlePageFault decodes the error code pushed for vector 14 exactly the
// way the original kernel's fault handler does: the faulting address from
// CR2 first, then one diagnostic line per error-code condition ("page not
// present" is printed when bit 0 is clear), before panicking. There is no
// demand paging or copy-on-write in this kernel, so every page fault is
// fatal.
func handlePageFault(vector, errCode uint32, frame *irq.Frame, regs *irq.Regs) {
	faultAddr := cpu.ReadCR2()

	kfmt.Printf("page fault at %8x\n", faultAddr)
	if errCode&1 == 0 {
		kfmt.Printf("  page not present\n")
	}
	if errCode&2 != 0 {
		kfmt.Printf("  page read-only\n")
	}
	if errCode&4 != 0 {
		kfmt.Printf("  processor was in user mode\n")
	}
	if errCode&8 != 0 {
		kfmt.Printf("  CPU reserved bits corrupted\n")
	}

	kernel.Panic(&kernel.Error{Module: "paging", Message: "page fault"})
}
