package paging

import (
	"kalio/kernel/mem"
	"testing"
	"unsafe"
)

func TestAddPageTableEntryMapsFrame(t *testing.T) {
	backing := make([]byte, 4*1024*1024)
	base := uintptr(unsafe.Pointer(&backing[0]))
	alloc := mem.NewBumpAllocator(base, base+uintptr(len(backing)))

	d := New(alloc)
	d.AddPageTableEntry(0x1000, 0x2000, flagPresent|flagWrite)

	dirEntry := d.entries[0x1000>>pdeShift]
	if !dirEntry.present() {
		t.Fatal("expected directory entry to be present after mapping")
	}

	table := (*[entriesPerTable]pte)(unsafe.Pointer(uintptr(dirEntry.physAddr())))
	tblIndex := (uint32(0x1000) >> pteShift) & pteIndexMask
	entry := table[tblIndex]

	if !entry.present() {
		t.Fatal("expected page table entry to be present")
	}
	if entry.physAddr() != 0x2000 {
		t.Fatalf("expected mapped frame 0x2000, got %x", entry.physAddr())
	}
}

func TestFrameAllocatorAdvancesByPageSize(t *testing.T) {
	// KMalloc now installs a page-table entry and zeroes the frame it hands
	// out, so the frame window must be real, accessible memory (not an
	// arbitrary physical-looking constant) the way it would be in a running
	// kernel with paging enabled.
	tableBacking := make([]byte, 4*1024*1024)
	tableBase := uintptr(unsafe.Pointer(&tableBacking[0]))
	alloc := mem.NewBumpAllocator(tableBase, tableBase+uintptr(len(tableBacking)))
	active = New(alloc)

	pageSize := uintptr(mem.PageSize)
	frameBacking := make([]byte, uint32(pageSize)*8)
	frameBase := (uintptr(unsafe.Pointer(&frameBacking[0])) + pageSize - 1) &^ (pageSize - 1)

	start := uint32(frameBase)
	InitFrames(start, start+uint32(mem.PageSize)*4)

	first := KMalloc()
	second := KMalloc()

	if second-first != uint32(mem.PageSize) {
		t.Fatalf("expected consecutive allocations to differ by one page size, got %x vs %x", first, second)
	}

	if got := FramesFree(); got != 2 {
		t.Fatalf("expected 2 frames free, got %d", got)
	}
}
