package paging

import (
	"kalio/kernel"
	"kalio/kernel/mem"
)

// frameAlloc is the physical frame allocator backing KMalloc: a watermark
// over physical memory, advancing one page at a time. Like the page-table
// bump allocator it never frees; this kernel has no process model that would
// ever need a frame back.
var frameAlloc struct {
	next  uint32
	limit uint32
}

// InitFrames configures the frame allocator to serve frames from start up
// to (but excluding) limit, both of which must be page-aligned.
func InitFrames(start, limit uint32) {
	frameAlloc.next = start
	frameAlloc.limit = limit
}

// KMalloc reserves the next free physical frame, installs a page-table
// entry identity-mapping it into the active directory, zeroes it, and
// returns its address — spec's kmalloc(size) contract for a single-page
// block. frameAlloc is configured to serve frames from a window above the
// boot-time identity map (see kmain's call to InitFrames), so every frame
// KMalloc hands out must be mapped here before a caller touches it; none of
// them are reachable through the identity map alone.
func KMalloc() uint32 {
	addr := frameAlloc.next
	frameAlloc.next += uint32(mem.PageSize)

	active.AddPageTableEntry(addr, addr, flagPresent|flagWrite)
	kernel.Memset(uintptr(addr), 0, uintptr(mem.PageSize))

	return addr
}

// FramesFree reports how many frames remain before KMalloc would run past
// its configured limit.
func FramesFree() uint32 {
	if frameAlloc.next >= frameAlloc.limit {
		return 0
	}
	return (frameAlloc.limit - frameAlloc.next) / uint32(mem.PageSize)
}

// TryKMalloc is KMalloc's checked form, used by callers (the Go runtime
// bootstrap in package goruntime) that must fail gracefully instead of
// panicking when physical memory runs out.
func TryKMalloc() (uint32, bool) {
	if FramesFree() == 0 {
		return 0, false
	}
	return KMalloc(), true
}

// virtWatermark is a second, independent bump watermark over virtual
// address space, used to reserve the region backing the Go runtime's own
// heap (see package goruntime) well above the kernel's identity-mapped
// region so the two never collide.
var virtWatermark uint32

// InitVirtualRegion sets the first virtual address ReserveVirtualRegion may
// hand out.
func InitVirtualRegion(start uint32) {
	virtWatermark = start
}

// ReserveVirtualRegion carves out sizeBytes (rounded up to a page) of
// address space and returns its start address. The region is not yet
// mapped to any physical frame; the caller (sysMap/sysAlloc) is expected to
// call Directory.AddPageTableEntry for each page as it is actually backed.
func ReserveVirtualRegion(d *Directory, sizeBytes uint32) uint32 {
	pageSize := uint32(mem.PageSize)
	size := (sizeBytes + pageSize - 1) &^ (pageSize - 1)

	addr := virtWatermark
	virtWatermark += size
	return addr
}
