package mem

import "kalio/kernel"

// BumpAllocator is the kernel's earliest memory source: a watermark that only
// ever moves forward. It backs every allocation made before the slab heap
// (package heap) exists, chiefly the page directory and page tables that
// package paging builds while setting up the MMU.
//
// There is no corresponding free: reclaiming bump-allocated memory would
// require tracking liveness this early in boot, which the original kernel
// never does either (kmalloc_mem only ever advances placement_addr).
type BumpAllocator struct {
	placement uintptr
	limit     uintptr
}

// NewBumpAllocator creates a BumpAllocator that hands out memory starting at
// start and refuses to serve requests that would cross limit (the first
// byte the allocator must not touch, e.g. the start of a reserved region).
func NewBumpAllocator(start, limit uintptr) *BumpAllocator {
	return &BumpAllocator{placement: start, limit: limit}
}

// Alloc reserves size bytes aligned to align (which must be a power of two)
// and returns the address of the reservation. It panics via kernel.Panic if
// the allocator would overrun its limit, since there is no way to recover
// from running out of bootstrap memory this early.
func (b *BumpAllocator) Alloc(size uintptr, align uintptr) uintptr {
	if align > 1 {
		mask := align - 1
		b.placement = (b.placement + mask) &^ mask
	}

	if b.placement+size > b.limit {
		kernel.Panic(&kernel.Error{Module: "mem", Message: "No memory"})
	}

	addr := b.placement
	b.placement += size
	return addr
}

// Placement returns the current watermark.
func (b *BumpAllocator) Placement() uintptr {
	return b.placement
}
