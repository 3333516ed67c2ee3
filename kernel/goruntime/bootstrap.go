// Package goruntime bootstraps the pieces of the Go runtime that the rest
// of this kernel actually relies on: heap allocation (new, make, append),
// map primitives, and interfaces. None of that works for free in a
// freestanding binary — the runtime's own sysReserve/sysMap/sysAlloc
// normally talk to the host OS's mmap, which does not exist here, so this
// package replaces them with calls into package paging instead.
//
// package heap (the tub/bundle/chunk allocator) is a separate, independent
// allocator: it exists because the spec this kernel implements calls for
// that specific allocation strategy as a first-class kernel subsystem, not
// because Go's own heap is insufficient. Once Init has run here, ordinary
// Go code elsewhere in the kernel (maps, slices, closures) works normally;
// package heap is used where the kernel wants that particular allocator's
// behavior, not as a substitute for this bootstrap.
package goruntime

import (
	"kalio/kernel"
	"kalio/kernel/paging"
	"unsafe"
)

var (
	directory            *paging.Directory
	mallocInitFn         = mallocInit
	algInitFn            = algInit
	modulesInitFn        = modulesInit
	typeLinksInitFn      = typeLinksInit
	itabsInitFn          = itabsInit

	prngSeed = uint32(0xdeadc0de)
)

//go:linkname algInit runtime.alginit
func algInit()

//go:linkname modulesInit runtime.modulesinit
func modulesInit()

//go:linkname typeLinksInit runtime.typelinksinit
func typeLinksInit()

//go:linkname itabsInit runtime.itabsinit
func itabsInit()

//go:linkname mallocInit runtime.mallocinit
func mallocInit()

//go:linkname mSysStatInc runtime.mSysStatInc
func mSysStatInc(*uint64, uintptr)

// sysReserve replaces runtime.sysReserve: it reserves address space in the
// active page directory without backing it with any physical frame yet.
//
//go:redirect-from runtime.sysReserve
//go:nosplit
func sysReserve(_ unsafe.Pointer, size uintptr, reserved *bool) unsafe.Pointer {
	addr := paging.ReserveVirtualRegion(directory, uint32(size))
	*reserved = true
	return unsafe.Pointer(uintptr(addr))
}

// sysMap replaces runtime.sysMap: it backs a previously reserved region,
// page by page, with freshly allocated physical frames.
//
//go:redirect-from runtime.sysMap
//go:nosplit
func sysMap(virtAddr unsafe.Pointer, size uintptr, reserved bool, sysStat *uint64) unsafe.Pointer {
	if !reserved {
		kernel.Panic(&kernel.Error{Module: "goruntime", Message: "sysMap called on an unreserved region"})
	}

	start := uint32(uintptr(virtAddr))
	pages := (uint32(size) + uint32(pageSize()) - 1) / uint32(pageSize())

	for i := uint32(0); i < pages; i++ {
		frame, ok := paging.TryKMalloc()
		if !ok {
			return unsafe.Pointer(uintptr(0))
		}
		directory.AddPageTableEntry(start+i*uint32(pageSize()), frame, 0x3)
	}

	mSysStatInc(sysStat, size)
	return virtAddr
}

// sysAlloc replaces runtime.sysAlloc: reserve a fresh region and immediately
// back it with physical frames, in one call.
//
//go:redirect-from runtime.sysAlloc
//go:nosplit
func sysAlloc(size uintptr, sysStat *uint64) unsafe.Pointer {
	var reserved bool
	addr := sysReserve(nil, size, &reserved)
	if addr == nil {
		return nil
	}
	return sysMap(addr, size, reserved, sysStat)
}

// nanotime replaces runtime.nanotime; there is no timekeeping subsystem
// wired into this bootstrap path, so it returns a constant. package timer
// is the kernel's real clock once boot reaches driver init.
//
//go:redirect-from runtime.nanotime
//go:nosplit
func nanotime() uint64 {
	for i := 0; i < 100; i++ {
	}
	return 1
}

// getRandomData replaces runtime.getRandomData, which normally reads
// /dev/urandom; this kernel has no entropy source, so it falls back to a
// simple LCG, matching the teacher's own acknowledged non-cryptographic
// fallback.
//
//go:redirect-from runtime.getRandomData
func getRandomData(r []byte) {
	for i := 0; i < len(r); i++ {
		prngSeed = (prngSeed * 58321) + 11113
		r[i] = byte((prngSeed >> 16) & 255)
	}
}

func pageSize() uintptr {
	return 4096
}

// Init enables Go runtime features (heap allocation, maps, interfaces)
// backed by dir for any future page-table entries the runtime needs.
func Init(dir *paging.Directory) {
	directory = dir
	mallocInitFn()
	algInitFn()
	modulesInitFn()
	typeLinksInitFn()
	itabsInitFn()
}
