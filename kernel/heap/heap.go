// Package heap implements the kernel's general-purpose dynamic memory
// allocator: a slab allocator organized as one "tub" per size class, each tub
// holding bundles pulled from a single global free-bundle pool, each bundle
// carved into fixed-size "chunks" once it is assigned to a tub. This mirrors
// the original kernel's tub/bundle/chunk design; package paging supplies the
// physical frames each bundle is backed by.
package heap

import (
	"kalio/kernel"
	"kalio/kernel/klist"
	"kalio/kernel/mem"
)

// sizeClasses lists every chunk size a tub can serve, smallest first.
var sizeClasses = [...]uint32{32, 128, 256, 512, 1024, 4096}

const (
	magic = 0x71291

	maxBundles       = 100
	initBundles      = 20
	growBundlesLimit = 10
)

// chunkHeader prefixes every chunk handed out by KMallocHeap. magic lets
// KFreeHeap catch a caller passing back a pointer that was never allocated
// by this heap (or has already been freed and overwritten).
type chunkHeader struct {
	magic    uint32
	tubIndex uint8
	free     bool
}

// bundle is one 4 KiB frame, shared across the whole heap's global pool.
// Once assigned to a tub it is carved into equal chunks of that tub's size
// class; when its last chunk is freed it is zeroed and returned to the
// free pool rather than released back to the frame allocator (the frame is
// retained, not released, exactly as the original design does).
type bundle struct {
	frameAddr   uintptr
	hasFrame    bool
	chunkSize   uint32
	chunkSlots  int
	chunksInUse int
	freeList    klist.List[uintptr]
}

// tub owns every bundle currently carved to a single chunk size.
type tub struct {
	chunkSize uint32
	bundles   []*bundle
}

var tubs [len(sizeClasses)]tub

// freeBundlePool holds bundles not currently owned by any tub. totalBundles
// is the number ever created, across the whole heap, capped at maxBundles
// regardless of how many tubs are drawing from the pool.
var (
	freeBundlePool []*bundle
	totalBundles   int
)

// frameProvider abstracts the physical page source a bundle is backed by,
// so tests can supply a plain byte slice instead of package paging's real
// KMalloc (which would panic outside a running kernel).
var frameProvider = func() uintptr {
	kernel.Panic(&kernel.Error{Module: "heap", Message: "frame provider not configured"})
	return 0
}

// SetFrameProvider installs the function bundle materialization calls to
// obtain a fresh page-sized region. Production boot code wires this to
// paging.KMalloc; tests wire it to a backing byte slice.
func SetFrameProvider(fn func() uintptr) {
	frameProvider = fn
}

// Init resets every tub to its size class and seeds the global free-bundle
// pool with initBundles empty (frameless) bundles.
func Init() {
	for i, size := range sizeClasses {
		tubs[i] = tub{chunkSize: size}
	}

	freeBundlePool = nil
	totalBundles = 0
	for i := 0; i < initBundles; i++ {
		freeBundlePool = append(freeBundlePool, &bundle{})
		totalBundles++
	}
}

// classFor returns the index of the smallest size class that can satisfy a
// request of n bytes (accounting for the chunk header), or -1 if n is larger
// than the largest class.
func classFor(n uint32) int {
	need := n + uint32(headerSize)
	for i, size := range sizeClasses {
		if need <= size {
			return i
		}
	}
	return -1
}

const headerSize = 8 // chunkHeader is padded to 8 bytes on a 32-bit target

// KMallocHeap allocates n bytes from the smallest tub that can serve it,
// pulling a bundle from the global free pool (growing the pool up to
// maxBundles, growBundlesLimit at a time) if every bundle the tub currently
// owns is exhausted. ok is false for a request larger than the biggest size
// class or when the heap has no bundle left to give — both are the
// "recoverable null return" failure mode the rest of the kernel is
// expected to propagate, not a panic: an oversized buffer or a heap under
// memory pressure must not halt the kernel.
func KMallocHeap(n uint32) (uintptr, bool) {
	class := classFor(n)
	if class < 0 {
		return 0, false
	}

	t := &tubs[class]
	for {
		if addr, ok := tryAlloc(t, class); ok {
			return addr, true
		}
		b := takeBundle(t.chunkSize)
		if b == nil {
			return 0, false
		}
		t.bundles = append(t.bundles, b)
	}
}

// tryAlloc looks for a free chunk in any bundle t currently owns.
func tryAlloc(t *tub, class int) (uintptr, bool) {
	for _, b := range t.bundles {
		if addr, ok := b.freeList.PopFront(); ok {
			header := (*chunkHeader)(ptr(addr))
			header.magic = magic
			header.tubIndex = uint8(class)
			header.free = false
			b.chunksInUse++
			return addr + headerSize, true
		}
	}
	return 0, false
}

// takeBundle pulls one bundle off the global free pool (growing it first if
// empty) and carves it into chunks of chunkSize. It returns nil if the pool
// is empty and the heap has already reached maxBundles total.
func takeBundle(chunkSize uint32) *bundle {
	if len(freeBundlePool) == 0 {
		growFreeBundlePool()
	}
	if len(freeBundlePool) == 0 {
		return nil
	}

	b := freeBundlePool[len(freeBundlePool)-1]
	freeBundlePool = freeBundlePool[:len(freeBundlePool)-1]

	if !b.hasFrame {
		b.frameAddr = frameProvider()
		kernel.Memset(b.frameAddr, 0, uintptr(mem.PageSize))
		b.hasFrame = true
	}
	carve(b, chunkSize)
	return b
}

// growFreeBundlePool adds up to growBundlesLimit fresh, frameless bundles to
// the global pool, capped at maxBundles total across the whole heap.
func growFreeBundlePool() {
	if totalBundles >= maxBundles {
		return
	}

	grow := growBundlesLimit
	if totalBundles+grow > maxBundles {
		grow = maxBundles - totalBundles
	}
	for i := 0; i < grow; i++ {
		freeBundlePool = append(freeBundlePool, &bundle{})
		totalBundles++
	}
}

// carve splits b's (already-materialized) frame into equal-size chunks of
// chunkSize, threading each onto b's free list.
func carve(b *bundle, chunkSize uint32) {
	b.chunkSize = chunkSize
	b.chunkSlots = int(uint32(mem.PageSize) / chunkSize)
	b.chunksInUse = 0
	b.freeList = klist.List[uintptr]{}
	for i := 0; i < b.chunkSlots; i++ {
		addr := b.frameAddr + uintptr(i)*uintptr(chunkSize)
		b.freeList.PushBack(addr)
	}
}

// KFreeHeap returns a chunk previously handed out by KMallocHeap to its
// owning bundle. If that bundle's last in-use chunk was just freed, the
// bundle is unlinked from its tub, zeroed, and returned to the global free
// pool (its frame is retained, not released back to the frame allocator).
// It panics if addr's header does not carry the expected magic or has
// already been freed, catching double-frees and foreign pointers.
func KFreeHeap(addr uintptr) {
	headerAddr := addr - headerSize
	header := (*chunkHeader)(ptr(headerAddr))

	if header.magic != magic {
		kernel.Panic(&kernel.Error{Module: "heap", Message: "corrupt or foreign chunk header"})
	}
	if header.free {
		kernel.Panic(&kernel.Error{Module: "heap", Message: "double free"})
	}

	header.free = true
	t := &tubs[header.tubIndex]
	for i, b := range t.bundles {
		if headerAddr < b.frameAddr || headerAddr >= b.frameAddr+uintptr(mem.PageSize) {
			continue
		}

		b.freeList.PushBack(headerAddr)
		b.chunksInUse--
		if b.chunksInUse == 0 {
			t.bundles = append(t.bundles[:i], t.bundles[i+1:]...)
			retireBundle(b)
		}
		return
	}
}

// retireBundle zeroes a bundle's frame and returns it to the global free
// pool, disassociating it from its former tub and chunk size.
func retireBundle(b *bundle) {
	kernel.Memset(b.frameAddr, 0, uintptr(mem.PageSize))
	b.chunkSize = 0
	b.chunkSlots = 0
	b.chunksInUse = 0
	b.freeList = klist.List[uintptr]{}
	freeBundlePool = append(freeBundlePool, b)
}
