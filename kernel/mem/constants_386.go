// +build 386

package mem

const (
	// PointerShift is log2 of the native pointer size; used to convert
	// between a slice length and its byte size when indexing tables of
	// pointer-sized entries (page directory/table slots).
	PointerShift = 2
	PageShift    = 12
	PageSize     = Size(1 << PageShift)
)
