// Package early provides a Printf that can be used before any driver has
// been initialized: it pokes characters directly into the VGA text
// framebuffer at 0xB8000 without going through kernel/driver/vga or the
// hardware cursor ports. kernel.Panic uses it exclusively so that a fault
// occurring before (or during) driver init can still report something.
package early

import "kalio/kernel/kfmt"

const (
	fbAddr  = uintptr(0xB8000)
	cols    = 80
	rows    = 25
	cellLen = cols * rows * 2
	attr    = 0x4F // white-on-red, so panics stand out from shell output
)

var w writer

// writer implements io.Writer by writing directly into the VGA text
// framebuffer, tracking its own row/column cursor.
type writer struct {
	row, col int
}

func (w *writer) Write(p []byte) (int, error) {
	for _, b := range p {
		w.putc(b)
	}
	return len(p), nil
}

func (w *writer) putc(b byte) {
	if b == '\n' {
		w.row++
		w.col = 0
		w.maybeScroll()
		return
	}

	offset := uintptr((w.row*cols + w.col) * 2)
	poke(fbAddr+offset, b, attr)

	w.col++
	if w.col >= cols {
		w.col = 0
		w.row++
		w.maybeScroll()
	}
}

func (w *writer) maybeScroll() {
	if w.row < rows {
		return
	}

	// Shift every row up by one and clear the last row.
	for i := uintptr(0); i < uintptr((rows-1)*cols*2); i++ {
		b := peek(fbAddr + i + cols*2)
		pokeByte(fbAddr+i, b)
	}
	for i := uintptr((rows - 1) * cols * 2); i < cellLen; i += 2 {
		poke(fbAddr+i, ' ', attr)
	}

	w.row = rows - 1
}

// Printf formats according to the subset of verbs kfmt.Printf supports and
// writes the result directly to the VGA text framebuffer.
func Printf(format string, args ...interface{}) {
	kfmt.Fprintf(&w, format, args...)
}
