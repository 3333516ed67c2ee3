// Package vga drives the standard VGA text-mode console: an 80x25 grid of
// (char, attribute) cells at physical address 0xB8000, with the hardware
// cursor position set through the CRTC index/data ports. Once Init runs,
// kfmt.SetOutputSink routes every kfmt.Printf call here; before that, boot
// diagnostics and panics go through kernel/kfmt/early instead.
package vga

import "kalio/kernel/cpu"

const (
	fbAddr = uintptr(0xB8000)
	Cols   = 80
	Rows   = 25

	crtcIndexPort = 0x3D4
	crtcDataPort  = 0x3D5
	cursorHighReg = 0x0E
	cursorLowReg  = 0x0F

	defaultAttr = 0x07 // light grey on black
)

// palette lists the 16 standard VGA text-mode colors in hardware index
// order; SetPalette picks the foreground/background pair future writes use.
var palette = [16]string{
	"black", "blue", "green", "cyan", "red", "magenta", "brown", "light-grey",
	"dark-grey", "light-blue", "light-green", "light-cyan", "light-red", "light-magenta", "yellow", "white",
}

// Console is the single VGA text console. It implements io.Writer so it can
// be installed as kfmt's output sink.
type Console struct {
	row, col int
	attr     byte
}

var Default Console

// Init clears the screen and positions the cursor at the top-left cell.
func Init() {
	Default.attr = defaultAttr
	Default.Clear()
}

// SetPalette selects the attribute byte for subsequent writes from a
// (foreground, background) index pair, both 0-15.
func (c *Console) SetPalette(fg, bg uint8) {
	c.attr = (bg&0xF)<<4 | (fg & 0xF)
}

// namedPalettes maps a bootcfg "palette" value to a (foreground, background)
// pair; "default" is the classic light-grey-on-black EGA console.
var namedPalettes = map[string][2]uint8{
	"default": {7, 0},
	"amber":   {6, 0},
	"green":   {2, 0},
	"inverse": {0, 7},
}

// SetPaletteByName applies a named palette, leaving the current attribute
// untouched and returning false if name is not recognized.
func (c *Console) SetPaletteByName(name string) bool {
	p, ok := namedPalettes[name]
	if !ok {
		return false
	}
	c.SetPalette(p[0], p[1])
	return true
}

// Clear blanks every cell and resets the cursor to (0, 0).
func (c *Console) Clear() {
	for i := uintptr(0); i < Cols*Rows; i++ {
		poke(fbAddr+i*2, ' ', c.attr)
	}
	c.row, c.col = 0, 0
	c.updateCursor()
}

// Write implements io.Writer, advancing the cursor and scrolling the screen
// up by one row whenever output runs past the last line.
func (c *Console) Write(p []byte) (int, error) {
	for _, b := range p {
		c.putc(b)
	}
	c.updateCursor()
	return len(p), nil
}

func (c *Console) putc(b byte) {
	switch b {
	case '\n':
		c.row++
		c.col = 0
	case '\b':
		if c.col > 0 {
			c.col--
			poke(cellAddr(c.row, c.col), ' ', c.attr)
		}
	default:
		poke(cellAddr(c.row, c.col), b, c.attr)
		c.col++
		if c.col >= Cols {
			c.col = 0
			c.row++
		}
	}

	if c.row >= Rows {
		c.scroll()
		c.row = Rows - 1
	}
}

func (c *Console) scroll() {
	for i := uintptr(0); i < (Rows-1)*Cols; i++ {
		b, a := peek(fbAddr + i*2 + Cols*2)
		poke(fbAddr+i*2, b, a)
	}
	for i := uintptr((Rows - 1) * Cols); i < Rows*Cols; i++ {
		poke(fbAddr+i*2, ' ', c.attr)
	}
}

func cellAddr(row, col int) uintptr {
	return fbAddr + uintptr(row*Cols+col)*2
}

func (c *Console) updateCursor() {
	pos := uint16(c.row*Cols + c.col)

	cpu.OutByte(crtcIndexPort, cursorHighReg)
	cpu.OutByte(crtcDataPort, uint8(pos>>8))
	cpu.OutByte(crtcIndexPort, cursorLowReg)
	cpu.OutByte(crtcDataPort, uint8(pos))
}
