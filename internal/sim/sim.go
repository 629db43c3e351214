// Package sim models an ILI932x controller behind an 8-bit 8080 bus. It
// decodes the byte stream written to its data and control ports into
// register writes and GRAM pixels, which lets the driver run without a
// panel and lets tests inspect exactly what reached the controller.
package sim

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// Native GRAM geometry. The logical (landscape) view is mirrored on both
// axes: logical x maps to vertical address GRAMHeight-1-x and logical y to
// horizontal address GRAMWidth-1-y.
const (
	GRAMWidth  = 240
	GRAMHeight = 320
)

const (
	regEntryMode  = 0x03
	regGRAMHor    = 0x20
	regGRAMVer    = 0x21
	regRWGRAM     = 0x22
	regHorStart   = 0x50
	regHorEnd     = 0x51
	regVerStart   = 0x52
	regVerEnd     = 0x53
	entryAM       = 0x08
	entryIncHor   = 0x10
	entryIncVer   = 0x20
	resetHorEnd   = GRAMWidth - 1
	resetVerEnd   = GRAMHeight - 1
	registerCount = 256
)

// Lines map controller signals onto control port bits.
type Lines struct {
	CS    byte
	RS    byte
	WR    byte
	RD    byte
	Reset byte
}

// DefaultLines matches the driver's default control masks.
var DefaultLines = Lines{
	CS:    0x01,
	RS:    0x02,
	WR:    0x04,
	RD:    0x08,
	Reset: 0x10,
}

// RegWrite is one decoded register write.
type RegWrite struct {
	Index uint16
	Value uint16
}

// Burst is one GRAM write session, started by selecting the RW_GRAM
// register. H and V are the controller addresses the session started at.
type Burst struct {
	H, V   uint16
	Mode   uint16 // entry mode register at the start of the burst
	Pixels int
	First  uint16 // first pixel written, if any
}

// Panel is the simulated controller.
type Panel struct {
	lines Lines
	ctrl  byte
	data  byte

	dataPhase bool
	half      bool
	hi        byte

	index uint16
	regs  [registerCount]uint16
	h, v  uint16
	gram  []uint16

	writes  []RegWrite
	bursts  []Burst
	strobes int
	resets  int
}

// New returns a panel in its power-on state.
func New(lines Lines) *Panel {
	p := &Panel{
		lines: lines,
		ctrl:  lines.CS | lines.RS | lines.WR | lines.RD | lines.Reset,
		gram:  make([]uint16, GRAMWidth*GRAMHeight),
	}
	p.reset()
	return p
}

// Port is an 8-bit output register.
type Port interface {
	Out(v byte) error
}

type dataPort struct{ p *Panel }

func (d dataPort) Out(v byte) error {
	d.p.data = v
	return nil
}

type controlPort struct{ p *Panel }

func (c controlPort) Out(v byte) error {
	c.p.control(v)
	return nil
}

// Data returns the 8-bit data port.
func (p *Panel) Data() Port { return dataPort{p} }

// Control returns the control port.
func (p *Panel) Control() Port { return controlPort{p} }

func (p *Panel) control(v byte) {
	prev := p.ctrl
	p.ctrl = v

	if v&p.lines.Reset == 0 {
		if prev&p.lines.Reset != 0 {
			p.reset()
		}
		return
	}
	if v&p.lines.CS != 0 {
		return
	}
	if prev&p.lines.WR == 0 && v&p.lines.WR != 0 {
		p.strobes++
		p.latch(v&p.lines.RS != 0, p.data)
	}
}

// reset restores register defaults. GRAM content survives, as on hardware.
func (p *Panel) reset() {
	p.resets++
	p.regs = [registerCount]uint16{}
	p.regs[regHorEnd] = resetHorEnd
	p.regs[regVerEnd] = resetVerEnd
	p.index = 0
	p.h, p.v = 0, 0
	p.half = false
}

func (p *Panel) latch(isData bool, b byte) {
	if isData != p.dataPhase {
		p.dataPhase = isData
		p.half = false
	}
	if !p.half {
		p.hi = b
		p.half = true
		return
	}
	p.half = false
	word := uint16(p.hi)<<8 | uint16(b)

	if !isData {
		p.index = word
		if word == regRWGRAM {
			p.bursts = append(p.bursts, Burst{H: p.h, V: p.v, Mode: p.regs[regEntryMode]})
		}
		return
	}

	if p.index == regRWGRAM {
		p.pixel(word)
		return
	}

	p.regs[p.index%registerCount] = word
	p.writes = append(p.writes, RegWrite{Index: p.index, Value: word})
	switch p.index {
	case regGRAMHor:
		p.h = word
	case regGRAMVer:
		p.v = word
	}
}

func (p *Panel) pixel(c uint16) {
	if p.h < GRAMWidth && p.v < GRAMHeight {
		p.gram[int(p.v)*GRAMWidth+int(p.h)] = c
	}
	if n := len(p.bursts); n > 0 {
		b := &p.bursts[n-1]
		if b.Pixels == 0 {
			b.First = c
		}
		b.Pixels++
	}

	mode := p.regs[regEntryMode]
	incH := mode&entryIncHor != 0
	incV := mode&entryIncVer != 0
	hs, he := p.regs[regHorStart], p.regs[regHorEnd]
	vs, ve := p.regs[regVerStart], p.regs[regVerEnd]
	if mode&entryAM != 0 {
		if step(&p.v, incV, vs, ve) {
			step(&p.h, incH, hs, he)
		}
	} else {
		if step(&p.h, incH, hs, he) {
			step(&p.v, incV, vs, ve)
		}
	}
}

// step moves a within [lo, hi] and reports whether it wrapped.
func step(a *uint16, inc bool, lo, hi uint16) bool {
	if inc {
		if *a >= hi {
			*a = lo
			return true
		}
		*a++
		return false
	}
	if *a <= lo {
		*a = hi
		return true
	}
	*a--
	return false
}

// Register returns the last value written to register idx.
func (p *Panel) Register(idx uint16) uint16 {
	return p.regs[idx%registerCount]
}

// Writes returns the decoded register writes, oldest first.
func (p *Panel) Writes() []RegWrite { return p.writes }

// Bursts returns the GRAM write sessions, oldest first.
func (p *Panel) Bursts() []Burst { return p.bursts }

// Strobes returns the number of latched bytes.
func (p *Panel) Strobes() int { return p.strobes }

// Resets returns how many times the reset line was asserted, counting
// power-on.
func (p *Panel) Resets() int { return p.resets }

// ClearLog drops the recorded writes, bursts and strobe count.
func (p *Panel) ClearLog() {
	p.writes = nil
	p.bursts = nil
	p.strobes = 0
}

// At returns the RGB565 pixel at logical (x, y) of the landscape view.
func (p *Panel) At(x, y int) uint16 {
	v := GRAMHeight - 1 - x
	h := GRAMWidth - 1 - y
	if v < 0 || v >= GRAMHeight || h < 0 || h >= GRAMWidth {
		return 0
	}
	return p.gram[v*GRAMWidth+h]
}

// Logical converts a controller address to landscape coordinates.
func Logical(h, v uint16) (x, y int) {
	return GRAMHeight - 1 - int(v), GRAMWidth - 1 - int(h)
}

// Image renders the landscape view.
func (p *Panel) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, GRAMHeight, GRAMWidth))
	for y := 0; y < GRAMWidth; y++ {
		for x := 0; x < GRAMHeight; x++ {
			r, g, b := rgb888From565(p.At(x, y))
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}
	return img
}

// WritePNG encodes the landscape view as PNG.
func (p *Panel) WritePNG(w io.Writer) error {
	return png.Encode(w, p.Image())
}

func rgb888From565(px uint16) (r, g, b uint8) {
	rr := (px >> 11) & 0x1F
	gg := (px >> 5) & 0x3F
	bb := px & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}
