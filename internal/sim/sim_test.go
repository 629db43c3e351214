package sim

import (
	"bytes"
	"image/png"
	"testing"

	qt "github.com/frankban/quicktest"
)

// bus drives a panel the way an 8080 host does.
type bus struct {
	p    *Panel
	ctrl byte
}

func newBus() *bus {
	p := New(DefaultLines)
	l := DefaultLines
	b := &bus{p: p, ctrl: l.RS | l.WR | l.RD | l.Reset}
	b.p.Control().Out(b.ctrl)
	return b
}

func (b *bus) write(rs bool, v byte) {
	l := b.p.lines
	c := l.WR | l.RD | l.Reset
	if rs {
		c |= l.RS
	}
	b.p.Control().Out(c &^ l.WR)
	b.p.Data().Out(v)
	b.p.Control().Out(c)
}

func (b *bus) command(idx uint16) {
	b.write(false, byte(idx>>8))
	b.write(false, byte(idx))
}

func (b *bus) word(v uint16) {
	b.write(true, byte(v>>8))
	b.write(true, byte(v))
}

func TestRegisterWrite(t *testing.T) {
	c := qt.New(t)

	b := newBus()
	b.command(0x0060)
	b.word(0xA700)

	c.Assert(b.p.Register(0x60), qt.Equals, uint16(0xA700))
	c.Assert(b.p.Writes(), qt.DeepEquals, []RegWrite{{Index: 0x60, Value: 0xA700}})
	c.Assert(b.p.Strobes(), qt.Equals, 4)
}

func TestChipSelectGatesBus(t *testing.T) {
	c := qt.New(t)

	b := newBus()
	l := DefaultLines
	idle := l.CS | l.RS | l.WR | l.RD | l.Reset
	b.p.Control().Out(idle &^ l.WR)
	b.p.Control().Out(idle)

	c.Assert(b.p.Strobes(), qt.Equals, 0)
}

func TestResetRestoresDefaults(t *testing.T) {
	c := qt.New(t)

	b := newBus()
	b.command(regHorEnd)
	b.word(0x0010)
	c.Assert(b.p.Register(regHorEnd), qt.Equals, uint16(0x0010))

	l := DefaultLines
	b.p.Control().Out(l.RS | l.WR | l.RD)
	b.p.Control().Out(l.RS | l.WR | l.RD | l.Reset)

	c.Assert(b.p.Resets(), qt.Equals, 2)
	c.Assert(b.p.Register(regHorEnd), qt.Equals, uint16(resetHorEnd))
}

func TestPixelStreamWraps(t *testing.T) {
	c := qt.New(t)

	b := newBus()
	// AM=1, decrement both: logical x grows, rows wrap to the next logical y.
	b.command(regEntryMode)
	b.word(0x1008)
	b.command(regGRAMVer)
	b.word(1) // logical x = 318
	b.command(regGRAMHor)
	b.word(GRAMWidth - 1) // logical y = 0
	b.command(regRWGRAM)
	for i := 0; i < 3; i++ {
		b.word(0xF800)
	}

	c.Assert(b.p.At(318, 0), qt.Equals, uint16(0xF800))
	c.Assert(b.p.At(319, 0), qt.Equals, uint16(0xF800))
	c.Assert(b.p.At(0, 1), qt.Equals, uint16(0xF800))
	c.Assert(b.p.At(1, 1), qt.Equals, uint16(0))

	bursts := b.p.Bursts()
	c.Assert(bursts, qt.HasLen, 1)
	c.Assert(bursts[0], qt.Equals, Burst{H: GRAMWidth - 1, V: 1, Mode: 0x1008, Pixels: 3, First: 0xF800})
}

func TestLogical(t *testing.T) {
	c := qt.New(t)

	x, y := Logical(GRAMWidth-1, GRAMHeight-1)
	c.Assert([]int{x, y}, qt.DeepEquals, []int{0, 0})
	x, y = Logical(0, 0)
	c.Assert([]int{x, y}, qt.DeepEquals, []int{GRAMHeight - 1, GRAMWidth - 1})
	c.Assert((&Panel{gram: make([]uint16, GRAMWidth*GRAMHeight)}).At(-1, 0), qt.Equals, uint16(0))
}

func TestWritePNG(t *testing.T) {
	c := qt.New(t)

	b := newBus()
	b.command(regRWGRAM)
	b.word(0xFFFF)

	var buf bytes.Buffer
	c.Assert(b.p.WritePNG(&buf), qt.IsNil)

	img, err := png.Decode(&buf)
	c.Assert(err, qt.IsNil)
	c.Assert(img.Bounds().Dx(), qt.Equals, GRAMHeight)
	c.Assert(img.Bounds().Dy(), qt.Equals, GRAMWidth)

	// GRAM (0,0) is the bottom-right corner of the landscape view.
	r, g, bl, _ := img.At(GRAMHeight-1, GRAMWidth-1).RGBA()
	c.Assert([]uint32{r, g, bl}, qt.DeepEquals, []uint32{0xFFFF, 0xFFFF, 0xFFFF})
	r, _, _, _ = img.At(0, 0).RGBA()
	c.Assert(r, qt.Equals, uint32(0))
}

func TestClearLog(t *testing.T) {
	c := qt.New(t)

	b := newBus()
	b.command(0x0007)
	b.word(0x0133)
	b.p.ClearLog()

	c.Assert(b.p.Writes(), qt.HasLen, 0)
	c.Assert(b.p.Strobes(), qt.Equals, 0)
	c.Assert(b.p.Register(0x0007), qt.Equals, uint16(0x0133))
}
