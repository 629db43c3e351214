package tft

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"

	"phoenlcd/internal/sim"
)

// segments returns the logical x of every bar segment drawn since the last
// ClearLog.
func segments(panel *sim.Panel) []int {
	var xs []int
	for _, b := range panel.Bursts() {
		if b.Mode != entryModeBGR|uint16(ModeVertical) || b.Pixels != ProgH-4 {
			continue
		}
		x, y := sim.Logical(b.H, b.V)
		if y != ProgY+2 {
			continue
		}
		xs = append(xs, x)
	}
	return xs
}

func TestWriteProgressRestartsBelowCurrent(t *testing.T) {
	c := qt.New(t)

	d, panel := newTestDev(c, nil)
	c.Assert(d.initPanel(), qt.IsNil)
	d.progress = 10
	panel.ClearLog()

	c.Assert(d.WriteProgress(5), qt.IsNil)
	c.Assert(d.Progress(), qt.Equals, uint8(5))
	c.Assert(segments(panel), qt.DeepEquals, []int{
		ProgX + 1*ProgStep,
		ProgX + 2*ProgStep,
		ProgX + 3*ProgStep,
		ProgX + 4*ProgStep,
		ProgX + 5*ProgStep,
	})

	// Same target draws nothing.
	panel.ClearLog()
	c.Assert(d.WriteProgress(5), qt.IsNil)
	c.Assert(panel.Bursts(), qt.HasLen, 0)
}

func TestWriteProgressSegments(t *testing.T) {
	tests := []struct {
		name     string
		flags    Flags
		firstX   int
		lastX    int
		rightDir bool
	}{
		{"normal", FromComputer | ToChipROM, ProgX + ProgStep, ProgX + ProgW, true},
		{"inverted", FromComputer | ToChipROM | ProgressInvert, ProgX + ProgW + 1 - ProgStep, ProgX + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			d, panel := newTestDev(c, nil)
			c.Assert(d.initPanel(), qt.IsNil)
			d.flags = tt.flags
			d.progress = 0
			d.progressColor = White
			panel.ClearLog()

			c.Assert(d.WriteProgress(ProgressCount), qt.IsNil)

			xs := segments(panel)
			c.Assert(xs, qt.HasLen, ProgressCount)
			c.Assert(xs[0], qt.Equals, tt.firstX)
			c.Assert(xs[len(xs)-1], qt.Equals, tt.lastX)
			for i := 1; i < len(xs); i++ {
				if tt.rightDir {
					c.Assert(xs[i], qt.Equals, xs[i-1]+ProgStep)
				} else {
					c.Assert(xs[i], qt.Equals, xs[i-1]-ProgStep)
				}
			}

			// Every segment stays inside the frame box.
			for _, x := range xs {
				c.Assert(x > ProgX && x < ProgX+ProgW+ProgStep, qt.IsTrue, qt.Commentf("x=%d", x))
				c.Assert(panel.At(x, ProgY+2), qt.Equals, White.RGB565())
				c.Assert(panel.At(x, ProgY+ProgH-3), qt.Equals, White.RGB565())
				c.Assert(panel.At(x, ProgY+ProgH-2), qt.Equals, uint16(0))
			}
		})
	}
}

func TestTransferTargetNeverSaturates(t *testing.T) {
	c := qt.New(t)

	for _, total := range []uint32{0, 1, 40, 512, 32768, 1 << 20, math.MaxUint32} {
		got := transferTarget(total, total)
		c.Assert(got < ProgressCount, qt.IsTrue, qt.Commentf("total=%d target=%d", total, got))
	}

	c.Assert(transferTarget(0, 1000), qt.Equals, uint8(0))
	c.Assert(transferTarget(520, 1000), qt.Equals, uint8(20))
	c.Assert(transferTarget(1040, 1000), qt.Equals, uint8(ProgressCount))
}

func TestTransferTargetClampsOverrun(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		current, total uint32
	}{
		{3000, 1000},
		{20000, 0},
		{math.MaxUint32, 0},
		{math.MaxUint32, 1},
	}

	for _, tt := range tests {
		c.Assert(transferTarget(tt.current, tt.total), qt.Equals, uint8(ProgressCount),
			qt.Commentf("current=%d total=%d", tt.current, tt.total))
	}
}

func TestWriteTransferProgressPastTotal(t *testing.T) {
	c := qt.New(t)

	d, panel := newTestDev(c, nil)
	c.Assert(d.initPanel(), qt.IsNil)
	d.progress = 0
	panel.ClearLog()

	c.Assert(d.WriteTransferProgress(3000, 1000, Color(0x1F)), qt.IsNil)
	c.Assert(d.Progress(), qt.Equals, uint8(ProgressCount))
	xs := segments(panel)
	c.Assert(xs, qt.HasLen, ProgressCount)
	c.Assert(xs[len(xs)-1], qt.Equals, ProgX+ProgW)

	// A full bar stays full; nothing is drawn past the frame box.
	panel.ClearLog()
	c.Assert(d.WriteTransferProgress(20000, 0, Color(0x1F)), qt.IsNil)
	c.Assert(d.Progress(), qt.Equals, uint8(ProgressCount))
	c.Assert(panel.Bursts(), qt.HasLen, 0)
}

func TestWriteProgressClampsTarget(t *testing.T) {
	c := qt.New(t)

	d, panel := newTestDev(c, nil)
	c.Assert(d.initPanel(), qt.IsNil)
	d.progress = 0
	panel.ClearLog()

	c.Assert(d.WriteProgress(255), qt.IsNil)
	c.Assert(d.Progress(), qt.Equals, uint8(ProgressCount))
	c.Assert(segments(panel), qt.HasLen, ProgressCount)
}

func TestWriteTransferProgress(t *testing.T) {
	c := qt.New(t)

	d, panel := newTestDev(c, nil)
	c.Assert(d.initPanel(), qt.IsNil)
	d.progress = 0
	panel.ClearLog()

	c.Assert(d.WriteTransferProgress(520, 1000, Color(0x1F)), qt.IsNil)
	c.Assert(d.Progress(), qt.Equals, uint8(20))
	c.Assert(segments(panel), qt.HasLen, 20)
	c.Assert(panel.At(ProgX+20*ProgStep, ProgY+2), qt.Equals, Color(0x1F).RGB565())

	// Growing continues from the drawn count.
	panel.ClearLog()
	c.Assert(d.WriteTransferProgress(780, 1000, Color(0x1F)), qt.IsNil)
	c.Assert(d.Progress(), qt.Equals, uint8(30))
	c.Assert(segments(panel), qt.HasLen, 10)
}

func TestPaletteMarquee(t *testing.T) {
	c := qt.New(t)

	p := Palette{NoProg: 1, PCSD: 2, PCROM: 3}
	c.Assert(p.Marquee(FromNone|ToChipROM), qt.Equals, Color(1))
	c.Assert(p.Marquee(FromSD|ToChipROM), qt.Equals, Color(2))
	c.Assert(p.Marquee(FromComputer|ToSD), qt.Equals, Color(2))
	c.Assert(p.Marquee(FromComputer|ToChipROM), qt.Equals, Color(3))
}

func TestWriteProgressHalted(t *testing.T) {
	c := qt.New(t)

	d, _ := newTestDev(c, nil)
	c.Assert(d.Halt(), qt.IsNil)
	c.Assert(d.WriteProgress(0), qt.Equals, ErrHalted)
	c.Assert(d.WriteTransferProgress(1, 2, White), qt.Equals, ErrHalted)
}
