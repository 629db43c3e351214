package tft

import (
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"
)

// litPixels counts non-black pixels in the caption strip.
func litPixels(at func(x, y int) uint16) (n, minX, maxX int) {
	minX, maxX = Width, -1
	for y := CaptionY; y < CaptionY+CaptionH; y++ {
		for x := 0; x < Width; x++ {
			if at(x, y) == 0 {
				continue
			}
			n++
			minX = min(minX, x)
			maxX = max(maxX, x)
		}
	}
	return n, minX, maxX
}

func TestWriteCaption(t *testing.T) {
	c := qt.New(t)

	d, panel := newTestDev(c, nil)
	c.Assert(d.initPanel(), qt.IsNil)

	c.Assert(d.WriteCaption("BLINK"), qt.IsNil)
	n, minX, maxX := litPixels(panel.At)
	c.Assert(n > 0, qt.IsTrue)
	// Roughly centered.
	c.Assert(minX > Width/4 && maxX < Width*3/4, qt.IsTrue, qt.Commentf("x range %d..%d", minX, maxX))
	c.Assert(panel.At(0, CaptionY-1), qt.Equals, uint16(0))

	c.Assert(d.WriteCaption(""), qt.IsNil)
	n, _, _ = litPixels(panel.At)
	c.Assert(n, qt.Equals, 0)
}

func TestTextSurfaceClipsToStrip(t *testing.T) {
	c := qt.New(t)

	d, panel := newTestDev(c, nil)
	c.Assert(d.initPanel(), qt.IsNil)
	panel.ClearLog()

	s := &textSurface{d: d, c: White}
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	s.SetPixel(10, CaptionY-1, white)
	s.SetPixel(-1, CaptionY, white)
	s.SetPixel(10, CaptionY, color.RGBA{})
	c.Assert(panel.Bursts(), qt.HasLen, 0)

	s.SetPixel(10, CaptionY, white)
	c.Assert(s.Display(), qt.IsNil)
	c.Assert(panel.At(10, CaptionY), qt.Equals, White.RGB565())

	x, y := s.Size()
	c.Assert([]int16{x, y}, qt.DeepEquals, []int16{Width, Height})
}

func TestWriteCaptionHalted(t *testing.T) {
	c := qt.New(t)

	d, _ := newTestDev(c, nil)
	c.Assert(d.Halt(), qt.IsNil)
	c.Assert(d.WriteCaption("X"), qt.Equals, ErrHalted)
}
