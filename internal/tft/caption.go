package tft

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Caption strip below the status row.
const (
	CaptionY = 196
	CaptionH = 12
)

var captionFont = &tinyfont.Org01

// textSurface lets tinyfont render straight onto the panel. Every lit pixel
// is one single-pixel line in the icon color; the first error sticks.
type textSurface struct {
	d   *Dev
	c   Color
	err error
}

var _ drivers.Displayer = (*textSurface)(nil)

func (s *textSurface) Size() (x, y int16) {
	return Width, Height
}

func (s *textSurface) SetPixel(x, y int16, c color.RGBA) {
	if s.err != nil || c.A == 0 {
		return
	}
	if x < 0 || int(x) >= Width || y < CaptionY || int(y) >= CaptionY+CaptionH {
		return
	}
	s.err = s.d.WriteLine(int(x), int(y), 1, ModeHorizontal, s.c)
}

func (s *textSurface) Display() error {
	return s.err
}

// WriteCaption clears the caption strip and centers text in it. An empty
// text only clears.
func (d *Dev) WriteCaption(text string) error {
	if d.halted {
		return ErrHalted
	}
	if err := d.WriteRect(0, CaptionY, Width, CaptionH, Black); err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	_, w := tinyfont.LineWidth(captionFont, text)
	x := (Width - int(w)) / 2
	if x < 0 {
		x = 0
	}
	s := &textSurface{d: d, c: d.palette.Icon}
	tinyfont.WriteLine(s, captionFont, int16(x), CaptionY+CaptionH-3, text, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	return s.Display()
}
