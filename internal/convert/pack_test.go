package convert

import (
	"image"
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestPackIconBits(t *testing.T) {
	c := qt.New(t)

	img := image.NewNRGBA(image.Rect(10, 20, 10+IconWidth, 20+IconHeight))
	white := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	img.SetNRGBA(10, 20, white)       // (0,0)
	img.SetNRGBA(10+9, 20, white)     // (9,0)
	img.SetNRGBA(10+63, 20+63, white) // (63,63)
	img.SetNRGBA(10+1, 20, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x10})

	data, err := PackIcon(img)
	c.Assert(err, qt.IsNil)
	c.Assert(data, qt.HasLen, IconSize)
	c.Assert(data[0], qt.Equals, byte(0x01))
	c.Assert(data[1], qt.Equals, byte(0x02))
	c.Assert(data[IconSize-1], qt.Equals, byte(0x80))

	var set int
	for _, b := range data {
		for ; b != 0; b &= b - 1 {
			set++
		}
	}
	c.Assert(set, qt.Equals, 3)
}

func TestPackIconSize(t *testing.T) {
	c := qt.New(t)

	_, err := PackIcon(image.NewGray(image.Rect(0, 0, 32, 64)))
	c.Assert(err, qt.ErrorMatches, `convert: expected 64x64 icon, got 32x64`)
}

func TestUnpackIcon(t *testing.T) {
	c := qt.New(t)

	src := image.NewGray(image.Rect(0, 0, IconWidth, IconHeight))
	for i := 0; i < IconWidth; i++ {
		src.SetGray(i, i, color.Gray{Y: 0xFF})
		src.SetGray(IconWidth-1-i, i, color.Gray{Y: 0xC0})
	}

	data, err := PackIcon(src)
	c.Assert(err, qt.IsNil)
	got, err := UnpackIcon(data)
	c.Assert(err, qt.IsNil)
	for i := 0; i < IconWidth; i++ {
		c.Assert(got.GrayAt(i, i).Y, qt.Equals, uint8(0xFF))
		c.Assert(got.GrayAt(IconWidth-1-i, i).Y, qt.Equals, uint8(0xFF))
	}
	c.Assert(got.GrayAt(1, 0).Y, qt.Equals, uint8(0))

	_, err = UnpackIcon(data[:10])
	c.Assert(err, qt.ErrorMatches, `convert: icon needs 512 bytes, got 10`)
}

func TestClassifyPixel(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
		want ink
	}{
		{"white", color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}, inkLit},
		{"black", color.NRGBA{0, 0, 0, 0xFF}, inkBackground},
		{"transparent white", color.NRGBA{0xFF, 0xFF, 0xFF, 0x7F}, inkBackground},
		{"green", color.NRGBA{0, 0xFF, 0, 0xFF}, inkLit},
		{"blue", color.NRGBA{0, 0, 0xFF, 0xFF}, inkBackground},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			c.Assert(classifyPixel(tt.c), qt.Equals, tt.want)
		})
	}
}
