package tft

import "image/color"

// Color is a one-byte pixel value. The driver clocks the same byte for the
// high and low half of each RGB565 pixel, so the panel shows c<<8 | c.
type Color uint8

// Fixed colors.
const (
	Black Color = 0x00
	White Color = 0xFF
)

// RGB565 returns the 16-bit pixel the panel stores for c.
func (c Color) RGB565() uint16 {
	return uint16(c)<<8 | uint16(c)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return RGB565(c.RGB565()).RGBA()
}

// RGB565 is a raw 16-bit panel pixel: rrrrrggggggbbbbb.
type RGB565 uint16

// RGBA implements color.Color.
func (p RGB565) RGBA() (r, g, b, a uint32) {
	rr := uint32(p>>11) & 0x1F
	gg := uint32(p>>5) & 0x3F
	bb := uint32(p) & 0x1F

	r = rr * 0xFFFF / 31
	g = gg * 0xFFFF / 63
	b = bb * 0xFFFF / 31
	return r, g, b, 0xFFFF
}

// Palette holds the configurable UI colors.
type Palette struct {
	Frame  Color // progress bar box
	Icon   Color // icon foreground and fallback square
	NoProg Color // marquee when there is no source
	PCSD   Color // marquee when the SD card is involved
	PCROM  Color // marquee for any other transfer
}

// Marquee picks the bar color for a transfer: no source first, then any SD
// card access, then everything else.
func (p Palette) Marquee(f Flags) Color {
	switch {
	case f.Has(FromNone):
		return p.NoProg
	case f.Any(FromSD | ToSD):
		return p.PCSD
	default:
		return p.PCROM
	}
}

// DefaultPalette is used when Opts.Palette is the zero value.
var DefaultPalette = Palette{
	Frame:  0x52,
	Icon:   White,
	NoProg: 0xE0,
	PCSD:   0x07,
	PCROM:  0x1F,
}

var _ color.Color = Color(0)
