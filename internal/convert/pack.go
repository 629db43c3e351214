package convert

import (
	"fmt"
	"image"
	"image/color"
)

// Sketch icon geometry: one 512-byte volume block.
const (
	IconWidth      = 64
	IconHeight     = 64
	IconByteStride = IconWidth / 8
	IconSize       = IconByteStride * IconHeight
)

// PackIcon converts img into a 1bpp sketch icon.
//
//   - img must be exactly 64x64 pixels.
//   - A pixel is lit (drawn in the icon color) when it is opaque and bright;
//     transparent and dark pixels stay background.
//
// Packing:
//
//   - y-major, LSB-first:
//     byteIndex = y * 8 + (x >> 3)
//     mask      = 1 << (x & 7)
//   - bits start cleared; lit pixels set their bit.
func PackIcon(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() != IconWidth || b.Dy() != IconHeight {
		return nil, fmt.Errorf("convert: expected %dx%d icon, got %dx%d", IconWidth, IconHeight, b.Dx(), b.Dy())
	}

	out := make([]byte, IconSize)
	for py := 0; py < IconHeight; py++ {
		for px := 0; px < IconWidth; px++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+px, b.Min.Y+py)).(color.NRGBA)
			if classifyPixel(c) != inkLit {
				continue
			}
			out[py*IconByteStride+(px>>3)] |= 1 << (px & 7)
		}
	}
	return out, nil
}

// UnpackIcon renders a packed icon as a gray image, lit pixels white.
func UnpackIcon(data []byte) (*image.Gray, error) {
	if len(data) < IconSize {
		return nil, fmt.Errorf("convert: icon needs %d bytes, got %d", IconSize, len(data))
	}
	img := image.NewGray(image.Rect(0, 0, IconWidth, IconHeight))
	for py := 0; py < IconHeight; py++ {
		for px := 0; px < IconWidth; px++ {
			if data[py*IconByteStride+(px>>3)]&(1<<(px&7)) != 0 {
				img.Pix[py*img.Stride+px] = 0xFF
			}
		}
	}
	return img, nil
}

type ink int

const (
	inkBackground ink = iota
	inkLit
)

// classifyPixel decides whether a pixel is lit.
//
//   - Transparent or half transparent (alpha < 128) → background
//   - Luma Y = 0.299R + 0.587G + 0.114B; Y >= 128 → lit
func classifyPixel(c color.NRGBA) ink {
	if c.A < 128 {
		return inkBackground
	}
	y := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if y >= 128 {
		return inkLit
	}
	return inkBackground
}
