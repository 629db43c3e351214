package tft

import "fmt"

// Screen geometry. The panel is mounted in landscape: the controller's
// 240x320 GRAM is addressed mirrored, see WriteLineRaw.
const (
	Width  = 320
	Height = 240
	Pixels = Width * Height
)

// Status screen layout.
const (
	StatusIconW = 32
	StatusIconH = 24
	StatusIconY = 160
	StatusXA    = 40  // source icon
	StatusXB    = 252 // destination icon

	IconW     = 64
	IconH     = 64
	IconX     = 128
	IconY     = 56
	IconLeft  = IconX
	IconRight = Width - IconX - IconW

	ProgX         = 80
	ProgY         = 162
	ProgW         = 160
	ProgH         = 20
	ProgStep      = 4
	ProgLeft      = ProgX
	ProgRight     = Width - ProgX - ProgW - ProgStep
	ProgressCount = ProgW / ProgStep
	MarqueeBatch  = 4
)

// pixelHalfCycles is the number of strobe toggles for one 16-bit pixel.
const pixelHalfCycles = 4

// EntryMode selects the GRAM address update direction after each pixel.
type EntryMode uint16

const (
	// ModeHorizontal advances along logical x, wrapping to the next row.
	ModeHorizontal EntryMode = 0x08
	// ModeVertical advances along logical y.
	ModeVertical EntryMode = 0x00
)

// WriteLineRaw moves the GRAM cursor to (x, y), sets the fill direction and
// toggles the write strobe halfCycles times with c on the bus. The logical
// coordinates are mirrored on both axes relative to the controller.
func (d *Dev) WriteLineRaw(x, y int, halfCycles uint32, mode EntryMode, c Color) error {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return fmt.Errorf("tft: point (%d,%d) out of bounds", x, y)
	}
	if err := d.WriteRegister(regGRAMVerAddr, uint16(Width-1-x)); err != nil {
		return err
	}
	if err := d.WriteRegister(regGRAMHorAddr, uint16(Height-1-y)); err != nil {
		return err
	}
	if err := d.WriteRegister(regEntryMode, entryModeBGR|uint16(mode)); err != nil {
		return err
	}
	if err := d.WriteCommand(regRWGRAM); err != nil {
		return err
	}
	return d.WriteBytes(byte(c), halfCycles)
}

// WriteLine draws length pixels of c starting at (x, y). A zero length only
// positions the cursor for a following WriteBytes stream.
func (d *Dev) WriteLine(x, y int, length uint32, mode EntryMode, c Color) error {
	return d.WriteLineRaw(x, y, length*pixelHalfCycles, mode, c)
}

// WriteRect fills a w x h rectangle, one horizontal line per row.
func (d *Dev) WriteRect(x, y, w, h int, c Color) error {
	for row := 0; row < h; row++ {
		if err := d.WriteLine(x, y+row, uint32(w), ModeHorizontal, c); err != nil {
			return err
		}
	}
	return nil
}

// DrawIcon draws icon idx with its left edge at x. Status icons and the
// blank IconNone go on the status row; IconVolume draws the sketch icon
// last loaded from the volume.
func (d *Dev) DrawIcon(x int, idx IconIndex) error {
	idx &= iconDataMask
	switch idx {
	case IconComputer, IconChipROM, IconSD:
		return d.drawBitmap(x, StatusIconY, StatusIconW, StatusIconH, statusIcons[idx][:])
	case IconVolume:
		return d.drawBitmap(x, IconY, IconW, IconH, d.iconBuf[:])
	default:
		return d.drawBitmap(x, StatusIconY, StatusIconW, StatusIconH, nil)
	}
}

// drawBitmap renders a 1bpp LSB-first bitmap. A nil bitmap draws background.
func (d *Dev) drawBitmap(x, y, w, h int, data []byte) error {
	var pix byte
	for dy := 0; dy < h; dy++ {
		if err := d.WriteLine(x, y+dy, 0, ModeHorizontal, Black); err != nil {
			return err
		}
		for dx := 0; dx < w; dx++ {
			if dx&7 == 0 && len(data) > 0 {
				pix = data[0]
				data = data[1:]
			}
			c := Black
			if pix&1 != 0 {
				c = d.palette.Icon
			}
			if err := d.WriteBytes(byte(c), pixelHalfCycles); err != nil {
				return err
			}
			pix >>= 1
		}
	}
	return nil
}
