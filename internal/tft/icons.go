package tft

// IconIndex selects the bitmap drawn by DrawIcon.
type IconIndex uint8

const (
	IconComputer IconIndex = iota
	IconChipROM
	IconSD
	IconVolume // sketch icon loaded from the volume
	IconNone   // blank status-icon sized rectangle
)

// Flags describe the current transfer: the source icon in the high nibble,
// the destination icon in the low nibble, plus the invert and force-draw bits.
type Flags uint8

const (
	iconDataMask  = 0x07
	iconDataShift = 4

	FromComputer = Flags(IconComputer) << iconDataShift
	FromChipROM  = Flags(IconChipROM) << iconDataShift
	FromSD       = Flags(IconSD) << iconDataShift
	FromNone     = Flags(IconNone) << iconDataShift

	ToComputer = Flags(IconComputer)
	ToChipROM  = Flags(IconChipROM)
	ToSD       = Flags(IconSD)
	ToNone     = Flags(IconNone)

	// ProgressInvert makes the bar grow right to left.
	ProgressInvert Flags = 0x08
	// ForceDraw requests the sketch icon to be (re)drawn.
	ForceDraw Flags = 0x80

	// Idle means no transfer is running; the bar is left alone.
	Idle = FromNone | ToNone
)

// Source returns the icon shown on the left of the bar.
func (f Flags) Source() IconIndex {
	return IconIndex(f>>iconDataShift) & iconDataMask
}

// Dest returns the icon shown on the right of the bar.
func (f Flags) Dest() IconIndex {
	return IconIndex(f) & iconDataMask
}

// Has reports whether all bits of mask are set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Any reports whether some bit of mask is set.
func (f Flags) Any(mask Flags) bool {
	return f&mask != 0
}

// 32x24 1-bit headerless icons for the computer, chip ROM and SD card, LSB
// first, 4 bytes per row.
var statusIcons = [3][StatusIconW * StatusIconH / 8]byte{{
	0x00, 0x00, 0x80, 0x3F, 0xFC, 0xFF, 0xC7, 0x7F,
	0xFE, 0xFF, 0xCF, 0x60, 0x06, 0x00, 0xCC, 0x60,
	0x06, 0x00, 0xCC, 0x7F, 0x06, 0x00, 0xCC, 0x60,
	0x06, 0x00, 0xCC, 0x60, 0x06, 0x00, 0xCC, 0x7F,
	0x06, 0x00, 0xCC, 0x7F, 0x06, 0x00, 0xCC, 0x7F,
	0x06, 0x00, 0xCC, 0x7B, 0x06, 0x00, 0xCC, 0x7F,
	0xFE, 0xFF, 0xCF, 0x7F, 0xFC, 0xFF, 0xC7, 0x7B,
	0x00, 0x0E, 0xC0, 0x7F, 0x00, 0x0E, 0xC0, 0x7F,
	0xE0, 0xFF, 0x80, 0x3F, 0x00, 0x00, 0x00, 0x00,
	0x76, 0x77, 0x75, 0x3B, 0x52, 0x57, 0x25, 0x29,
	0x52, 0x75, 0x25, 0x3B, 0x52, 0x15, 0x25, 0x19,
	0x76, 0x15, 0x27, 0x2B, 0x00, 0x00, 0x00, 0x00,
}, {
	0x00, 0x00, 0x00, 0x00, 0x50, 0x55, 0x55, 0x05,
	0x00, 0x00, 0x00, 0x00, 0xF0, 0xFF, 0xFF, 0x07,
	0x18, 0x00, 0x00, 0x0C, 0xCD, 0xFF, 0xFF, 0x59,
	0xE4, 0xFF, 0xFF, 0x13, 0xF5, 0xFF, 0xFF, 0x57,
	0xF4, 0xFF, 0xFF, 0x17, 0x15, 0x9D, 0x63, 0x57,
	0xD4, 0x6D, 0x5D, 0x17, 0xD5, 0x6D, 0x73, 0x54,
	0x94, 0x0D, 0x6F, 0x15, 0xD5, 0x6D, 0x5D, 0x55,
	0xD4, 0x69, 0x63, 0x15, 0xF5, 0xFF, 0xFF, 0x57,
	0x14, 0x00, 0x00, 0x14, 0xF5, 0xFF, 0xFF, 0x57,
	0xE4, 0xFF, 0xFF, 0x13, 0xCD, 0xFF, 0xFF, 0x59,
	0x18, 0x00, 0x00, 0x0C, 0xF0, 0xFF, 0xFF, 0x07,
	0x00, 0x00, 0x00, 0x00, 0x50, 0x55, 0x55, 0x05,
}, {
	0xFC, 0xFF, 0xFF, 0x3F, 0x06, 0x00, 0x00, 0x60,
	0xF3, 0xFF, 0xFF, 0xCF, 0x99, 0x59, 0x44, 0x98,
	0x0D, 0x70, 0x77, 0xBB, 0x0D, 0x50, 0x77, 0xBB,
	0x4D, 0x52, 0x77, 0xBB, 0x4D, 0x52, 0x77, 0xBB,
	0x4D, 0x52, 0x74, 0xB8, 0x4D, 0xF2, 0xFF, 0xBF,
	0x4D, 0xF2, 0x18, 0xBC, 0x4D, 0x72, 0x18, 0xB8,
	0x4D, 0x32, 0xFF, 0xB8, 0xFD, 0x7F, 0xF8, 0xB9,
	0xFD, 0xFF, 0xF3, 0xB8, 0xFD, 0x3F, 0x10, 0x9C,
	0xFD, 0x3F, 0x18, 0xDE, 0xFD, 0xFF, 0xFF, 0x4F,
	0xFD, 0xFF, 0x3F, 0x60, 0xFD, 0x0F, 0x9C, 0x3F,
	0xF9, 0xE7, 0xCD, 0x00, 0xF3, 0x33, 0x61, 0x00,
	0x06, 0x18, 0x3F, 0x00, 0xFC, 0x0F, 0x1C, 0x00,
}}
