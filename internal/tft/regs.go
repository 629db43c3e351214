package tft

// ILI932x register indices used by the driver.
const (
	regStartOsc       = 0x00
	regDrivOutCtrl    = 0x01
	regDrivWavCtrl    = 0x02
	regEntryMode      = 0x03
	regResizeCtrl     = 0x04
	regDispCtrl1      = 0x07
	regDispCtrl2      = 0x08
	regDispCtrl3      = 0x09
	regDispCtrl4      = 0x0A
	regRGBDispIfCtrl1 = 0x0C
	regFrmMarkerPos   = 0x0D
	regRGBDispIfCtrl2 = 0x0F
	regPowCtrl1       = 0x10
	regPowCtrl2       = 0x11
	regPowCtrl3       = 0x12
	regPowCtrl4       = 0x13
	regGRAMHorAddr    = 0x20
	regGRAMVerAddr    = 0x21
	regRWGRAM         = 0x22
	regPowCtrl7       = 0x29
	regGammaCtrl1     = 0x30
	regGammaCtrl2     = 0x31
	regGammaCtrl3     = 0x32
	regGammaCtrl4     = 0x35
	regGammaCtrl5     = 0x36
	regGammaCtrl6     = 0x37
	regGammaCtrl7     = 0x38
	regGammaCtrl8     = 0x39
	regGammaCtrl9     = 0x3C
	regGammaCtrl10    = 0x3D
	regHorStartAddr   = 0x50
	regHorEndAddr     = 0x51
	regVerStartAddr   = 0x52
	regVerEndAddr     = 0x53
	regGateScanCtrl1  = 0x60
	regGateScanCtrl2  = 0x61
	regGateScanCtrl3  = 0x6A
	regPanelIfCtrl1   = 0x90
	regPanelIfCtrl2   = 0x92
	regPanelIfCtrl3   = 0x93
	regPanelIfCtrl4   = 0x95
	regPanelIfCtrl5   = 0x97
	regPanelIfCtrl6   = 0x98
)

// entryModeBGR is always set on top of the EntryMode direction bits.
const entryModeBGR = 0x1000

// regWrite is one command + 16-bit argument of the power-on sequence.
type regWrite struct {
	cmd byte
	arg uint16
}

// initSequence brings the controller out of reset into 16-bit RGB565 mode
// with the full 240x320 GRAM window. POW_CTRL1..4 are written twice: cleared
// first, then set to their operating values.
var initSequence = [...]regWrite{
	{regStartOsc, 0x0001},
	{regDrivOutCtrl, 0x0100},
	{regDrivWavCtrl, 0x0700},
	{regResizeCtrl, 0x0000},
	{regDispCtrl2, 0x0202},
	{regDispCtrl3, 0x0000},
	{regDispCtrl4, 0x0000},
	{regRGBDispIfCtrl1, 0x0000},
	{regFrmMarkerPos, 0x0000},
	{regRGBDispIfCtrl2, 0x0000},
	{regPowCtrl1, 0x0000},
	{regPowCtrl2, 0x0000},
	{regPowCtrl3, 0x0000},
	{regPowCtrl4, 0x0000},
	{regPowCtrl1, 0x17b0},
	{regPowCtrl2, 0x0037},
	{regPowCtrl3, 0x0138},
	{regPowCtrl4, 0x1700},
	{regPowCtrl7, 0x000d},
	{regGammaCtrl1, 0x0001},
	{regGammaCtrl2, 0x0606},
	{regGammaCtrl3, 0x0304},
	{regGammaCtrl4, 0x0103},
	{regGammaCtrl5, 0x011d},
	{regGammaCtrl6, 0x0404},
	{regGammaCtrl7, 0x0404},
	{regGammaCtrl8, 0x0404},
	{regGammaCtrl9, 0x0700},
	{regGammaCtrl10, 0x0a1f},
	{regHorStartAddr, 0x0000},
	{regHorEndAddr, 0x00ef},
	{regVerStartAddr, 0x0000},
	{regVerEndAddr, 0x013f},
	{regGateScanCtrl1, 0x2700},
	{regGateScanCtrl2, 0x0003},
	{regGateScanCtrl3, 0x0000},
	{regPanelIfCtrl1, 0x0010},
	{regPanelIfCtrl2, 0x0000},
	{regPanelIfCtrl3, 0x0003},
	{regPanelIfCtrl4, 0x0101},
	{regPanelIfCtrl5, 0x0000},
	{regPanelIfCtrl6, 0x0000},
	{regDispCtrl1, 0x0133},
}
