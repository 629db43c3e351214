// Package tft drives an ILI932x-class TFT controller over an 8-bit parallel
// (8080 style) bus and renders the bootloader status screen on it: two
// status icons, a progress/marquee bar and a sketch icon read from a volume.
//
// The bus is made of two 8-bit output ports. The data port carries the
// pixel or command byte; the control port carries chip select, register
// select, write and read strobes, reset and an unrelated hold line that
// happens to share the port. Bytes are latched by toggling the write strobe.
//
// Nothing is buffered: every drawing call is written to the panel
// immediately. A Dev is not safe for concurrent use.
package tft

import (
	"errors"
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Port is an 8-bit wide output register. Bit i drives line i.
type Port interface {
	Out(v byte) error
}

// Volume is the storage the sketch icon is read from. Open selects a file;
// ReadBlock fills buf with block n of the last opened file.
type Volume interface {
	Open(name, ext string) error
	ReadBlock(n uint32, buf []byte) error
}

// BlockSize is the size of a volume block; one block holds the sketch icon.
const BlockSize = 512

// ControlMasks map the controller lines onto control port bits.
type ControlMasks struct {
	CS    byte // chip select, active low
	RS    byte // register select: low = command, high = data
	WR    byte // write strobe, latched on the rising edge
	RD    byte // read strobe, kept high
	Reset byte // active low
	Hold  byte // shares the port, kept high; optional
}

// DefaultMasks is used when Opts.Masks is the zero value.
var DefaultMasks = ControlMasks{
	CS:    0x01,
	RS:    0x02,
	WR:    0x04,
	RD:    0x08,
	Reset: 0x10,
	Hold:  0x20,
}

func (m ControlMasks) validate() error {
	required := []byte{m.CS, m.RS, m.WR, m.RD, m.Reset}
	var seen byte
	for _, b := range append(required, m.Hold) {
		if b&seen != 0 {
			return errors.New("tft: control masks overlap")
		}
		seen |= b
	}
	for _, b := range required {
		if b == 0 {
			return errors.New("tft: control mask is zero")
		}
	}
	return nil
}

// idle is the control port value between transactions: chip selected,
// register select on data, strobes released.
func (m ControlMasks) idle() byte {
	return m.RS | m.WR | m.RD | m.Reset | m.Hold
}

// State tells whether the controller registers have been programmed.
type State uint8

const (
	Uninitialized State = iota
	Initialized
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// ErrHalted is returned by drawing calls after Halt.
var ErrHalted = errors.New("tft: halted")

// Opts is the configuration of a Dev. All fields are optional.
type Opts struct {
	Masks ControlMasks // zero value: DefaultMasks

	// Backlight is driven high by New and low by Halt.
	Backlight gpio.PinOut

	// StrobeDelay is busy-waited after every write strobe toggle.
	StrobeDelay time.Duration

	// Volume holds sketch icons. Without one the fallback square is drawn.
	Volume Volume

	// NoIcon disables drawing of the sketch icon.
	NoIcon bool

	Palette Palette // zero value: DefaultPalette

	// Sleep replaces time.Sleep for the reset and power-on delays.
	Sleep func(time.Duration)
}

// Dev is a handle to the panel.
type Dev struct {
	data Port
	ctrl Port
	bus  byte // last value written to ctrl

	masks       ControlMasks
	backlight   gpio.PinOut
	strobeDelay time.Duration
	volume      Volume
	iconEnabled bool
	palette     Palette
	sleep       func(time.Duration)

	state         State
	flags         Flags
	flagsValid    bool
	progress      uint8
	progressColor Color
	iconBuf       [BlockSize]byte

	halted bool
}

// New configures the ports, switches the backlight on and pulses the reset
// line. The controller registers are programmed by the first WriteFrame.
func New(data, ctrl Port, opts *Opts) (*Dev, error) {
	if data == nil || ctrl == nil {
		return nil, errors.New("tft: data and control ports are required")
	}
	if opts == nil {
		opts = &Opts{}
	}

	masks := opts.Masks
	if masks == (ControlMasks{}) {
		masks = DefaultMasks
	}
	if err := masks.validate(); err != nil {
		return nil, err
	}
	palette := opts.Palette
	if palette == (Palette{}) {
		palette = DefaultPalette
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	d := &Dev{
		data:          data,
		ctrl:          ctrl,
		masks:         masks,
		backlight:     opts.Backlight,
		strobeDelay:   opts.StrobeDelay,
		volume:        opts.Volume,
		iconEnabled:   !opts.NoIcon,
		palette:       palette,
		sleep:         sleep,
		progress:      ProgressCount - MarqueeBatch,
		progressColor: Black,
	}

	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// init drives the port defaults and performs the hardware reset pulse.
func (d *Dev) init() error {
	if d.backlight != nil {
		if err := d.backlight.Out(gpio.High); err != nil {
			return fmt.Errorf("tft: backlight on: %w", err)
		}
	}

	if err := d.outCtrl(d.masks.idle()); err != nil {
		return err
	}
	if err := d.outData(0xFF); err != nil {
		return err
	}
	if err := d.outCtrl(d.masks.idle() &^ d.masks.Reset); err != nil {
		return err
	}
	d.delayMs(2)
	return d.outCtrl(d.masks.idle())
}

// Halt turns the display and backlight off. The Dev is unusable afterwards.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	err := d.WriteRegister(regDispCtrl1, 0x0000)
	d.halted = true
	if d.backlight != nil {
		if blErr := d.backlight.Out(gpio.Low); blErr != nil && err == nil {
			err = fmt.Errorf("tft: backlight off: %w", blErr)
		}
	}
	return err
}

// Bounds returns the logical screen rectangle.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// State reports whether the register table has been written.
func (d *Dev) State() State {
	return d.state
}

// Progress returns the number of drawn bar segments.
func (d *Dev) Progress() uint8 {
	return d.progress
}

// Flags returns the last active transfer flags and whether any were set.
func (d *Dev) Flags() (Flags, bool) {
	return d.flags, d.flagsValid
}

func (d *Dev) String() string {
	return fmt.Sprintf("tft.Dev{%dx%d, %s}", Width, Height, d.state)
}

func (d *Dev) delayMs(ms uint32) {
	d.sleep(time.Duration(ms) * time.Millisecond)
}
