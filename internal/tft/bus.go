package tft

import (
	"fmt"
	"time"
)

func (d *Dev) outCtrl(v byte) error {
	if err := d.ctrl.Out(v); err != nil {
		return fmt.Errorf("tft: control port: %w", err)
	}
	d.bus = v
	return nil
}

func (d *Dev) outData(v byte) error {
	if err := d.data.Out(v); err != nil {
		return fmt.Errorf("tft: data port: %w", err)
	}
	return nil
}

// strobe waits out the minimal WR pulse width.
func (d *Dev) strobe() {
	if d.strobeDelay <= 0 {
		return
	}
	for start := time.Now(); time.Since(start) < d.strobeDelay; {
	}
}

// WriteBytes puts v on the data bus and toggles the write strobe halfCycles
// times. Two half cycles latch one byte; four latch one RGB565 pixel.
func (d *Dev) WriteBytes(v byte, halfCycles uint32) error {
	if d.halted {
		return ErrHalted
	}
	if err := d.outData(v); err != nil {
		return err
	}
	for ; halfCycles > 0; halfCycles-- {
		if err := d.outCtrl(d.bus ^ d.masks.WR); err != nil {
			return err
		}
		d.strobe()
	}
	return nil
}

// WriteData streams p on the data bus, one write strobe per byte.
func (d *Dev) WriteData(p []byte) error {
	for _, b := range p {
		if err := d.WriteBytes(b, 2); err != nil {
			return err
		}
	}
	return nil
}

// WriteCommand selects the controller register cmd. Commands are 16 bits
// wide on an 8-bit bus, so a zero high byte is latched first. The bus is
// left in data-write mode.
func (d *Dev) WriteCommand(cmd byte) error {
	if d.halted {
		return ErrHalted
	}
	idle := d.masks.idle()
	writeA := idle &^ d.masks.WR &^ d.masks.RS
	writeB := idle &^ d.masks.RS

	if err := d.outCtrl(writeA); err != nil {
		return err
	}
	if err := d.outData(0); err != nil {
		return err
	}
	if err := d.outCtrl(writeB); err != nil {
		return err
	}
	if err := d.outCtrl(writeA); err != nil {
		return err
	}
	if err := d.outData(cmd); err != nil {
		return err
	}
	if err := d.outCtrl(writeB); err != nil {
		return err
	}
	return d.outCtrl(idle)
}

// WriteRegister writes the 16-bit arg to register cmd, high byte first.
func (d *Dev) WriteRegister(cmd byte, arg uint16) error {
	if err := d.WriteCommand(cmd); err != nil {
		return err
	}
	return d.WriteData([]byte{byte(arg >> 8), byte(arg)})
}
