// Package gpioport groups GPIO lines into the 8-bit ports the display
// driver writes to, using periph.io.
package gpioport

import (
	"errors"
	"fmt"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Width is the number of lines in a port.
const Width = 8

// Port drives up to eight pins as one byte: bit i goes to pin i. Nil pins
// are not connected. Only lines whose level changes are written.
type Port struct {
	pins  [Width]gpio.PinOut
	last  byte
	valid bool
}

// Init registers the periph.io host drivers. It must run before ByName.
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("gpioport: periph host init failed: %w", err)
	}
	return nil
}

// New builds a port from pins, least significant bit first.
func New(pins ...gpio.PinOut) (*Port, error) {
	if len(pins) > Width {
		return nil, fmt.Errorf("gpioport: %d pins do not fit a %d-bit port", len(pins), Width)
	}
	p := &Port{}
	copy(p.pins[:], pins)
	return p, nil
}

// ByName resolves pin names through gpioreg. An empty name leaves the bit
// unconnected.
func ByName(names []string) (*Port, error) {
	if len(names) > Width {
		return nil, fmt.Errorf("gpioport: %d pins do not fit a %d-bit port", len(names), Width)
	}
	pins := make([]gpio.PinOut, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		pin, err := Pin(name)
		if err != nil {
			return nil, err
		}
		pins[i] = pin
	}
	return New(pins...)
}

// Pin resolves a single pin by name.
func Pin(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, errors.New("gpioport: empty pin name")
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpioport: gpio %s not found", name)
	}
	return p, nil
}

// Out drives the port to v.
func (p *Port) Out(v byte) error {
	changed := v ^ p.last
	if !p.valid {
		changed = 0xFF
	}
	for i, pin := range p.pins {
		mask := byte(1) << i
		if pin == nil || changed&mask == 0 {
			continue
		}
		if err := pin.Out(gpio.Level(v&mask != 0)); err != nil {
			p.valid = false
			return fmt.Errorf("gpioport: gpio %s Out failed: %w", pin.Name(), err)
		}
	}
	p.last = v
	p.valid = true
	return nil
}

func (p *Port) String() string {
	names := make([]string, 0, Width)
	for _, pin := range p.pins {
		if pin == nil {
			names = append(names, "-")
			continue
		}
		names = append(names, pin.Name())
	}
	return "gpioport.Port{" + strings.Join(names, ",") + "}"
}
