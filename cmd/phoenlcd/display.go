package main

import (
	"errors"
	"fmt"
	"image/png"
	"os"

	"phoenlcd/internal/config"
	"phoenlcd/internal/convert"
	"phoenlcd/internal/gpioport"
	"phoenlcd/internal/sim"
	"phoenlcd/internal/tft"
	"phoenlcd/internal/volume"
)

// display is the driver plus, in simulator mode, the panel model behind it.
type display struct {
	dev     *tft.Dev
	panel   *sim.Panel
	palette tft.Palette
}

func driverOpts(conf *config.Config) *tft.Opts {
	m := conf.Bus.Masks
	c := conf.Display.Colors
	opts := &tft.Opts{
		Masks: tft.ControlMasks{
			CS:    m.CS,
			RS:    m.RS,
			WR:    m.WR,
			RD:    m.RD,
			Reset: m.Reset,
			Hold:  m.Hold,
		},
		StrobeDelay: conf.Bus.StrobeDelay,
		NoIcon:      !conf.Display.Icons,
		Palette: tft.Palette{
			Frame:  tft.Color(c.Frame),
			Icon:   tft.Color(c.Icon),
			NoProg: tft.Color(c.NoProg),
			PCSD:   tft.Color(c.PCSD),
			PCROM:  tft.Color(c.PCROM),
		},
	}
	if conf.Display.IconDir != "" {
		opts.Volume = volume.NewDir(conf.Display.IconDir)
	}
	return opts
}

// openDisplay builds the ports from GPIO, or from a simulated panel when
// simulate is set, and resets the controller.
func openDisplay(conf *config.Config, simulate bool) (*display, error) {
	opts := driverOpts(conf)

	if simulate {
		m := conf.Bus.Masks
		panel := sim.New(sim.Lines{CS: m.CS, RS: m.RS, WR: m.WR, RD: m.RD, Reset: m.Reset})
		dev, err := tft.New(panel.Data(), panel.Control(), opts)
		if err != nil {
			return nil, err
		}
		return &display{dev: dev, panel: panel, palette: opts.Palette}, nil
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if err := gpioport.Init(); err != nil {
		return nil, err
	}
	data, err := gpioport.ByName(conf.Bus.Data)
	if err != nil {
		return nil, fmt.Errorf("data port: %w", err)
	}
	ctrl, err := gpioport.ByName(conf.Bus.Control)
	if err != nil {
		return nil, fmt.Errorf("control port: %w", err)
	}
	if conf.Bus.Backlight != "" {
		bl, err := gpioport.Pin(conf.Bus.Backlight)
		if err != nil {
			return nil, fmt.Errorf("backlight: %w", err)
		}
		opts.Backlight = bl
	}

	dev, err := tft.New(data, ctrl, opts)
	if err != nil {
		return nil, err
	}
	return &display{dev: dev, palette: opts.Palette}, nil
}

// dump writes the simulated panel as PNG.
func (d *display) dump(path string) error {
	if d.panel == nil {
		return errors.New("dump needs -sim")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.panel.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// packIcon converts the PNG at in into a sketch icon file at out.
func packIcon(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}
	data, err := convert.PackIcon(img)
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
