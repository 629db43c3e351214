package tft

// sketchIconExt is the file extension of sketch icons on the volume.
const sketchIconExt = "SKI"

// iconLoad is the outcome of reading the sketch icon. When loaded is false
// the fallback drawing is used instead.
type iconLoad struct {
	loaded bool
	bitmap []byte
}

// WriteFrame updates the status screen for a transfer described by flags.
//
// The first call programs the controller and clears the screen. An empty
// iconFile wipes the progress and icon areas, which is what is wanted before
// handing the screen over; the driver then stays uninitialized so the next
// frame starts from a fresh panel setup. A named iconFile draws the frame
// box, the status icons and the sketch icon, falling back to a plain square
// when the icon cannot be read.
//
// Repeated calls with the same active flags advance the marquee.
func (d *Dev) WriteFrame(flags Flags, iconFile string) error {
	if d.halted {
		return ErrHalted
	}

	if d.state == Uninitialized {
		if err := d.initPanel(); err != nil {
			return err
		}
		if iconFile == "" {
			return nil
		}
		if err := d.WriteRect(ProgX, ProgY, ProgW+ProgStep, ProgH, d.palette.Frame); err != nil {
			return err
		}
		flags |= ForceDraw
		d.state = Initialized
	}

	if flags != Idle {
		if err := d.updateTransfer(flags); err != nil {
			return err
		}
	}

	fallback := false
	if d.iconEnabled && flags.Has(ForceDraw) {
		icon := d.loadIcon(iconFile)
		if icon.loaded {
			copy(d.iconBuf[:], icon.bitmap)
			if err := d.DrawIcon(IconX, IconVolume); err != nil {
				return err
			}
		} else {
			fallback = true
		}
	}

	if iconFile != "" && !fallback {
		return nil
	}

	if !fallback {
		// Start at the top-left pixel and stream whole rows up to the
		// bottom-right pixel of the bar box.
		if err := d.WriteLine(ProgX, ProgY, Width*ProgH-ProgLeft-ProgRight, ModeHorizontal, Black); err != nil {
			return err
		}
	}

	if err := d.WriteLine(IconX, IconY, Width*IconH-IconLeft-IconRight, ModeHorizontal, Black); err != nil {
		return err
	}
	if iconFile != "" {
		return d.WriteRect(IconX, IconY, IconW, IconH, d.palette.Icon)
	}
	return nil
}

// initPanel waits for the controller to come out of reset, writes the
// register table and clears the screen.
func (d *Dev) initPanel() error {
	d.delayMs(32)
	for _, r := range initSequence {
		if err := d.WriteRegister(r.cmd, r.arg); err != nil {
			return err
		}
	}
	return d.WriteLine(0, 0, Pixels, ModeHorizontal, Black)
}

// updateTransfer redraws the status icons when the transfer changed and
// advances the marquee otherwise.
func (d *Dev) updateTransfer(flags Flags) error {
	var target uint8
	if !d.flagsValid || d.flags != flags {
		d.flags = flags
		d.flagsValid = true

		if err := d.DrawIcon(StatusXA, flags.Source()); err != nil {
			return err
		}
		if err := d.DrawIcon(StatusXB, flags.Dest()); err != nil {
			return err
		}

		d.progress = 0
		d.progressColor = Black
		target = ProgressCount
	} else {
		marquee := d.marqueeColor()
		if d.progress >= ProgressCount {
			d.progress = 0
			if d.progressColor != Black {
				d.progressColor = Black
			} else {
				d.progressColor = marquee
			}
		}
		target = d.progress + MarqueeBatch
	}
	return d.WriteProgress(target)
}

func (d *Dev) marqueeColor() Color {
	return d.palette.Marquee(d.flags)
}

// loadIcon reads the sketch icon named name from the volume. Any failure,
// including a missing name or volume, yields the fallback result.
func (d *Dev) loadIcon(name string) iconLoad {
	if name == "" || d.volume == nil {
		return iconLoad{}
	}
	if err := d.volume.Open(name, sketchIconExt); err != nil {
		return iconLoad{}
	}
	buf := make([]byte, BlockSize)
	if err := d.volume.ReadBlock(0, buf); err != nil {
		return iconLoad{}
	}
	return iconLoad{loaded: true, bitmap: buf}
}
