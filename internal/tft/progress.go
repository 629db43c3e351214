package tft

// WriteProgress grows the bar to target segments in the current bar color.
// A target below the drawn count starts a new cycle from zero; targets past
// the end fill the bar.
func (d *Dev) WriteProgress(target uint8) error {
	if d.halted {
		return ErrHalted
	}
	if target > ProgressCount {
		target = ProgressCount
	}
	if target < d.progress {
		d.progress = 0
	}

	for d.progress < target {
		d.progress++
		if err := d.WriteLine(ProgX+barX(d.progress, d.flags.Has(ProgressInvert)), ProgY+2, ProgH-4, ModeVertical, d.progressColor); err != nil {
			return err
		}
	}
	return nil
}

// WriteTransferProgress sets the bar color and shows current out of total
// bytes. The bar fills only once current reaches total+ProgressCount and
// stays full past that.
func (d *Dev) WriteTransferProgress(current, total uint32, c Color) error {
	d.progressColor = c
	return d.WriteProgress(transferTarget(current, total))
}

func transferTarget(current, total uint32) uint8 {
	v := uint64(ProgressCount) * uint64(current) / (uint64(total) + ProgressCount)
	return uint8(min(v, ProgressCount))
}

// barX is the offset of segment n from ProgX.
func barX(n uint8, inverted bool) int {
	if inverted {
		return ProgW + 1 - int(n)*ProgStep
	}
	return int(n) * ProgStep
}
