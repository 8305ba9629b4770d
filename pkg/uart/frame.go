package uart

// FrameBits is the number of bits in a frame.
const FrameBits = 10

// Frame returns the line levels of a frame carrying b.
func Frame(b byte) (bits [FrameBits]bool) {
	for i := 0; i < 8; i++ {
		bits[i+1] = (b>>uint(i))&1 != 0
	}
	bits[FrameBits-1] = true
	return
}

// LineDriver drives a sequence of frames onto a line, holding each bit
// for a full period. It is meant for feeding a receiver from outside.
type LineDriver struct {
	Period int

	bits  []bool
	count int
}

// NewLineDriver creates a LineDriver.
func NewLineDriver(period int) *LineDriver {
	if period < 1 {
		period = 1
	}
	return &LineDriver{Period: period}
}

// Queue appends frames of bytes.
func (d *LineDriver) Queue(data ...byte) *LineDriver {
	for _, b := range data {
		frame := Frame(b)
		d.bits = append(d.bits, frame[:]...)
	}
	return d
}

// QueueBits appends raw line levels, each held for one period.
func (d *LineDriver) QueueBits(bits ...bool) *LineDriver {
	d.bits = append(d.bits, bits...)
	return d
}

// Pending indicates bits are still to be driven.
func (d *LineDriver) Pending() bool {
	return len(d.bits) > 0
}

// Next returns the line level for the next cycle.
func (d *LineDriver) Next() bool {
	if len(d.bits) == 0 {
		return true
	}
	line := d.bits[0]
	if d.count++; d.count >= d.Period {
		d.bits, d.count = d.bits[1:], 0
	}
	return line
}
