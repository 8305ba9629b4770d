// Package wave records line levels of a bench and renders them
// as a waveform.
package wave

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/robotalks/uart.go/pkg/sim"
)

// Transition is a change on any of the lines.
type Transition struct {
	Cycle    uint64 `json:"cycle"`
	HostTX   bool   `json:"host"`
	DeviceTX bool   `json:"device"`
}

// Recorder keeps the most recent transitions of both lines.
// It implements sim.Probe.
type Recorder struct {
	Depth int
	Scale int

	transitions []Transition
	last        uint64
	ticks       uint64
}

// Glyphs for line levels.
const (
	GlyphHigh = '‾'
	GlyphLow  = '_'
)

var (
	hostColor   = color.New(color.FgGreen)
	deviceColor = color.New(color.FgCyan)
	lowColor    = color.New(color.FgYellow, color.Bold)
)

// NewRecorder creates a Recorder.
func NewRecorder(depth int) *Recorder {
	if depth < 1 {
		depth = 1
	}
	return &Recorder{Depth: depth, Scale: 1}
}

// Attach installs the recorder as the probe of a bench.
func (r *Recorder) Attach(b *sim.Bench) *Recorder {
	b.Probe = r
	return r
}

// Sample implements sim.Probe.
func (r *Recorder) Sample(s sim.Sample) {
	if s.Tick {
		r.ticks++
	}
	if s.Cycle < r.last {
		// cycles never go backwards on a bench, start over
		r.transitions = nil
	}
	r.last = s.Cycle
	if n := len(r.transitions); n > 0 {
		prev := r.transitions[n-1]
		if prev.HostTX == s.HostTX && prev.DeviceTX == s.DeviceTX {
			return
		}
	}
	r.transitions = append(r.transitions, Transition{
		Cycle:    s.Cycle,
		HostTX:   s.HostTX,
		DeviceTX: s.DeviceTX,
	})
	if over := len(r.transitions) - r.Depth; over > 0 {
		r.transitions = append(r.transitions[:0], r.transitions[over:]...)
	}
}

// Transitions returns a copy of recorded transitions.
func (r *Recorder) Transitions() []Transition {
	out := make([]Transition, len(r.transitions))
	copy(out, r.transitions)
	return out
}

// LastCycle is the cycle of the latest sample.
func (r *Recorder) LastCycle() uint64 {
	return r.last
}

// Ticks is the number of bit-ticks seen.
func (r *Recorder) Ticks() uint64 {
	return r.ticks
}

// Clear drops all recorded transitions.
func (r *Recorder) Clear() {
	r.transitions, r.ticks = nil, 0
}

// at finds the transition in effect at cycle, which must not
// be earlier than the first transition.
func (r *Recorder) at(cycle uint64) Transition {
	n := sort.Search(len(r.transitions), func(i int) bool {
		return r.transitions[i].Cycle > cycle
	})
	if n == 0 {
		return r.transitions[0]
	}
	return r.transitions[n-1]
}

// Levels returns width columns of both lines ending at the last cycle.
// Each column is sampled at its last cycle.
func (r *Recorder) Levels(width int) (host, device []rune) {
	scale := uint64(r.columnScale())
	if width < 1 || len(r.transitions) == 0 {
		return
	}
	first := r.transitions[0].Cycle
	span := (r.last - first + 1 + scale - 1) / scale
	if uint64(width) > span {
		width = int(span)
	}
	host, device = make([]rune, width), make([]rune, width)
	for col := 0; col < width; col++ {
		cycle := r.last - uint64(width-1-col)*scale
		t := r.at(cycle)
		host[col], device[col] = glyph(t.HostTX), glyph(t.DeviceTX)
	}
	return
}

func glyph(level bool) rune {
	if level {
		return GlyphHigh
	}
	return GlyphLow
}

// Render draws the waveform of the last width columns.
func (r *Recorder) Render(w io.Writer, width int) error {
	host, device := r.Levels(width)
	if len(host) == 0 {
		_, err := fmt.Fprintln(w, "(no samples)")
		return err
	}
	if _, err := fmt.Fprintf(w, "cycle %d, %d cycles/column\n", r.last, r.columnScale()); err != nil {
		return err
	}
	if err := renderLine(w, "host  ", hostColor, host); err != nil {
		return err
	}
	return renderLine(w, "device", deviceColor, device)
}

func (r *Recorder) columnScale() int {
	if r.Scale < 1 {
		return 1
	}
	return r.Scale
}

func renderLine(w io.Writer, label string, c *color.Color, levels []rune) error {
	if _, err := c.Fprint(w, label+" "); err != nil {
		return err
	}
	// runs of low level are highlighted
	var run strings.Builder
	low := false
	flush := func() error {
		if run.Len() == 0 {
			return nil
		}
		var err error
		if low {
			_, err = lowColor.Fprint(w, run.String())
		} else {
			_, err = c.Fprint(w, run.String())
		}
		run.Reset()
		return err
	}
	for _, g := range levels {
		if isLow := g == GlyphLow; isLow != low {
			if err := flush(); err != nil {
				return err
			}
			low = isLow
		}
		run.WriteRune(g)
	}
	if err := flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// MarshalJSON exports recorded transitions.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		LastCycle   uint64       `json:"last_cycle"`
		Transitions []Transition `json:"transitions"`
	}{
		LastCycle:   r.last,
		Transitions: r.Transitions(),
	})
}

// JSON exports recorded transitions as JSON.
func (r *Recorder) JSON() ([]byte, error) {
	return r.MarshalJSON()
}
