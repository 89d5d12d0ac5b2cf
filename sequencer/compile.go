package sequencer

import (
	"sort"

	"go-beatbox/midi"
)

// Sequence is one full loop of compiled events.
// Events are sorted by non-decreasing tick.
type Sequence struct {
	Resolution int // ticks per quarter note
	Length     int // loop length in ticks
	Events     []midi.Event
}

type compileOptions struct {
	rowMarkers bool
}

// CompileOption tunes the compiled event stream
type CompileOption func(*compileOptions)

// WithRowMarkers controls the per-row control event at the loop boundary.
// They are silent and only kept so the stream matches the classic BeatBox
// MIDI output; backends that don't care can turn them off.
func WithRowMarkers(on bool) CompileOption {
	return func(o *compileOptions) {
		o.rowMarkers = on
	}
}

// Compile turns a grid into a freshly built sequence. Each active cell
// becomes a NoteOn at its step and a NoteOff one tick later. A sentinel at
// the last step keeps the loop a full bar long even when the bar ends in
// silence.
func Compile(grid Grid, kit Kit, opts ...CompileOption) Sequence {
	o := compileOptions{rowMarkers: true}
	for _, opt := range opts {
		opt(&o)
	}

	n := 2*grid.Count() + 1
	if o.rowMarkers {
		n += Rows
	}
	events := make([]midi.Event, 0, n)

	for i := 0; i < Rows; i++ {
		voice := kit.Voice(i)
		for j := 0; j < Steps; j++ {
			if !grid[i][j] {
				continue
			}
			events = append(events, midi.NoteOnAt(voice, j), midi.NoteOffAt(voice, j+1))
		}
		if o.rowMarkers {
			events = append(events, midi.MarkerAt(Steps))
		}
	}
	events = append(events, midi.SentinelAt(Steps-1))

	// Stable: row order is kept inside a tick, so a row's NoteOff at t lands
	// before its own NoteOn at t.
	sort.SliceStable(events, func(a, b int) bool {
		return events[a].Tick < events[b].Tick
	})

	return Sequence{
		Resolution: Resolution,
		Length:     Steps,
		Events:     events,
	}
}

// CompileCells validates a dynamically sized cell matrix and compiles it
func CompileCells(cells [][]bool, kit Kit, opts ...CompileOption) (Sequence, error) {
	grid, err := NewGrid(cells)
	if err != nil {
		return Sequence{}, err
	}
	return Compile(grid, kit, opts...), nil
}

// NoteOns returns the number of NoteOn events
func (s Sequence) NoteOns() int {
	n := 0
	for _, e := range s.Events {
		if e.Kind == midi.NoteOn {
			n++
		}
	}
	return n
}

// Clone returns a deep copy that shares nothing with s
func (s Sequence) Clone() Sequence {
	c := s
	c.Events = append([]midi.Event(nil), s.Events...)
	return c
}

// Equal reports whether two sequences hold the same events in the same order
func (s Sequence) Equal(o Sequence) bool {
	if s.Resolution != o.Resolution || s.Length != o.Length || len(s.Events) != len(o.Events) {
		return false
	}
	for i := range s.Events {
		if s.Events[i] != o.Events[i] {
			return false
		}
	}
	return true
}

// validate checks what a Device needs to play the sequence
func (s Sequence) validate() error {
	switch {
	case s.Resolution <= 0:
		return invalidArgument("sequence resolution must be positive")
	case s.Length <= 0:
		return invalidArgument("sequence length must be positive")
	case len(s.Events) == 0:
		return invalidArgument("sequence has no events")
	}
	for _, e := range s.Events {
		if e.Tick < 0 || e.Tick > s.Length {
			return invalidArgument("sequence event outside the loop")
		}
	}
	return nil
}
