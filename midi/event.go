package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Kind identifies what an Event does when dispatched
type Kind uint8

const (
	NoteOn Kind = iota
	NoteOff
	Control       // control change, used as a row marker
	ProgramChange // used as the loop sentinel
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	case Control:
		return "Control"
	case ProgramChange:
		return "ProgramChange"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Wire defaults for drum events
const (
	DrumChannel   uint8 = 9 // GM percussion (0-based)
	DrumVelocity  uint8 = 100
	MarkerChannel uint8 = 1
	MarkerCC      uint8 = 127
	SentinelProg  uint8 = 1
)

// Event is a timestamped MIDI instruction inside a sequence.
// Tick is measured in sequence resolution units (sixteenth notes).
type Event struct {
	Tick    int
	Kind    Kind
	Channel uint8
	Data1   uint8 // key, controller or program
	Data2   uint8 // velocity or controller value
}

// NoteOnAt returns a drum note on for voice at tick
func NoteOnAt(voice uint8, tick int) Event {
	return Event{Tick: tick, Kind: NoteOn, Channel: DrumChannel, Data1: voice, Data2: DrumVelocity}
}

// NoteOffAt returns the drum note off paired with NoteOnAt
func NoteOffAt(voice uint8, tick int) Event {
	return Event{Tick: tick, Kind: NoteOff, Channel: DrumChannel, Data1: voice, Data2: DrumVelocity}
}

// MarkerAt returns the row-completion control event
func MarkerAt(tick int) Event {
	return Event{Tick: tick, Kind: Control, Channel: MarkerChannel, Data1: MarkerCC}
}

// SentinelAt returns the loop-length sentinel event
func SentinelAt(tick int) Event {
	return Event{Tick: tick, Kind: ProgramChange, Channel: DrumChannel, Data1: SentinelProg}
}

// Voice returns the key of a note event
func (e Event) Voice() uint8 {
	return e.Data1
}

// IsNote reports whether the event is a NoteOn or NoteOff
func (e Event) IsNote() bool {
	return e.Kind == NoteOn || e.Kind == NoteOff
}

// Message converts the event to a MIDI wire message
func (e Event) Message() gomidi.Message {
	switch e.Kind {
	case NoteOn:
		return gomidi.NoteOn(e.Channel, e.Data1, e.Data2)
	case NoteOff:
		return gomidi.NoteOffVelocity(e.Channel, e.Data1, e.Data2)
	case Control:
		return gomidi.ControlChange(e.Channel, e.Data1, e.Data2)
	case ProgramChange:
		return gomidi.ProgramChange(e.Channel, e.Data1)
	}
	return nil
}

func (e Event) String() string {
	return fmt.Sprintf("%s(ch=%d d1=%d d2=%d @%d)", e.Kind, e.Channel, e.Data1, e.Data2, e.Tick)
}
