package sequencer

import (
	"fmt"
	"reflect"
)

// Command is a transport action sent by a UI
type Command int

const (
	CmdStart Command = iota
	CmdStop
	CmdTempoUp
	CmdTempoDown
)

func (c Command) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdStop:
		return "stop"
	case CmdTempoUp:
		return "tempo-up"
	case CmdTempoDown:
		return "tempo-down"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Dispatch runs cmd. CmdStart compiles a snapshot of src with the
// playback's kit, so the grid is never read again after this call.
func (p *Playback) Dispatch(cmd Command, src GridSource) error {
	switch cmd {
	case CmdStart:
		if isNil(src) {
			return invalidArgument("start needs a grid source")
		}
		return p.Start(p.Compile(src.Snapshot()))
	case CmdStop:
		return p.Stop()
	case CmdTempoUp:
		p.IncreaseTempo()
		return nil
	case CmdTempoDown:
		p.DecreaseTempo()
		return nil
	}
	return invalidArgument(fmt.Sprintf("unknown command %d", int(cmd)))
}

// Compile compiles g with the playback's kit and compile options
func (p *Playback) Compile(g Grid) Sequence {
	return Compile(g, p.kit, p.compileOpts...)
}

// isNil also catches a nil pointer stored in the interface
func isNil(src GridSource) bool {
	if src == nil {
		return true
	}
	v := reflect.ValueOf(src)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
