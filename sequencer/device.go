package sequencer

// Device is the sound backend driven by a Playback. Commands are
// fire-and-forget: none of them waits for the device to reach a tick.
type Device interface {
	// SetSequence replaces the loaded sequence. Events of the previous
	// sequence must never be emitted after it returns.
	SetSequence(seq *Sequence) error
	SetLoopContinuous()
	// SetTempoBPM changes the playback rate without moving the loop position
	SetTempoBPM(bpm float64)
	Start() error
	Stop() error
	Close() error
}

// Opener acquires a Device
type Opener func() (Device, error)
