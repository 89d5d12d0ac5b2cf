package sequencer

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"go-beatbox/debug"
)

// NominalBPM is the tempo at factor 1.0
const NominalBPM = 120.0

// Tempo steps and default clamp range. Steps are multiplicative, so one
// step up followed by one step down lands on 0.9991, not 1.0.
const (
	TempoUpStep   = 1.03
	TempoDownStep = 0.97
	MinTempo      = 0.1
	MaxTempo      = 8.0
)

var errClosed = errors.New("playback is closed")

// State is the transport state of a Playback
type State int

const (
	Idle State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "PLAY"
	}
	return "STOP"
}

// Playback owns the sound device, the loaded sequence and the tempo.
type Playback struct {
	device Device

	mu       sync.Mutex
	state    State
	seq      *Sequence
	tempo    float64
	minTempo float64
	maxTempo float64
	closed   bool

	kit         Kit
	compileOpts []CompileOption
}

// PlaybackOption configures a Playback
type PlaybackOption func(*Playback)

// WithTempoRange sets the clamp range for the tempo factor. Invalid ranges
// are ignored.
func WithTempoRange(min, max float64) PlaybackOption {
	return func(p *Playback) {
		if min > 0 && max > min {
			p.minTempo, p.maxTempo = min, max
		}
	}
}

// WithInitialTempo sets the starting tempo factor
func WithInitialTempo(factor float64) PlaybackOption {
	return func(p *Playback) {
		if factor > 0 {
			p.tempo = factor
		}
	}
}

// WithKit sets the kit used by Dispatch to compile grids
func WithKit(kit Kit) PlaybackOption {
	return func(p *Playback) {
		p.kit = kit
	}
}

// WithCompileOptions sets the options used by Dispatch to compile grids
func WithCompileOptions(opts ...CompileOption) PlaybackOption {
	return func(p *Playback) {
		p.compileOpts = opts
	}
}

// NewPlayback acquires a device through open. If that fails the error is
// tagged DeviceUnavailable and no Playback is returned.
func NewPlayback(open Opener, opts ...PlaybackOption) (*Playback, error) {
	if open == nil {
		return nil, deviceUnavailable(nil, "no device opener")
	}
	dev, err := open()
	if err != nil {
		return nil, deviceUnavailable(err, "open sound device")
	}
	if dev == nil {
		return nil, deviceUnavailable(nil, "sound device opener returned nil")
	}

	p := &Playback{
		device:   dev,
		state:    Idle,
		tempo:    1.0,
		minTempo: MinTempo,
		maxTempo: MaxTempo,
		kit:      GetKit(DefaultKit),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tempo = p.clamp(p.tempo)
	dev.SetTempoBPM(p.bpmLocked())
	return p, nil
}

// Start loads seq on the device, loops it and starts playing. Calling it
// while playing re-arms the device with the new sequence.
func (p *Playback) Start(seq Sequence) error {
	if err := seq.validate(); err != nil {
		return err
	}
	loaded := seq.Clone()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errClosed
	}

	if err := p.device.SetSequence(&loaded); err != nil {
		return deviceFailure(err, "load sequence")
	}
	p.device.SetLoopContinuous()
	p.device.SetTempoBPM(p.bpmLocked())
	if err := p.device.Start(); err != nil {
		return deviceFailure(err, "start device")
	}
	p.seq = &loaded

	debug.Log("play", "start events=%d notes=%d (was %s)", len(loaded.Events), loaded.NoteOns(), p.state)
	p.state = Playing
	return nil
}

// Stop halts the device. The loaded sequence is kept.
func (p *Playback) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errClosed
	}
	if p.state == Idle {
		return nil
	}
	if err := p.device.Stop(); err != nil {
		return deviceFailure(err, "stop device")
	}
	p.state = Idle
	debug.Log("play", "stop")
	return nil
}

// IncreaseTempo multiplies the tempo factor by TempoUpStep
func (p *Playback) IncreaseTempo() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.setTempoLocked(p.tempo * TempoUpStep)
}

// DecreaseTempo multiplies the tempo factor by TempoDownStep
func (p *Playback) DecreaseTempo() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.setTempoLocked(p.tempo * TempoDownStep)
}

// SetTempo sets the tempo factor. Non-positive factors are rejected;
// positive ones outside the range are clamped.
func (p *Playback) SetTempo(factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return invalidArgument(fmt.Sprintf("tempo factor must be positive and finite, got %v", factor))
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setTempoLocked(factor)
	return nil
}

func (p *Playback) setTempoLocked(factor float64) float64 {
	p.tempo = p.clamp(factor)
	if !p.closed {
		p.device.SetTempoBPM(p.bpmLocked())
	}
	debug.Log("tempo", "factor %.4f (%.1f bpm) %s", p.tempo, p.bpmLocked(), p.state)
	return p.tempo
}

func (p *Playback) clamp(factor float64) float64 {
	return math.Min(math.Max(factor, p.minTempo), p.maxTempo)
}

func (p *Playback) bpmLocked() float64 {
	return NominalBPM * p.tempo
}

// Tempo returns the tempo factor
func (p *Playback) Tempo() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tempo
}

// BPM returns the effective tempo
func (p *Playback) BPM() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bpmLocked()
}

// TempoRange returns the clamp range
func (p *Playback) TempoRange() (min, max float64) {
	return p.minTempo, p.maxTempo
}

// State returns the transport state
func (p *Playback) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Playing reports whether the transport is playing
func (p *Playback) Playing() bool {
	return p.State() == Playing
}

// Sequence returns a copy of the loaded sequence, if any
func (p *Playback) Sequence() (Sequence, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seq == nil {
		return Sequence{}, false
	}
	return p.seq.Clone(), true
}

// Kit returns the kit used by Dispatch
func (p *Playback) Kit() Kit {
	return p.kit
}

// Close stops playback and releases the device
func (p *Playback) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.state = Idle
	return p.device.Close()
}
