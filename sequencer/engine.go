package sequencer

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"go-beatbox/debug"
	"go-beatbox/midi"
)

var (
	errEngineClosed = errors.New("engine is closed")
	errNoSequence   = errors.New("no sequence loaded")
)

// Engine is a software MIDI sequencer. It loops a Sequence on its own clock
// goroutine and writes each event to a MIDI sender at the event's time.
type Engine struct {
	send midi.Sender

	mu            sync.Mutex
	seq           *Sequence
	gen           uint64 // bumped on every sequence swap
	bpm           float64
	loop          bool
	running       bool
	closed        bool
	stopChan      chan struct{}
	interruptChan chan struct{} // wake the clock to recalculate
	done          chan struct{}

	// Playback cursor: next event is seq.Events[index] in loop pass `pass`
	pass  int
	index int

	// Clock anchor: absolute tick anchorTick happened at anchorTime
	anchorTick float64
	anchorTime time.Time

	sounding   map[uint16]bool // channel<<8 | key of notes left on
	sendErrors int
}

// NewEngine creates an engine writing to send
func NewEngine(send midi.Sender) *Engine {
	return &Engine{
		send:          send,
		bpm:           NominalBPM,
		interruptChan: make(chan struct{}, 1),
		sounding:      make(map[uint16]bool),
	}
}

// OpenEngine opens the named MIDI output port and returns an engine on it.
// An empty name picks the first port.
func OpenEngine(portName string) (*Engine, error) {
	send, name, err := midi.OpenOut(portName)
	if err != nil {
		return nil, deviceUnavailable(err, "open midi output")
	}
	debug.Log("engine", "opened output %q", name)
	return NewEngine(send), nil
}

// PortOpener returns an Opener for OpenEngine
func PortOpener(portName string) Opener {
	return func() (Device, error) {
		e, err := OpenEngine(portName)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
}

// SetSequence installs seq. While running, the loop restarts at tick 0.
func (e *Engine) SetSequence(seq *Sequence) error {
	if seq == nil {
		return errNoSequence
	}
	if err := seq.validate(); err != nil {
		return err
	}
	loaded := seq.Clone()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errEngineClosed
	}

	e.seq = &loaded
	e.gen++
	e.pass, e.index = 0, 0
	e.silenceLocked()
	if e.running {
		e.anchorTick = 0
		e.anchorTime = time.Now()
	}
	debug.Log("engine", "sequence gen=%d events=%d running=%v", e.gen, len(loaded.Events), e.running)

	e.interrupt()
	return nil
}

// SetLoopContinuous makes the sequence repeat until stopped
func (e *Engine) SetLoopContinuous() {
	e.mu.Lock()
	e.loop = true
	e.mu.Unlock()
	e.interrupt()
}

// SetTempoBPM changes the rate. The clock is re-anchored at the current
// position so the loop keeps its place.
func (e *Engine) SetTempoBPM(bpm float64) {
	if bpm <= 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		now := time.Now()
		e.anchorTick = e.tickAtLocked(now)
		e.anchorTime = now
	}
	e.bpm = bpm
	debug.Log("engine", "tempo %.2f bpm", bpm)

	e.interrupt()
}

// Start begins (or resumes) playback from the cursor
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.closed:
		return errEngineClosed
	case e.seq == nil:
		return errNoSequence
	case e.running:
		return nil
	}

	e.running = true
	e.anchorTick = float64(e.cursorTickLocked())
	e.anchorTime = time.Now()
	e.stopChan = make(chan struct{})
	e.done = make(chan struct{})

	go e.clockLoop(e.stopChan, e.done)
	return nil
}

// Stop halts playback immediately and silences sounding notes
func (e *Engine) Stop() error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = false
	close(e.stopChan)
	done := e.done
	e.mu.Unlock()

	<-done

	e.mu.Lock()
	e.silenceLocked()
	e.mu.Unlock()
	return nil
}

// Close stops playback; the engine cannot be used afterwards
func (e *Engine) Close() error {
	if err := e.Stop(); err != nil {
		return err
	}
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	return nil
}

// Running reports whether the clock is running
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// BPM returns the current rate
func (e *Engine) BPM() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bpm
}

// SendErrors returns how many messages the output rejected
func (e *Engine) SendErrors() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sendErrors
}

// interrupt signals the clock loop to recalculate
func (e *Engine) interrupt() {
	select {
	case e.interruptChan <- struct{}{}:
	default:
	}
}

// clockLoop waits for each event's time and dispatches it
func (e *Engine) clockLoop(stop <-chan struct{}, done chan<- struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)

	for {
		e.mu.Lock()
		ev, at, gen, ok := e.nextLocked()
		e.mu.Unlock()

		if !ok {
			// Nothing to play until the sequence or loop mode changes
			select {
			case <-stop:
				return
			case <-e.interruptChan:
				continue
			}
		}

		if wait := time.Until(at); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-stop:
				timer.Stop()
				return
			case <-e.interruptChan:
				timer.Stop()
				continue
			case <-timer.C:
			}
		}

		e.mu.Lock()
		if !e.running || e.gen != gen {
			e.mu.Unlock()
			continue
		}
		e.index++
		e.dispatchLocked(ev)
		e.mu.Unlock()
	}
}

// nextLocked returns the next event and when it is due
func (e *Engine) nextLocked() (midi.Event, time.Time, uint64, bool) {
	if e.seq == nil || len(e.seq.Events) == 0 {
		return midi.Event{}, time.Time{}, e.gen, false
	}
	if e.index >= len(e.seq.Events) {
		if !e.loop {
			return midi.Event{}, time.Time{}, e.gen, false
		}
		e.pass++
		e.index = 0
	}
	ev := e.seq.Events[e.index]
	abs := float64(e.pass*e.seq.Length + ev.Tick)
	at := e.anchorTime.Add(time.Duration((abs - e.anchorTick) * float64(tickDuration(e.bpm, e.seq.Resolution))))
	return ev, at, e.gen, true
}

// cursorTickLocked is the absolute tick the cursor resumes from. A cursor at
// the head of a pass resumes from the bar line, not from its first event.
func (e *Engine) cursorTickLocked() int {
	if e.seq == nil {
		return 0
	}
	if e.index == 0 {
		return e.pass * e.seq.Length
	}
	if e.index >= len(e.seq.Events) {
		return (e.pass + 1) * e.seq.Length
	}
	return e.pass*e.seq.Length + e.seq.Events[e.index].Tick
}

// tickAtLocked converts a wall time to an absolute tick position
func (e *Engine) tickAtLocked(t time.Time) float64 {
	if e.seq == nil {
		return e.anchorTick
	}
	elapsed := t.Sub(e.anchorTime)
	return e.anchorTick + float64(elapsed)/float64(tickDuration(e.bpm, e.seq.Resolution))
}

func (e *Engine) dispatchLocked(ev midi.Event) {
	if err := e.send(ev.Message()); err != nil {
		e.sendErrors++
		debug.Log("engine", "send %s failed: %v", ev, err)
		return
	}
	key := uint16(ev.Channel)<<8 | uint16(ev.Data1)
	switch ev.Kind {
	case midi.NoteOn:
		e.sounding[key] = true
	case midi.NoteOff:
		delete(e.sounding, key)
	}
	debug.LogEvery(64, "engine", "dispatch %s", ev)
}

// silenceLocked sends NoteOff for every note still sounding
func (e *Engine) silenceLocked() {
	for key := range e.sounding {
		off := midi.Event{Kind: midi.NoteOff, Channel: uint8(key >> 8), Data1: uint8(key), Data2: midi.DrumVelocity}
		if err := e.send(off.Message()); err != nil {
			debug.Log("engine", "silence %s failed: %v", off, err)
		}
		delete(e.sounding, key)
	}
}

// tickDuration is the wall time of one tick at bpm
func tickDuration(bpm float64, resolution int) time.Duration {
	return time.Duration(float64(time.Minute) / (bpm * float64(resolution)))
}
