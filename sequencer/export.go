package sequencer

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2/smf"
)

// smfFile builds a format 1 Standard MIDI File: a tempo track and one
// track holding a single pass of the loop.
func smfFile(seq Sequence, bpm float64) (*smf.SMF, error) {
	if err := seq.validate(); err != nil {
		return nil, err
	}
	if !(bpm > 0) {
		return nil, invalidArgument(fmt.Sprintf("export tempo must be positive, got %v", bpm))
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(seq.Resolution)

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(bpm))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		return nil, fmt.Errorf("add tempo track: %w", err)
	}

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName("beatbox"))
	last := 0
	for _, ev := range seq.Events {
		track.Add(uint32(ev.Tick-last), ev.Message())
		last = ev.Tick
	}
	track.Close(uint32(seq.Length - last))
	if err := sm.Add(track); err != nil {
		return nil, fmt.Errorf("add note track: %w", err)
	}
	return sm, nil
}

// WriteSMF writes seq as a Standard MIDI File at bpm
func WriteSMF(w io.Writer, seq Sequence, bpm float64) error {
	sm, err := smfFile(seq, bpm)
	if err != nil {
		return err
	}
	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("write midi file: %w", err)
	}
	return nil
}

// SaveSMF writes seq as a Standard MIDI File to path
func SaveSMF(path string, seq Sequence, bpm float64) error {
	sm, err := smfFile(seq, bpm)
	if err != nil {
		return err
	}
	if err := sm.WriteFile(path); err != nil {
		return fmt.Errorf("write midi file: %w", err)
	}
	return nil
}
