package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-beatbox/midi"
	"go-beatbox/pattern"
	"go-beatbox/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	defer midi.Close()

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "play":
		err = play(os.Args[2:])
	case "export":
		err = export(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		midi.Close()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                          - List MIDI output ports")
	fmt.Println("  play <pattern.yaml> [secs] [port] - Loop a pattern (default 8s, first port)")
	fmt.Println("  export <pattern.yaml> <out.mid>   - Write a pattern as a MIDI file")
}

func listPorts() error {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	names, err := midi.OutPorts()
	if err == midi.ErrScanTimeout {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return nil
	}
	if err != nil {
		return err
	}
	for i, n := range names {
		fmt.Printf("  %d: %s\n", i, n)
	}
	return nil
}

func loadPattern(path string) (*pattern.File, sequencer.Sequence, error) {
	f, err := pattern.Load(path)
	if err != nil {
		return nil, sequencer.Sequence{}, err
	}
	g, err := f.Grid()
	if err != nil {
		return nil, sequencer.Sequence{}, err
	}
	return f, sequencer.Compile(g, sequencer.GetKit(f.Kit)), nil
}

func play(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("play needs a pattern file")
	}
	f, seq, err := loadPattern(args[0])
	if err != nil {
		return err
	}

	secs := 8
	if len(args) > 1 {
		if secs, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("bad duration %q", args[1])
		}
	}
	port := ""
	if len(args) > 2 {
		port = args[2]
	}

	p, err := sequencer.NewPlayback(sequencer.PortOpener(port))
	if err != nil {
		return err
	}
	defer p.Close()
	if f.Tempo > 0 {
		if err := p.SetTempo(f.Tempo); err != nil {
			return err
		}
	}

	if err := p.Start(seq); err != nil {
		return err
	}
	fmt.Printf("Playing %s: %d hits at %.1f bpm for %ds (ctrl+c to stop)\n", f.Name, seq.NoteOns(), p.BPM(), secs)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	select {
	case <-sig:
	case <-time.After(time.Duration(secs) * time.Second):
	}
	return p.Stop()
}

func export(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("export needs a pattern file and an output path")
	}
	f, seq, err := loadPattern(args[0])
	if err != nil {
		return err
	}
	tempo := f.Tempo
	if tempo <= 0 {
		tempo = 1
	}
	if err := sequencer.SaveSMF(args[1], seq, sequencer.NominalBPM*tempo); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d hits)\n", args[1], seq.NoteOns())
	return nil
}
