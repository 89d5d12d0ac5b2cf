package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-beatbox/config"
	"go-beatbox/debug"
	"go-beatbox/midi"
	"go-beatbox/pattern"
	"go-beatbox/sequencer"
	"go-beatbox/theme"
	"go-beatbox/tui"
)

func main() {
	port := flag.String("port", "", "MIDI output port (substring match, overrides config)")
	name := flag.String("pattern", "", "pattern to open from the patterns directory")
	debugFlag := flag.Bool("debug", false, "log to ~/.config/go-beatbox/debug.log")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Output.PortName = *port
	}
	if *name == "" {
		*name = cfg.UI.LastPattern
	}

	if cfg.Debug || *debugFlag {
		if err := debug.Enable(); err != nil {
			fmt.Printf("Warning: debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	dir, err := pattern.Dir()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var grid sequencer.Grid
	if *name != "" {
		if f, err := pattern.Load(pattern.PathFor(dir, *name)); err == nil {
			if g, err := f.Grid(); err == nil {
				grid = g
			}
			if _, ok := sequencer.Kits[f.Kit]; ok {
				cfg.Kit = f.Kit
			}
			if f.Tempo > 0 {
				cfg.Playback.Tempo = f.Tempo
			}
		} else if !os.IsNotExist(err) {
			fmt.Printf("Warning: %v\n", err)
		}
	}

	playback, err := sequencer.NewPlayback(sequencer.PortOpener(cfg.Output.PortName), cfg.PlaybackOptions()...)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		if names, perr := midi.OutPorts(); perr == nil && len(names) > 0 {
			fmt.Println("Available output ports:")
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
		}
		midi.Close()
		os.Exit(1)
	}
	debug.Log("play", "opened playback kit=%s tempo=%.3f", cfg.Kit, playback.Tempo())

	th := theme.New(theme.LoadOrDefault(cfg.UI.Palette))
	m := tui.NewModel(playback, th, tui.Options{
		Grid:        grid,
		KitName:     cfg.Kit,
		PatternDir:  dir,
		PatternName: *name,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, runErr := p.Run()

	cfg.Playback.Tempo = playback.Tempo()
	if *name != "" {
		cfg.UI.LastPattern = *name
	}
	if err := cfg.Save(); err != nil {
		debug.Log("config", "save: %v", err)
	}
	playback.Close()
	midi.Close()

	if runErr != nil {
		fmt.Printf("Error: %v\n", runErr)
		os.Exit(1)
	}
}
