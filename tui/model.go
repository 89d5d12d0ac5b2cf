package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-beatbox/debug"
	"go-beatbox/pattern"
	"go-beatbox/sequencer"
	"go-beatbox/theme"
	"go-beatbox/widgets"
)

// Playhead refresh rate
const uiFPS = 30

// Options seeds the model
type Options struct {
	Grid        sequencer.Grid
	KitName     string // key into sequencer.Kits, stored in saved patterns
	PatternDir  string
	PatternName string
}

type Model struct {
	Playback *sequencer.Playback
	Theme    *theme.Theme

	grid       sequencer.Grid
	names      []string
	cursorRow  int
	cursorStep int
	dirty      bool // grid edited since the last start

	// playhead estimate, display only
	position float64
	lastTick time.Time

	kitName     string
	patternDir  string
	patternName string

	keys     keyMap
	help     help.Model
	status   string
	err      error
	quitting bool
}

type tickMsg time.Time

// NewModel creates the grid editor over p
func NewModel(p *sequencer.Playback, th *theme.Theme, opts Options) Model {
	name := opts.PatternName
	if name == "" {
		name = "untitled"
	}
	return Model{
		Playback:    p,
		Theme:       th,
		grid:        opts.Grid,
		names:       p.Kit().Names(),
		kitName:     opts.KitName,
		patternDir:  opts.PatternDir,
		patternName: name,
		keys:        defaultKeys(),
		help:        help.New(),
	}
}

// Snapshot returns the grid being edited
func (m Model) Snapshot() sequencer.Grid {
	return m.grid
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/uiFPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tickMsg:
		now := time.Time(msg)
		if m.Playback.Playing() && !m.lastTick.IsZero() {
			stepDur := float64(time.Minute) / (m.Playback.BPM() * sequencer.Resolution)
			m.position += float64(now.Sub(m.lastTick)) / stepDur
		}
		m.lastTick = now
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if err := m.Playback.Stop(); err != nil {
			debug.Log("ui", "stop on quit: %v", err)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursorRow = (m.cursorRow + sequencer.Rows - 1) % sequencer.Rows
	case key.Matches(msg, m.keys.Down):
		m.cursorRow = (m.cursorRow + 1) % sequencer.Rows
	case key.Matches(msg, m.keys.Left):
		m.cursorStep = (m.cursorStep + sequencer.Steps - 1) % sequencer.Steps
	case key.Matches(msg, m.keys.Right):
		m.cursorStep = (m.cursorStep + 1) % sequencer.Steps

	case key.Matches(msg, m.keys.Toggle):
		m.grid.Toggle(m.cursorRow, m.cursorStep)
		m.markEdited()
	case key.Matches(msg, m.keys.Clear):
		m.grid.Clear()
		m.markEdited()

	case key.Matches(msg, m.keys.Start):
		m.run(sequencer.CmdStart)
		if m.err == nil {
			m.position = 0
			m.dirty = false
			m.status = fmt.Sprintf("playing %d hits", m.grid.Count())
		}
	case key.Matches(msg, m.keys.Stop):
		m.run(sequencer.CmdStop)
		if m.err == nil {
			m.status = "stopped"
		}
	case key.Matches(msg, m.keys.Faster):
		m.run(sequencer.CmdTempoUp)
	case key.Matches(msg, m.keys.Slower):
		m.run(sequencer.CmdTempoDown)

	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Export):
		m.export()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) run(cmd sequencer.Command) {
	if err := m.Playback.Dispatch(cmd, m); err != nil {
		m.err = err
		debug.Log("ui", "%s failed: %v", cmd, err)
	}
}

func (m *Model) markEdited() {
	if m.Playback.Playing() {
		m.dirty = true
		m.status = "pattern changed, enter to apply"
	}
}

func (m *Model) save() {
	if m.patternDir == "" {
		m.err = fmt.Errorf("no pattern directory")
		return
	}
	path := pattern.PathFor(m.patternDir, m.patternName)
	f := pattern.FromGrid(m.patternName, m.grid, m.kitName, m.Playback.Tempo())
	if err := f.Save(path); err != nil {
		m.err = err
		return
	}
	m.status = "saved " + path
}

func (m *Model) export() {
	if m.patternDir == "" {
		m.err = fmt.Errorf("no pattern directory")
		return
	}
	path := filepath.Join(m.patternDir, pattern.Sanitize(m.patternName)+".mid")
	seq := m.Playback.Compile(m.grid)
	if err := sequencer.SaveSMF(path, seq, m.Playback.BPM()); err != nil {
		m.err = err
		return
	}
	m.status = "exported " + path
}

// playhead returns the estimated step, -1 when stopped
func (m Model) playhead() int {
	if !m.Playback.Playing() {
		return -1
	}
	return int(m.position) % sequencer.Steps
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	errStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	state := m.Playback.State()
	header := headerStyle.Render(fmt.Sprintf("go-beatbox  %s  %5.1fbpm  x%.3f  %s",
		state, m.Playback.BPM(), m.Playback.Tempo(), m.patternName))

	grid := widgets.RenderGrid(widgets.GridView{
		Names:      m.names,
		Grid:       m.grid,
		CursorRow:  m.cursorRow,
		CursorStep: m.cursorStep,
		Playhead:   m.playhead(),
	}, m.Theme)

	status := dimStyle.Render(m.status)
	if m.err != nil {
		status = errStyle.Render("error: " + m.err.Error())
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(grid)
	out.WriteString("\n\n")
	out.WriteString(status)
	out.WriteString("\n")
	out.WriteString(m.help.View(m.keys))
	return out.String()
}
