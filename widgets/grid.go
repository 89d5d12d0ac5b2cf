package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-beatbox/sequencer"
	"go-beatbox/theme"
)

// GridView is everything needed to draw the step grid
type GridView struct {
	Names      []string // row labels, instrument order
	Grid       sequencer.Grid
	CursorRow  int
	CursorStep int
	Playhead   int // -1 when stopped
}

// RenderGrid draws the 16x16 grid with row labels and a beat ruler
func RenderGrid(v GridView, th *theme.Theme) string {
	labelWidth := 0
	for _, n := range v.Names {
		labelWidth = max(labelWidth, lipgloss.Width(n))
	}

	label := lipgloss.NewStyle().Width(labelWidth + 1).Foreground(th.FG())
	muted := lipgloss.NewStyle().Foreground(th.Muted())
	active := lipgloss.NewStyle().Foreground(th.Active())
	cursor := lipgloss.NewStyle().Foreground(th.Cursor()).Bold(true)
	play := lipgloss.NewStyle().Foreground(th.Play())

	var lines []string
	lines = append(lines, strings.Repeat(" ", labelWidth+1)+muted.Render(ruler()))

	for row := 0; row < sequencer.Rows; row++ {
		name := ""
		if row < len(v.Names) {
			name = v.Names[row]
		}

		var line strings.Builder
		line.WriteString(label.Render(name))
		for step := 0; step < sequencer.Steps; step++ {
			on := v.Grid.Active(row, step)
			glyph, style := th.Symbols.StepEmpty, muted
			if on {
				glyph, style = th.Symbols.StepActive, active
			}
			if step == v.Playhead {
				glyph, style = th.Symbols.StepPlayhead, play
				if on {
					glyph = th.Symbols.StepHit
				}
			}
			if row == v.CursorRow && step == v.CursorStep {
				glyph, style = th.Symbols.CursorEmpty, cursor
				if on {
					glyph = th.Symbols.CursorActive
				}
			}
			line.WriteString(style.Render(string(glyph)))
			if step%4 == 3 && step != sequencer.Steps-1 {
				line.WriteString(" ")
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// ruler numbers the beats: 1 . . . 2 . . . 3 . . . 4 . . .
func ruler() string {
	var b strings.Builder
	for beat := 0; beat < sequencer.Steps/4; beat++ {
		if beat > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmt.Sprintf("%d...", beat+1))
	}
	return b.String()
}
