package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/auditdeck/internal/progress"
)

// StageListModel renders the ordered audit stages of a run, marking the
// ones already passed, the current one and those still pending.
type StageListModel struct {
	stages  []progress.Stage
	current int
	done    bool
}

// NewStageListModel creates a stage list positioned at the given stage index.
// done marks every stage as passed.
func NewStageListModel(stages []progress.Stage, current int, done bool) StageListModel {
	return StageListModel{stages: stages, current: current, done: done}
}

// Current returns the index of the active stage.
func (m StageListModel) Current() int {
	return m.current
}

// Dots renders one dot per stage, filled up to the current stage.
func (m StageListModel) Dots() string {
	dots := make([]string, len(m.stages))
	for i := range m.stages {
		if i <= m.current || m.done {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}
	return strings.Join(dots, " ")
}

// View renders the stage list as a string.
func (m StageListModel) View() string {
	if len(m.stages) == 0 {
		return "No stages.\n"
	}
	var sb strings.Builder
	for i, s := range m.stages {
		mark := "○"
		switch {
		case i < m.current || m.done:
			mark = "✓"
		case i == m.current:
			mark = s.Icon
		}
		line := fmt.Sprintf("  %s %s", mark, s.Label)
		if i > m.current && !m.done {
			line = mutedStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}
