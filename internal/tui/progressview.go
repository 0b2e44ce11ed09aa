package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/auditdeck/internal/progress"
)

// ProgressModel renders a simulated audit run. It wraps an immutable
// progress.Simulator; scheduling ticks is left to the owning AppModel.
type ProgressModel struct {
	sim progress.Simulator
}

// NewProgressModel wraps a simulator.
func NewProgressModel(sim progress.Simulator) ProgressModel {
	return ProgressModel{sim: sim}
}

func (m ProgressModel) Start() ProgressModel {
	m.sim = m.sim.Start()
	return m
}

func (m ProgressModel) Tick() ProgressModel {
	m.sim, _ = m.sim.Tick()
	return m
}

func (m ProgressModel) Cancel() ProgressModel {
	m.sim = m.sim.Cancel()
	return m
}

func (m ProgressModel) Snapshot() progress.Snapshot {
	return m.sim.Snapshot()
}

// View renders the progress bar, the current stage and the stage dots.
func (m ProgressModel) View() string {
	snap := m.sim.Snapshot()
	stages := NewStageListModel(m.sim.Config().Stages, snap.StageIndex, snap.State == progress.StateComplete)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(" AI Auditors are inspecting your code...") + "\n")
	sb.WriteString(mutedStyle.Render(" This may take a few minutes") + "\n\n")
	sb.WriteString(fmt.Sprintf(" %s %3d%%\n", bar(snap.Percent, 40), snap.Percent))
	sb.WriteString(fmt.Sprintf(" %s %s\n\n", snap.Stage.Icon, snap.Stage.Label))
	sb.WriteString(" " + stages.Dots() + "\n\n")
	sb.WriteString(stages.View())
	if snap.State == progress.StateCancelled {
		sb.WriteString("\n" + noticeStyle.Render(fmt.Sprintf(" Cancelled at %d%%", snap.Percent)) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}
