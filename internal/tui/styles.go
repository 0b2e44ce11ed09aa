package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/waabox/auditdeck/internal/audit"
	"github.com/waabox/auditdeck/internal/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

const separator = "────────────────────────────────────────────────────────────\n"

// scoreStyle colours a trust score by band.
func scoreStyle(score int) lipgloss.Style {
	switch audit.BandOf(score) {
	case audit.ScoreRangeHigh:
		return highStyle
	case audit.ScoreRangeMedium:
		return mediumStyle
	default:
		return lowStyle
	}
}

func severityStyle(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityCritical, domain.SeverityHigh:
		return lowStyle
	case domain.SeverityMedium:
		return mediumStyle
	default:
		return mutedStyle
	}
}
