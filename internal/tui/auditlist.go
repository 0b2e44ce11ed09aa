package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/auditdeck/internal/domain"
)

// AuditListModel is an immutable Bubbletea-compatible model for the dashboard audit list.
type AuditListModel struct {
	audits []domain.Audit
	cursor int
}

// NewAuditListModel creates an audit list model with the given audits.
func NewAuditListModel(audits []domain.Audit) AuditListModel {
	return AuditListModel{audits: audits, cursor: 0}
}

// MoveDown returns a new model with the cursor moved down by one.
func (m AuditListModel) MoveDown() AuditListModel {
	if m.cursor < len(m.audits)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m AuditListModel) MoveUp() AuditListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// SelectedIndex returns the current cursor position.
func (m AuditListModel) SelectedIndex() int {
	return m.cursor
}

// SelectedAudit returns the currently highlighted audit.
// Returns zero-value Audit if the list is empty.
func (m AuditListModel) SelectedAudit() domain.Audit {
	if len(m.audits) == 0 {
		return domain.Audit{}
	}
	return m.audits[m.cursor]
}

// Audits returns the listed audits.
func (m AuditListModel) Audits() []domain.Audit {
	return m.audits
}

// UpdateAudits replaces the list content, keeping the cursor on the
// previously selected audit when it is still present.
func (m AuditListModel) UpdateAudits(audits []domain.Audit) AuditListModel {
	selectedID := m.SelectedAudit().ID
	m.audits = audits
	m.cursor = 0
	for i, a := range audits {
		if a.ID == selectedID {
			m.cursor = i
			break
		}
	}
	return m
}

// View renders the audit list as a string.
func (m AuditListModel) View() string {
	if len(m.audits) == 0 {
		return "No audits found."
	}
	var sb strings.Builder
	for i, a := range m.audits {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		score := "--"
		if a.HasScore() {
			score = scoreStyle(a.Score).Render(fmt.Sprintf("%3d", a.Score))
		}
		sb.WriteString(fmt.Sprintf("%s%s %-28s %s  %s\n",
			prefix,
			statusIcon(a.Status),
			truncate(a.ProjectName, 28),
			score,
			formatDate(a),
		))
	}
	return sb.String()
}

func statusIcon(s domain.AuditStatus) string {
	switch s {
	case domain.AuditStatusCompleted:
		return "✓"
	case domain.AuditStatusFailed:
		return "✗"
	case domain.AuditStatusProcessing:
		return "●"
	default:
		return "?"
	}
}

func statusText(s domain.AuditStatus) string {
	switch s {
	case domain.AuditStatusCompleted:
		return "Completed"
	case domain.AuditStatusProcessing:
		return "Processing..."
	case domain.AuditStatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func formatDate(a domain.Audit) string {
	if a.Date.IsZero() {
		return "--"
	}
	return a.Date.Format("2006-01-02")
}

func truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max-1]) + "…"
}
