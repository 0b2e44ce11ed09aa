package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/auditdeck/internal/domain"
)

// FindingsModel is an immutable list of vulnerability findings with a cursor.
type FindingsModel struct {
	findings []domain.Vulnerability
	cursor   int
}

// NewFindingsModel creates a findings model.
func NewFindingsModel(findings []domain.Vulnerability) FindingsModel {
	return FindingsModel{findings: findings}
}

func (m FindingsModel) MoveDown() FindingsModel {
	if m.cursor < len(m.findings)-1 {
		m.cursor++
	}
	return m
}

func (m FindingsModel) MoveUp() FindingsModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

func (m FindingsModel) Cursor() int {
	return m.cursor
}

func (m FindingsModel) Findings() []domain.Vulnerability {
	return m.findings
}

// Selected returns the highlighted finding and false when the list is empty.
func (m FindingsModel) Selected() (domain.Vulnerability, bool) {
	if len(m.findings) == 0 {
		return domain.Vulnerability{}, false
	}
	return m.findings[m.cursor], true
}

// View renders the findings list followed by the details of the selected one.
func (m FindingsModel) View() string {
	if len(m.findings) == 0 {
		return "  No vulnerabilities found.\n"
	}
	var sb strings.Builder
	for i, v := range m.findings {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%-10s %-40s line %d\n",
			prefix,
			severityStyle(v.Severity).Render(fmt.Sprintf("[%s]", v.Severity)),
			truncate(v.Title, 40),
			v.Line,
		))
	}

	v, _ := m.Selected()
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", titleStyle.Render(v.Title)))
	sb.WriteString(fmt.Sprintf("  %s\n", v.Description))
	sb.WriteString(fmt.Sprintf("  Recommendation: %s\n", v.Recommendation))
	return sb.String()
}
