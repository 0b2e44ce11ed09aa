package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/waabox/auditdeck/internal/domain"
	"github.com/waabox/auditdeck/internal/progress"
)

// MarkdownPrinter renders audit reports as Markdown documents.
type MarkdownPrinter struct {
	writer io.Writer
}

// NewMarkdownPrinter creates a new Markdown printer.
func NewMarkdownPrinter(w io.Writer) *MarkdownPrinter {
	return &MarkdownPrinter{writer: w}
}

// PrintList renders the audits as a Markdown table.
func (m *MarkdownPrinter) PrintList(audits []domain.Audit, stats domain.Stats) error {
	var sb strings.Builder
	sb.WriteString("# Audits\n\n")
	sb.WriteString("| ID | Project | Status | Score | Issues | Date |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, a := range audits {
		score, issues := "--", "--"
		if a.HasScore() {
			score = fmt.Sprintf("%d", a.Score)
			issues = fmt.Sprintf("%d", a.VulnerabilityCount())
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			a.ID, escapeCell(a.ProjectName), a.Status, score, issues, a.Date.Format("2006-01-02")))
	}
	sb.WriteString(fmt.Sprintf("\n**Total**: %d · **Average score**: %d · **Findings**: %d · **Gas saved**: %d · **Certificates**: %d\n",
		stats.Total, stats.AverageScore, stats.Vulnerabilities, stats.GasSaved, stats.Certificates))
	_, err := io.WriteString(m.writer, sb.String())
	return err
}

// PrintReport renders a full audit report.
func (m *MarkdownPrinter) PrintReport(a domain.Audit) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", a.ProjectName))
	sb.WriteString(fmt.Sprintf("**ID**: %s  \n**Status**: %s  \n**Date**: %s\n\n", a.ID, a.Status, a.Date.Format("2006-01-02")))
	if a.Description != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", a.Description))
	}
	if !a.HasScore() {
		sb.WriteString("_The audit is still in progress._\n")
		_, err := io.WriteString(m.writer, sb.String())
		return err
	}

	sb.WriteString(fmt.Sprintf("**Trust score**: %d / 100  \n**Code-to-intent match**: %d%%\n\n", a.Score, a.CodeToIntentMatch))

	if len(a.Vulnerabilities) > 0 {
		sb.WriteString("## Vulnerabilities\n\n")
		for i, v := range a.Vulnerabilities {
			sb.WriteString(fmt.Sprintf("%d. %s **[%s]** %s (line %d)\n   **Description**: %s\n   **Recommendation**: %s\n\n",
				i+1, severityIcon(v.Severity), v.Severity, v.Title, v.Line, v.Description, v.Recommendation))
		}
	}

	if len(a.GasOptimizations) > 0 {
		sb.WriteString("## Gas optimizations\n\n")
		sb.WriteString("| Optimization | Current gas | Optimized gas | Savings |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, g := range a.GasOptimizations {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.1f%% |\n", escapeCell(g.Title), g.CurrentGas, g.OptimizedGas, g.SavingsPercent()))
		}
		sb.WriteString("\n")
	}

	if c := a.Certificate; c != nil {
		sb.WriteString("## Proof of Integrity\n\n")
		sb.WriteString(fmt.Sprintf("**Token ID**: %s  \n**Minted**: %s  \n**Trust score**: %d\n\n",
			c.TokenID, c.MintedAt.Format("2006-01-02"), a.Score))
	}

	if a.SourceCode != "" {
		sb.WriteString("## Source\n\n")
		sb.WriteString(fmt.Sprintf("```rust\n%s\n```\n", a.SourceCode))
	}

	_, err := io.WriteString(m.writer, sb.String())
	return err
}

// PrintSnapshot renders a snapshot as a list item.
func (m *MarkdownPrinter) PrintSnapshot(s progress.Snapshot) error {
	label := s.Stage.Label
	if !s.Running() {
		label = string(s.State)
	}
	_, err := fmt.Fprintf(m.writer, "- %d%% %s\n", s.Percent, label)
	return err
}

func severityIcon(s domain.Severity) string {
	switch s {
	case domain.SeverityCritical:
		return "🔴"
	case domain.SeverityHigh:
		return "🟠"
	case domain.SeverityMedium:
		return "🟡"
	case domain.SeverityLow:
		return "🟢"
	default:
		return "⚪"
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
