package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/waabox/auditdeck/internal/audit"
	"github.com/waabox/auditdeck/internal/domain"
	"github.com/waabox/auditdeck/internal/progress"
)

const barWidth = 40

// TablePrinter prints audit information for humans, with colours when the
// output supports them.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintList prints audits in a table followed by the dashboard stats.
func (t *TablePrinter) PrintList(audits []domain.Audit, stats domain.Stats) error {
	if len(audits) == 0 {
		fmt.Fprintln(t.writer, "No audits found.")
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

	// Print header.
	fmt.Fprintln(tw, "ID\tPROJECT\tSTATUS\tSCORE\tISSUES\tDATE")

	// Print rows.
	for _, a := range audits {
		score, issues := "--", "--"
		if a.HasScore() {
			score = scoreString(a.Score)
			issues = fmt.Sprintf("%d", a.VulnerabilityCount())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			a.ProjectName,
			statusString(a.Status),
			score,
			issues,
			a.Date.Format("2006-01-02"),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(t.writer, "\nTotal: %d   Completed: %d   Processing: %d   Average score: %d   Findings: %d\n",
		stats.Total, stats.Completed, stats.Processing, stats.AverageScore, stats.Vulnerabilities)
	fmt.Fprintf(t.writer, "Gas saved: %d   Certificates: %d\n", stats.GasSaved, stats.Certificates)
	return nil
}

// PrintReport prints a detailed audit report.
func (t *TablePrinter) PrintReport(a domain.Audit) error {
	fmt.Fprintf(t.writer, "Project:       %s\n", a.ProjectName)
	fmt.Fprintf(t.writer, "ID:            %s\n", a.ID)
	fmt.Fprintf(t.writer, "Status:        %s\n", statusString(a.Status))
	fmt.Fprintf(t.writer, "Date:          %s\n", a.Date.Format("2006-01-02"))
	if !a.HasScore() {
		fmt.Fprintln(t.writer, "\nThe audit is still in progress.")
		return nil
	}
	fmt.Fprintf(t.writer, "Trust score:   %s / 100\n", scoreString(a.Score))
	fmt.Fprintf(t.writer, "Intent match:  %d%%\n", a.CodeToIntentMatch)
	if c := a.Certificate; c != nil {
		fmt.Fprintf(t.writer, "Certificate:   %s (minted %s)\n", color.CyanString(c.TokenID), c.MintedAt.Format("2006-01-02"))
	}

	if len(a.Vulnerabilities) > 0 {
		fmt.Fprintf(t.writer, "\nVulnerabilities (%d)\n", len(a.Vulnerabilities))
		for _, v := range a.Vulnerabilities {
			fmt.Fprintf(t.writer, "  [%s] %s (line %d)\n", severityString(v.Severity), v.Title, v.Line)
			fmt.Fprintf(t.writer, "      %s\n", v.Description)
			fmt.Fprintf(t.writer, "      Fix: %s\n", v.Recommendation)
		}
	}

	if len(a.GasOptimizations) > 0 {
		fmt.Fprintf(t.writer, "\nGas optimizations (%d)\n", len(a.GasOptimizations))
		tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  TITLE\tCURRENT\tOPTIMIZED\tSAVINGS")
		for _, g := range a.GasOptimizations {
			fmt.Fprintf(tw, "  %s\t%d\t%d\t%.1f%%\n", g.Title, g.CurrentGas, g.OptimizedGas, g.SavingsPercent())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// PrintSnapshot redraws a single progress line. The line is terminated once
// the run is no longer active.
func (t *TablePrinter) PrintSnapshot(s progress.Snapshot) error {
	filled := s.Percent * barWidth / progress.MaxPercent
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	label := s.Stage.Label
	switch s.State {
	case progress.StateComplete:
		label = color.GreenString("Complete")
	case progress.StateCancelled:
		label = color.YellowString("Cancelled")
	}
	fmt.Fprintf(t.writer, "\r  [%s] %3d%% %-32s", bar, s.Percent, label)
	if !s.Running() {
		fmt.Fprintln(t.writer)
	}
	return nil
}

func statusString(s domain.AuditStatus) string {
	switch s {
	case domain.AuditStatusCompleted:
		return color.GreenString("completed")
	case domain.AuditStatusProcessing:
		return color.YellowString("processing")
	case domain.AuditStatusFailed:
		return color.RedString("failed")
	default:
		return string(s)
	}
}

func scoreString(score int) string {
	switch audit.BandOf(score) {
	case audit.ScoreRangeHigh:
		return color.GreenString("%d", score)
	case audit.ScoreRangeMedium:
		return color.YellowString("%d", score)
	default:
		return color.RedString("%d", score)
	}
}

func severityString(s domain.Severity) string {
	switch s {
	case domain.SeverityCritical, domain.SeverityHigh:
		return color.RedString("%s", s)
	case domain.SeverityMedium:
		return color.YellowString("%s", s)
	default:
		return color.CyanString("%s", s)
	}
}
