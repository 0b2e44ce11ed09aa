package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/waabox/auditdeck/internal/audit"
)

// ReportCommand prints a full audit report.
type ReportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	auditID string
	format  string
}

// NewReportCommand returns the report command.
func NewReportCommand(rootCmd *RootCommand, app *kingpin.Application) *ReportCommand {
	c := &ReportCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("report", "Show an audit report.")
	c.Cmd.Arg("id", "ID of the audit.").Required().StringVar(&c.auditID)
	c.Cmd.Flag("format", "Output format.").Default("table").EnumVar(&c.format, formats()...)

	return c
}

func (c ReportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ReportCommand) Run(ctx context.Context) error {
	repo := audit.NewLoggedRepository(audit.NewMockCatalog(), c.rootCmd.Logger)
	a, err := repo.GetAudit(c.auditID)
	if err != nil {
		return fmt.Errorf("could not get audit: %w", err)
	}

	p, err := c.rootCmd.printerFor(c.format)
	if err != nil {
		return err
	}
	if err := p.PrintReport(a); err != nil {
		return fmt.Errorf("could not print report: %w", err)
	}

	return nil
}
