package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/waabox/auditdeck/internal/audit"
)

// ListCommand prints the audits of the dashboard.
type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	search    string
	status    string
	score     string
	date      string
	sortBy    string
	sortOrder string
	format    string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List audits.")
	c.Cmd.Flag("search", "Filter by project name (case insensitive).").StringVar(&c.search)
	c.Cmd.Flag("status", "Filter by status (all, completed, processing, failed).").Default(string(audit.StatusAll)).StringVar(&c.status)
	c.Cmd.Flag("score", "Filter by trust score band (all, high, medium, low).").Default(string(audit.ScoreRangeAll)).StringVar(&c.score)
	c.Cmd.Flag("date", "Filter by date (all, today, week, month).").Default(string(audit.DateRangeAll)).StringVar(&c.date)
	c.Cmd.Flag("sort", "Sort key (date, score, name).").Default(string(audit.SortByDate)).StringVar(&c.sortBy)
	c.Cmd.Flag("order", "Sort order (asc, desc).").Default(string(audit.SortDesc)).StringVar(&c.sortOrder)
	c.Cmd.Flag("format", "Output format.").Default("table").EnumVar(&c.format, formats()...)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	repo := audit.NewLoggedRepository(audit.NewMockCatalog(), c.rootCmd.Logger)
	audits, err := repo.ListAudits()
	if err != nil {
		return fmt.Errorf("could not list audits: %w", err)
	}
	audits = opts.Apply(audits, time.Now())
	c.rootCmd.Logger.Debugf("%d audits match %d active filters", len(audits), opts.ActiveCount())

	p, err := c.rootCmd.printerFor(c.format)
	if err != nil {
		return err
	}
	if err := p.PrintList(audits, audit.Summarize(audits)); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}

func (c ListCommand) options() (audit.FilterOptions, error) {
	opts := audit.DefaultFilterOptions()
	opts.Search = c.search

	var err error
	if opts.Status, err = audit.ParseStatus(c.status); err != nil {
		return opts, fmt.Errorf("invalid status filter: %w", err)
	}
	if opts.ScoreRange, err = audit.ParseScoreRange(c.score); err != nil {
		return opts, fmt.Errorf("invalid score filter: %w", err)
	}
	if opts.DateRange, err = audit.ParseDateRange(c.date); err != nil {
		return opts, fmt.Errorf("invalid date filter: %w", err)
	}
	if opts.SortBy, opts.SortOrder, err = audit.ParseSort(c.sortBy, c.sortOrder); err != nil {
		return opts, fmt.Errorf("invalid sort: %w", err)
	}
	return opts, nil
}
