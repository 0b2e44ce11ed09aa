package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/waabox/auditdeck/internal/audit"
	"github.com/waabox/auditdeck/internal/progress"
	"github.com/waabox/auditdeck/internal/tui"
)

// TUICommand opens the interactive dashboard.
type TUICommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewTUICommand returns the tui command. It runs when no command is given.
func NewTUICommand(rootCmd *RootCommand, app *kingpin.Application) *TUICommand {
	c := &TUICommand{rootCmd: rootCmd}
	c.Cmd = app.Command("tui", "Open the interactive audit dashboard.").Default()
	return c
}

func (c TUICommand) Name() string { return c.Cmd.FullCommand() }

func (c TUICommand) Run(ctx context.Context) error {
	sim, err := progress.NewSimulator(c.rootCmd.Config.SimulatorConfig())
	if err != nil {
		return fmt.Errorf("could not create simulator: %w", err)
	}

	repo := audit.NewLoggedRepository(audit.NewMockCatalog(), c.rootCmd.Logger)

	return tui.Run(ctx, repo, sim, c.rootCmd.Logger)
}
