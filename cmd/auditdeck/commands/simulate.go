package commands

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/waabox/auditdeck/internal/log"
	"github.com/waabox/auditdeck/internal/progress"
)

// SimulateCommand runs a simulated audit and prints every progress snapshot.
type SimulateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format   string
	interval time.Duration
	seed     uint64
	seedSet  bool
}

// NewSimulateCommand returns the simulate command.
func NewSimulateCommand(rootCmd *RootCommand, app *kingpin.Application) *SimulateCommand {
	c := &SimulateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("simulate", "Run a simulated AI audit and print its progress.")
	c.Cmd.Flag("format", "Output format.").Default("text").EnumVar(&c.format, formats()...)
	c.Cmd.Flag("interval", "Tick interval, overrides the configured one (e.g. 100ms).").DurationVar(&c.interval)
	c.Cmd.Flag("seed", "Seed for a reproducible run. Without it every run is random.").IsSetByUser(&c.seedSet).Uint64Var(&c.seed)

	return c
}

func (c SimulateCommand) Name() string { return c.Cmd.FullCommand() }

func (c SimulateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg := c.rootCmd.Config.SimulatorConfig()
	if c.interval > 0 {
		cfg.TickInterval = c.interval
	}
	if c.seedSet {
		cfg.Random = rand.New(rand.NewPCG(c.seed, c.seed))
	}

	sim, err := progress.NewSimulator(cfg)
	if err != nil {
		return fmt.Errorf("could not create simulator: %w", err)
	}

	p, err := c.rootCmd.printerFor(c.format)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		final    progress.Snapshot
		printErr error
	)
	for s := range progress.NewRunner(sim, logger).Stream(ctx) {
		final = s
		if printErr != nil {
			continue
		}
		if printErr = p.PrintSnapshot(s); printErr != nil {
			cancel()
		}
	}
	if printErr != nil {
		return fmt.Errorf("could not print progress: %w", printErr)
	}

	logger.WithValues(log.Kv{"percent": final.Percent, "state": final.State}).Debugf("Simulation finished")
	return nil
}
