package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/waabox/auditdeck/cmd/auditdeck/commands"
	"github.com/waabox/auditdeck/internal/config"
	"github.com/waabox/auditdeck/internal/log"
	loglogrus "github.com/waabox/auditdeck/internal/log/logrus"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("auditdeck", "Simulated smart contract audit dashboard.")
	app.Version(version)
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	tuiCmd := commands.NewTUICommand(rootCmd, app)
	simulateCmd := commands.NewSimulateCommand(rootCmd, app)
	listCmd := commands.NewListCommand(rootCmd, app)
	reportCmd := commands.NewReportCommand(rootCmd, app)

	// Config subcommands share a parent command.
	configCmd := commands.NewConfigCommand(app)
	configInitCmd := commands.NewConfigInitCommand(rootCmd, configCmd)
	configShowCmd := commands.NewConfigShowCommand(rootCmd, configCmd)

	cmds := map[string]commands.Command{
		tuiCmd.Name():        tuiCmd,
		simulateCmd.Name():   simulateCmd,
		listCmd.Name():       listCmd,
		reportCmd.Name():     reportCmd,
		configInitCmd.Name(): configInitCmd,
		configShowCmd.Name(): configShowCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// A broken file must not prevent rewriting it.
	cfg, err := config.LoadFrom(rootCmd.ConfigPath)
	if err != nil {
		if cmdName != configInitCmd.Name() {
			return fmt.Errorf("could not load configuration: %w", err)
		}
		cfg = config.Default()
	}
	rootCmd.Config = cfg

	if rootCmd.NoColor {
		color.NoColor = true
	}

	// Auto-suppress logging for commands that produce printer output so logs
	// don't mix with it. Users can still enable logging with --debug.
	printerCommands := map[string]bool{
		simulateCmd.Name():   true,
		listCmd.Name():       true,
		reportCmd.Name():     true,
		configShowCmd.Name(): true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// The TUI owns the terminal, it can only log to a file.
	logOut := stderr
	if cmdName == tuiCmd.Name() {
		if cfg.Log.File == "" {
			rootCmd.NoLog = true
		} else {
			f, err := os.OpenFile(cfg.Log.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
			if err != nil {
				return fmt.Errorf("could not open log file: %w", err)
			}
			defer f.Close()
			logOut = f
		}
	}

	// Set logger.
	rootCmd.Logger = getLogger(*rootCmd, logOut)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(config commands.RootCommand, out io.Writer) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	logrusLog := logrus.New()
	logrusLog.Out = out
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if level, err := logrus.ParseLevel(config.Config.Log.Level); err == nil {
		logrusLogEntry.Logger.SetLevel(level)
	}
	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	loggerType := config.LoggerType
	if loggerType == commands.LoggerTypeDefault && config.Config.Log.Format == commands.LoggerTypeJSON {
		loggerType = commands.LoggerTypeJSON
	}

	switch loggerType {
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: config.NoColor,
		})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
