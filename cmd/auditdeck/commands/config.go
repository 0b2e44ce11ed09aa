package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kingpin/v2"

	"github.com/waabox/auditdeck/internal/config"
)

// NewConfigCommand returns the parent command of the config subcommands.
func NewConfigCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("config", "Manage the configuration file.")
}

// ConfigInitCommand writes the effective configuration to the config path.
type ConfigInitCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	force bool
}

// NewConfigInitCommand returns the config init command.
func NewConfigInitCommand(rootCmd *RootCommand, configCmd *kingpin.CmdClause) *ConfigInitCommand {
	c := &ConfigInitCommand{rootCmd: rootCmd}

	c.Cmd = configCmd.Command("init", "Write the effective configuration to the config file.")
	c.Cmd.Flag("force", "Overwrite an existing file.").BoolVar(&c.force)

	return c
}

func (c ConfigInitCommand) Name() string { return c.Cmd.FullCommand() }

func (c ConfigInitCommand) Run(ctx context.Context) error {
	path := c.rootCmd.ConfigPath
	if _, err := os.Stat(path); err == nil && !c.force {
		return fmt.Errorf("config file %s already exists, use --force to overwrite it", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not check config file: %w", err)
	}

	if err := config.Save(path, c.rootCmd.Config); err != nil {
		return fmt.Errorf("could not save config: %w", err)
	}
	c.rootCmd.Logger.Infof("Configuration written to %s", path)

	fmt.Fprintf(c.rootCmd.Stdout, "Config written: %s\n", path)
	return nil
}

// ConfigShowCommand prints the effective configuration as TOML.
type ConfigShowCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewConfigShowCommand returns the config show command.
func NewConfigShowCommand(rootCmd *RootCommand, configCmd *kingpin.CmdClause) *ConfigShowCommand {
	c := &ConfigShowCommand{rootCmd: rootCmd}
	c.Cmd = configCmd.Command("show", "Print the effective configuration.")
	return c
}

func (c ConfigShowCommand) Name() string { return c.Cmd.FullCommand() }

func (c ConfigShowCommand) Run(ctx context.Context) error {
	if err := toml.NewEncoder(c.rootCmd.Stdout).Encode(c.rootCmd.Config); err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	return nil
}
