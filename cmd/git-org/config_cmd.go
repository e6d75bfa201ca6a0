package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/d6e/git-org/internal/config"
	"github.com/d6e/git-org/internal/output"
)

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		Long: `Manage git-org configuration.

Config file: ~/.config/git-org/config.toml`,
		Example: `  git-org config init     # Create the default config
  git-org config path     # Print the config file location`,
	}

	cmd.AddCommand(newConfigInitCmd(e))
	cmd.AddCommand(newConfigPathCmd(e))

	return cmd
}

func newConfigInitCmd(e *env) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			path, err := configPath(e)
			if err != nil {
				return err
			}
			if err := config.InitAt(path, force); err != nil {
				if errors.Is(err, config.ErrExists) {
					return fmt.Errorf("%w (use -f to overwrite)", err)
				}
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")

	return cmd
}

func newConfigPathCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(e)
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Println(path)
			return nil
		},
	}
}

// configPath is the file the config was loaded from, else the default location.
func configPath(e *env) (string, error) {
	if e.cfg != nil && e.cfg.Path != "" {
		return e.cfg.Path, nil
	}
	return config.DefaultPath()
}
