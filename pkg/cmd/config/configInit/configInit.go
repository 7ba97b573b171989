package configInit

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/aleksandradimitrov/wikipedia-task/internal/config"
	"github.com/aleksandradimitrov/wikipedia-task/internal/state"
)

func Command(s *state.State) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [--force]",
		Short: "Write the default configuration file.",
		Long: heredoc.Doc(`
			Writes the built-in defaults to ~/.degrees/cfg.yaml. An existing file is
			left untouched unless --force is given.

			Examples:
			  degrees config init
			  degrees config init --force
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, force bool) error {
	path := config.GetConfigPath(s.Home)

	if force {
		if err := config.Default().Save(s.Home); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote default configuration to", path)
		return nil
	}

	created, err := config.EnsureConfigExists(s.Home)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote default configuration to", path)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration already exists at", path)
	}
	return nil
}
