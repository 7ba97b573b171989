package configShow

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aleksandradimitrov/wikipedia-task/internal/state"
)

func Command(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML.",
		Long: heredoc.Doc(`
			Prints the configuration a search would run with: built-in defaults,
			overridden by the configuration file, overridden by flags.

			Examples:
			  degrees config show
			  degrees config show --source api --limit 20
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s)
		},
	}

	return cmd
}

func run(cmd *cobra.Command, s *state.State) error {
	cfg, err := s.Settings()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
