package config

import (
	"github.com/spf13/cobra"

	"github.com/aleksandradimitrov/wikipedia-task/internal/state"
	"github.com/aleksandradimitrov/wikipedia-task/pkg/cmd/config/configInit"
	"github.com/aleksandradimitrov/wikipedia-task/pkg/cmd/config/configShow"
)

func NewCmdConfig(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file.",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(
		configShow.Command(s),
		configInit.Command(s),
	)

	return cmd
}
