package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aleksandradimitrov/wikipedia-task/internal/constants"
)

func NewCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of degrees.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "degrees version %s\n", constants.Version)
		},
	}
}
