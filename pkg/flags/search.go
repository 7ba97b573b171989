package flags

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aleksandradimitrov/wikipedia-task/internal/config"
)

// AddSearch registers the traversal flags of the search command.
func AddSearch(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()

	f.StringP("target", "t", c.Target, "Page to search for")
	f.IntP("concurrency", "c", c.Concurrency, "Pages of the same level fetched in parallel")
	f.IntP("max-depth", "d", c.MaxDepth, "Stop expanding pages at this depth, 0 for no limit")

	bind(cmd, map[string]string{
		"target":      config.KeyTarget,
		"concurrency": config.KeyConcurrency,
		"max-depth":   config.KeyMaxDepth,
	})
}

func AddMetricsAddr(cmd *cobra.Command) {
	cmd.Flags().
		String(
			"metrics-addr",
			"",
			"Serve Prometheus metrics on this address while searching, e.g. :9090",
		)
}

func HandleMetricsAddr(cmd *cobra.Command) string {
	addr, err := cmd.Flags().GetString("metrics-addr")
	if err != nil {
		fmt.Printf("error retrieving metrics-addr flag: %s\n", err)
		os.Exit(1)
	}
	return addr
}

func AddNoProgress(cmd *cobra.Command) {
	cmd.Flags().Bool("no-progress", false, "Do not show the progress spinner")
}

func HandleNoProgress(cmd *cobra.Command) bool {
	off, err := cmd.Flags().GetBool("no-progress")
	if err != nil {
		fmt.Printf("error retrieving no-progress flag: %s\n", err)
		os.Exit(1)
	}
	return off
}
