package root

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aleksandradimitrov/wikipedia-task/internal/state"
	"github.com/aleksandradimitrov/wikipedia-task/internal/title"
	"github.com/aleksandradimitrov/wikipedia-task/internal/traversal"
	"github.com/aleksandradimitrov/wikipedia-task/internal/tui/progress"
	"github.com/aleksandradimitrov/wikipedia-task/internal/tui/render"
	"github.com/aleksandradimitrov/wikipedia-task/pkg/arg"
	configCmd "github.com/aleksandradimitrov/wikipedia-task/pkg/cmd/config"
	"github.com/aleksandradimitrov/wikipedia-task/pkg/cmd/links"
	"github.com/aleksandradimitrov/wikipedia-task/pkg/cmd/version"
	"github.com/aleksandradimitrov/wikipedia-task/pkg/flags"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "degrees [page]",
		Short: "Find how many links separate a Wikipedia page from Kevin Bacon.",
		Long: heredoc.Doc(`
			Starting from the given page, degrees follows article links breadth-first
			until it reaches the target page and prints the number of hops needed.
			Only the first links of every page are followed (see --limit), so a
			reachable page may still be reported as not reachable.

			The page can be a title or a full article URL. Without an argument the
			page is asked for interactively.

			Examples:
			  degrees https://en.wikipedia.org/wiki/Footloose_(1984_film)
			  degrees "Apollo 13 (film)" --concurrency 4
			  degrees Tom_Hanks --target "Paul Erdős" --source api
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	flags.AddLookup(cmd, s.Config)
	flags.AddSearch(cmd, s.Config)
	flags.AddMetricsAddr(cmd)
	flags.AddNoProgress(cmd)

	cmd.AddCommand(
		links.NewCmdLinks(s),
		configCmd.NewCmdConfig(s),
		version.NewCmdVersion(),
	)

	return cmd, nil
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	cfg, err := s.Settings()
	if err != nil {
		return err
	}

	engine, err := s.Engine(cfg)
	if err != nil {
		return err
	}

	input, err := arg.HandlePage(args, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	site, err := title.NewSite(cfg.BaseURL)
	if err != nil {
		return err
	}
	start, err := site.Normalize(input)
	if err != nil {
		return fmt.Errorf("%w: %q", traversal.ErrEmptyStart, input)
	}

	if err := s.ServeMetrics(flags.HandleMetricsAddr(cmd)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := render.New(cmd.OutOrStdout())
	out.Searching(start, engine.Target())

	var res traversal.Result
	search := func() error {
		var err error
		res, err = engine.FindDistance(ctx, start)
		return err
	}

	began := time.Now()
	interactive := !flags.HandleNoProgress(cmd) && isTerminal(cmd.ErrOrStderr())
	if interactive {
		err = progress.Run(cmd.ErrOrStderr(), s.ProgressHeartbeatCmd, search)
	} else {
		err = search()
	}
	if err != nil {
		return err
	}

	out.Result(res)

	s.Logger.Info("search finished",
		"start", res.Start,
		"target", res.Target,
		"distance", res.Distance,
		"expanded", res.Expanded,
		"failed", res.Failed,
		"took", time.Since(began),
	)
	if interactive {
		render.New(cmd.ErrOrStderr()).Summary(res, time.Since(began))
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
