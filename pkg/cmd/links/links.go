package links

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/aleksandradimitrov/wikipedia-task/internal/state"
	"github.com/aleksandradimitrov/wikipedia-task/internal/title"
	"github.com/aleksandradimitrov/wikipedia-task/internal/traversal"
	"github.com/aleksandradimitrov/wikipedia-task/internal/tui/render"
)

func NewCmdLinks(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links <page>",
		Short: "List the links of a page that a search would follow.",
		Long: heredoc.Doc(`
			The links command fetches one page and prints its neighbours exactly as
			the search sees them: article links only, duplicates removed, cut off
			after --limit entries.

			Examples:
			  degrees links Footloose_(1984_film)
			  degrees links https://en.wikipedia.org/wiki/Kevin_Bacon --limit 10
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], s)
		},
	}

	return cmd
}

func run(cmd *cobra.Command, input string, s *state.State) error {
	cfg, err := s.Settings()
	if err != nil {
		return err
	}

	site, err := title.NewSite(cfg.BaseURL)
	if err != nil {
		return err
	}
	id, err := site.Normalize(input)
	if err != nil {
		return fmt.Errorf("%w: %q", traversal.ErrEmptyStart, input)
	}

	r, err := s.Resolver(cfg)
	if err != nil {
		return err
	}

	neighbors, err := r.Lookup(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("links of %q: %w", id, err)
	}

	render.New(cmd.OutOrStdout()).Links(neighbors)
	return nil
}
