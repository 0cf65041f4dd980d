package cli

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (c *CLI) exploreCommand() *cobra.Command {
	var src sourceOpts

	cmd := &cobra.Command{
		Use:               "explore [data]",
		Short:             "Brush a data file interactively in the terminal",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dataFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := src.loadConfig()
			if err != nil {
				return err
			}
			ch, err := src.loadChart(cmd.Context(), args[0], cfg)
			if err != nil {
				return err
			}

			m := NewExploreModel(filepath.Base(args[0]), ch)
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(ExploreModel); ok {
				out := cmd.OutOrStdout()
				printSuccess(out, "%d of %d items selected", len(fm.selected), ch.Len())
				if len(fm.selected) > 0 {
					printDetail(out, "ids: %s", listIDs(fm.selected))
				}
			}
			return nil
		},
	}
	src.register(cmd)
	return cmd
}
