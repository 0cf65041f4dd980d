package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/parcoords/pkg/chart"
	"github.com/matzehuels/parcoords/pkg/dimension"
)

// maxCategories is how many category names the inspect table spells out.
const maxCategories = 4

// inspectCommand creates the inspect command, which prints the inferred
// dimension model of a data file.
func (c *CLI) inspectCommand() *cobra.Command {
	var src sourceOpts

	cmd := &cobra.Command{
		Use:               "inspect [data]",
		Short:             "Show the dimensions inferred from a data file",
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
			printInspect(cmd.OutOrStdout(), args[0], ch)
			return nil
		},
	}
	src.register(cmd)
	return cmd
}

func printInspect(w io.Writer, path string, ch *chart.Chart) {
	descs := ch.Model()
	snap := ch.Snapshot()
	visible := ch.Order()
	invalid := invalidCounts(snap)

	fmt.Fprintln(w, StyleTitle.Render(path))
	fmt.Fprintln(w, statsLine(len(snap.Lines), len(descs), snap.Selected))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(descs))
	for _, d := range descs {
		inv := "hidden"
		if n, ok := invalid[d.Name]; ok {
			inv = strconv.Itoa(n)
		}
		rows = append(rows, []string{d.Name, d.Kind.String(), d.Role().String(), d.Unit, domainString(d), inv})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Dimension", "Kind", "Role", "Unit", "Domain", "Invalid").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			d := descs[row]
			switch {
			case !slices.Contains(visible, d.Name):
				return StyleDim
			case col == 2 && d.IsCriterion():
				return styleCriterion
			case col == 4:
				return StyleNumber
			}
			return StyleValue
		})
	fmt.Fprintln(w, t.Render())

	if len(visible) > 0 {
		fmt.Fprintln(w)
		printKeyValue(w, "axis order", strings.Join(visible, ", "))
	}
	if crit := criteria(descs); len(crit) > 0 {
		printKeyValue(w, "criteria", strings.Join(crit, ", "))
	}
	fmt.Fprintln(w)
	printNextStep(w, "Render it", fmt.Sprintf("%s render %s -o chart.svg", appName, path))
}

// invalidCounts counts invalid vertices per visible axis.
func invalidCounts(snap chart.Snapshot) map[string]int {
	counts := make(map[string]int, len(snap.Axes))
	for _, ax := range snap.Axes {
		counts[ax.Name] = 0
	}
	for _, line := range snap.Lines {
		for j, v := range line.Vertices {
			if v.Invalid && j < len(snap.Axes) {
				counts[snap.Axes[j].Name]++
			}
		}
	}
	return counts
}

func domainString(d dimension.Descriptor) string {
	if d.Kind == dimension.Nominal {
		cats := d.Domain.Categories
		if len(cats) <= maxCategories {
			return strings.Join(cats, ", ")
		}
		return fmt.Sprintf("%s, … (%d)", strings.Join(cats[:maxCategories], ", "), len(cats))
	}
	return fmt.Sprintf("%s to %s", formatFloat(d.Domain.Min), formatFloat(d.Domain.Max))
}

func criteria(descs []dimension.Descriptor) []string {
	var out []string
	for _, d := range descs {
		if d.IsCriterion() {
			out = append(out, fmt.Sprintf("%s (%s)", d.Name, d.Objective.Direction))
		}
	}
	return out
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', 6, 64) }

// dataFileCompletion completes data file arguments.
func dataFileCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"csv", "xlsx", "json"}, cobra.ShellCompDirectiveFilterFileExt
}
