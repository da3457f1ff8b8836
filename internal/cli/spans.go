package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"progressring/internal/demo"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newSpansCmd(opts *options) *cobra.Command {
	var update bool

	cmd := &cobra.Command{
		Use:   "spans",
		Short: "Print each ring's value and progress arc",
		Long: `Print the value, effective start offset and progress arc (in degrees,
relative to the rotated frame) of every configured ring.

With --update the Update button actions are applied first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			board, err := demo.NewBoard(cfg, 1, opts.log())
			if err != nil {
				return err
			}
			defer board.Close()

			if update {
				if err := board.ApplyUpdates(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), spansTable(board))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&update, "update", "u", false, "apply the Update actions first")
	return cmd
}

func spansTable(board *demo.Board) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "NAME", "VALUE", "START", "DIRECTION", "ARC", "TEXT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i, r := range board.Rings() {
		start, end := r.SpanDegrees()
		dir := "clockwise"
		if !r.Bar.Clockwise() {
			dir = "counter-clockwise"
		}
		t.Row(
			strconv.Itoa(i+1),
			r.Name,
			strconv.FormatFloat(r.Bar.Value(), 'f', -1, 64),
			strconv.Itoa(r.Bar.StartAt()),
			dir,
			fmt.Sprintf("%s-%s", degrees(start), degrees(end)),
			r.Bar.Text(),
		)
	}
	return t.String()
}

func degrees(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "°"
}
