// Package postings implements operator commands over stored postings.
package postings

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/concursohub/crawler/cmd/common"
)

const defaultListLimit = 50

// Command returns the postings command group.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "postings",
		Short: "Inspect stored postings",
	}
	cmd.AddCommand(listCommand())
	return cmd
}

func listCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored postings ordered by deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.New()
			if err != nil {
				return err
			}
			defer deps.Close()

			rows, err := deps.Postings.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"Organization", "City", "Vacancies", "Salary", "Deadline", "States"})
			for _, p := range rows {
				city := ""
				if p.EffectiveCity != nil {
					city = *p.EffectiveCity
				}
				t.AppendRow(table.Row{
					p.Organization,
					city,
					p.Vacancies,
					p.Salary,
					p.DeadlineFormatted,
					strings.Join(p.MentionedStates, ", "),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "maximum rows to list")
	return cmd
}
