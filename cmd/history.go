package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"seo-web/internal/api"
	"seo-web/internal/view"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analyses from the backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		res := client.Analyses(cmd.Context())
		if !res.IsOk() {
			return fmt.Errorf("error loading analysis history: %w", res.Err)
		}
		return printHistory(cmd.OutOrStdout(), res.Value)
	},
}

func printHistory(w io.Writer, analyses []api.AnalysisSummary) error {
	if len(analyses) == 0 {
		_, err := fmt.Fprintln(w, "No analyses found. Start by analyzing a URL!")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tURL\tTYPE\tDATE\tSCORE\tSTATUS")
	for _, a := range analyses {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d%%\t%s\n",
			a.ID, a.URL, a.Type, view.FormatDate(a.Date), a.OverallScore, view.StatusText(a.OverallScore))
	}
	fmt.Fprintf(tw, "\n%s analyses\n", view.FormatNumber(len(analyses)))
	return tw.Flush()
}
