package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"seo-web/internal/api"
)

var recommendationsCmd = &cobra.Command{
	Use:   "recommendations <analysis-id>",
	Short: "Print the AI recommendations of an analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("analysis id must be a positive integer: %q", args[0])
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		res := client.Recommendations(cmd.Context(), id)
		if !res.IsOk() {
			return fmt.Errorf("error loading AI recommendations: %w", res.Err)
		}
		return printRecommendations(cmd.OutOrStdout(), res.Value)
	},
}

func printRecommendations(w io.Writer, r api.Recommendations) error {
	p := &printer{w: w}

	p.section("Summary")
	p.line(r.Summary)

	if len(r.Priorities) > 0 {
		p.section("Top Priorities")
		for _, prio := range r.Priorities {
			p.line("- " + prio)
		}
	}

	if len(r.Recommendations) > 0 {
		p.section("Detailed Recommendations")
		for _, rec := range r.Recommendations {
			p.line(rec.Title)
			p.line("  " + rec.Description)
			for i, step := range rec.Steps {
				p.line(fmt.Sprintf("  %d. %s", i+1, step))
			}
		}
	}

	if r.Insights != "" {
		p.section("Additional Insights")
		p.line(r.Insights)
	}
	return p.err
}

// printer keeps the first write error so callers check once.
type printer struct {
	w       io.Writer
	err     error
	started bool
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) section(title string) {
	if p.started {
		p.line("")
	}
	p.started = true
	p.line("== " + title + " ==")
}
