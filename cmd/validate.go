package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"seo-web/internal/form"
)

var errInvalidURL = errors.New("URL rejected")

var validateCmd = &cobra.Command{
	Use:   "validate <url>",
	Short: "Check a URL the way the analysis form does",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printValidation(cmd.OutOrStdout(), args[0])
	},
}

// printValidation reports both checks and fails when the strict one,
// which gates submission, rejects the URL.
func printValidation(w io.Writer, raw string) error {
	realtime := form.ValidateRealtime(raw)
	strict := form.ValidateStrict(raw)

	fmt.Fprintf(w, "realtime: %s\n", describe(realtime))
	fmt.Fprintf(w, "strict:   %s\n", describe(strict))

	if !strict.OK() {
		return fmt.Errorf("%w: %s", errInvalidURL, strict.Reason)
	}
	return nil
}

func describe(r form.Result) string {
	if r.Reason == "" {
		return r.Status.String()
	}
	return fmt.Sprintf("%s (%s)", r.Status, r.Reason)
}
