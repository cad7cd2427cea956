package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"seo-web/internal/view"
)

var chatAnalysisID string

var chatCmd = &cobra.Command{
	Use:   "chat <message>...",
	Short: "Ask the SEO assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, ok := view.NormalizeChatMessage(strings.Join(args, " "))
		if !ok {
			return errors.New("message is empty")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		reply := client.Chat(cmd.Context(), chatAnalysisID, message)
		for _, m := range view.ChatExchange(message, reply)[1:] {
			fmt.Fprintln(cmd.OutOrStdout(), m.Text)
		}
		if !reply.IsOk() {
			return reply.Err
		}
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatAnalysisID, "analysis-id", "", "analysis the question is about")
}
