package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the legal information assistant",
	Long: `Asks a question about Australian business law. The answer is streamed
as it is written and summarises web sources, which are listed at the end.

Each answered question uses one AI query on the free plan. This is legal
information, not legal advice.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if accountService == nil {
		return errAccountNotConfigured
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	out := cmd.OutOrStdout()

	streamed := false
	resp, err := accountService.Ask(cmd.Context(), question, func(chunk string) {
		streamed = true
		_, _ = out.Write([]byte(chunk))
	})
	if streamed {
		cmd.Println()
	}
	if err != nil {
		return err
	}

	if len(resp.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, s := range resp.Sources {
			title := s.Title
			if title == "" {
				title = s.URI
			}
			cmd.Printf("  [%d] %s\n      %s\n", i+1, title, s.URI)
		}
	}
	return nil
}
