package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/financellm/financellm/internal/ask"
	"github.com/financellm/financellm/internal/llm"
)

func newAskCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the local model about your transactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			client := llm.NewClient(a.cfg.LLM.Host, a.cfg.LLM.Model, a.cfg.LLM.System, a.cfg.LLM.Timeout())
			answer, err := ask.NewService(a.store, client).Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
}
