package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/financellm/financellm/internal/importer"
)

func newIngestCommand(opts *rootOptions) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "ingest <file.csv>",
		Short: "Ingest one CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := importer.NewService(a.store, a.log)
			n, err := svc.IngestFile(cmd.Context(), args[0], account)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d transactions from %s\n", n, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "", "account name for rows without one")

	return cmd
}
