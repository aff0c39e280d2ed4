package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/financellm/financellm/internal/importer"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Ingest every CSV waiting in the import directory",
		Long: "Ingest every *.csv file in the import directory. Files that ingest\n" +
			"cleanly are moved to import/processed; failed files stay put.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if account == "" {
				account = a.cfg.Import.AccountHint
			}

			svc := importer.NewService(a.store, a.log)
			results, err := svc.ImportDir(cmd.Context(), a.cfg.Import.Dir, account)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No CSV files in %s\n", a.cfg.Import.Dir)
				return nil
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(out, "  FAIL %s: %v\n", r.Name, r.Err)
					continue
				}
				fmt.Fprintf(out, "  ok   %s: %d transactions\n", r.Name, r.Inserted)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "", "account name for rows without one")

	return cmd
}
