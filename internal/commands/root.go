package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/financellm/financellm/internal/buildinfo"
	"github.com/financellm/financellm/internal/config"
)

type rootOptions struct {
	configPath string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "financellm",
		Short:   "Personal finance CSV ingestion, categorization and summaries",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile := filepath.Join(filepath.Dir(opts.configPath), ".env")
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("loading %s: %w", envFile, err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.FileName, "path to financellm.yaml")

	rootCmd.AddCommand(
		newInitCommand(),
		newServeCommand(opts),
		newIngestCommand(opts),
		newImportCommand(opts),
		newRulesCommand(opts),
		newSummaryCommand(opts),
		newAskCommand(opts),
	)

	return rootCmd
}
