package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/financellm/financellm/internal/config"
	"github.com/financellm/financellm/internal/store"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new financellm project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(cmd.Context(), absDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized financellm project at %s\n", absDir)
			return nil
		},
	}

	return cmd
}

func runInit(ctx context.Context, dir string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if err := mustNotExist(cfgPath); err != nil {
		return err
	}

	cfg := config.Default()

	// Create directory structure.
	dirs := []string{
		"data",
		"rules",
		cfg.Import.Dir,
		filepath.Join(cfg.Import.Dir, "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write empty budget rules.
	rulesContent := "rules: []\n"
	if err := os.WriteFile(filepath.Join(dir, cfg.Rules.File), []byte(rulesContent), 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	gitignore := "data/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, cfg.Import.Dir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	// Create the database and apply migrations.
	st, err := store.Open(ctx, filepath.Join(dir, cfg.Database.Path))
	if err != nil {
		return err
	}
	return st.Close()
}
