package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/financellm/financellm/internal/config"
	"github.com/financellm/financellm/internal/logger"
	"github.com/financellm/financellm/internal/store"
)

// app holds what most subcommands need: resolved config, a logger and an
// open store.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *store.Store
}

// openApp resolves the config at opts.configPath and opens the database.
// Relative paths in the config are taken relative to the config file.
func openApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(opts.configPath)
	cfg.Database.Path = resolvePath(base, cfg.Database.Path)
	cfg.Import.Dir = resolvePath(base, cfg.Import.Dir)
	cfg.Rules.File = resolvePath(base, cfg.Rules.File)

	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logger.SetDefault(log)

	st, err := store.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, store: st}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("Closing database")
	}
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func mustNotExist(path string) error {
	if fileExists(path) {
		return fmt.Errorf("%s already exists", path)
	}
	return nil
}
