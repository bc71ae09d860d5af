package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/tallyup-dev/tallyup/internal/config"
	"github.com/tallyup-dev/tallyup/internal/ledger"
	"github.com/tallyup-dev/tallyup/internal/logging"
	"github.com/tallyup-dev/tallyup/internal/pipeline"
	"github.com/tallyup-dev/tallyup/internal/rules"
)

// env bundles the services a command needs for a data directory.
type env struct {
	dataRoot string
	cfg      *config.Config
	store    *rules.Store
	ledger   *ledger.Service
	pipe     *pipeline.Pipeline
}

// openEnv resolves the data directory and wires the services. A missing
// tallyup.yaml falls back to defaults so commands work in a bare directory.
func openEnv(dir string) (*env, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, "tallyup.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}

	store := rules.NewStore(absDir)
	led := ledger.NewService(absDir)
	pipe := pipeline.New(store, led, cfg.Currency.Default, logging.New())

	return &env{
		dataRoot: absDir,
		cfg:      cfg,
		store:    store,
		ledger:   led,
		pipe:     pipe,
	}, nil
}
