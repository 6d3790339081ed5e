package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/certprep/internal/blueprint"
	"github.com/abhisek/certprep/internal/config"
	"github.com/abhisek/certprep/internal/examgen"
	"github.com/abhisek/certprep/internal/logging"
	"github.com/abhisek/certprep/internal/practice"
	"github.com/abhisek/certprep/internal/question"
	"github.com/abhisek/certprep/internal/scoring"
	"github.com/abhisek/certprep/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// appEnv is the configuration, logger and blueprint table shared by
// every command.
type appEnv struct {
	cfg   *config.Config
	log   *zap.Logger
	table *blueprint.Table
}

// loadEnv reads configuration, applies persistent flag overrides and
// loads the blueprint table.
func loadEnv(cmd *cobra.Command) (*appEnv, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.Bank = p
	}
	if p, _ := cmd.Flags().GetString("blueprints"); p != "" {
		cfg.Blueprints = p
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	table := blueprint.Default()
	if cfg.Blueprints != "" {
		if table, err = blueprint.LoadFile(cfg.Blueprints); err != nil {
			return nil, err
		}
	}
	if err := table.Err(); err != nil {
		log.Warn("blueprint sections blocked until corrected", zap.Error(err))
	}

	return &appEnv{cfg: cfg, log: log, table: table}, nil
}

func (e *appEnv) loadBank() (*question.Bank, error) {
	if e.cfg.Bank == "" {
		return nil, fmt.Errorf("no question bank configured (use --bank or set bank in certprep.yaml)")
	}
	return question.LoadFile(e.cfg.Bank)
}

func (e *appEnv) openStore(ctx context.Context, cmd *cobra.Command) (*store.Store, error) {
	driver := store.Driver(e.cfg.DB.Driver)
	dsn := e.cfg.DB.DSN
	if driver == store.DriverSQLite {
		p, err := resolveDBPath(cmd, dsn)
		if err != nil {
			return nil, err
		}
		dsn = p
	}
	return store.Open(ctx, driver, dsn)
}

// openService wires the engine, bank and store. The returned func
// closes the store and flushes the logger.
func (e *appEnv) openService(ctx context.Context, cmd *cobra.Command) (*practice.Service, func(), error) {
	bank, err := e.loadBank()
	if err != nil {
		return nil, nil, err
	}
	st, err := e.openStore(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}

	gen := examgen.New(e.table, examgen.WithLogger(e.log))
	scorer := scoring.NewScorer(e.table, scoring.Thresholds(e.cfg.Thresholds))
	svc := practice.NewService(gen, scorer, bank, st, e.log)
	return svc, func() {
		st.Close()
		_ = e.log.Sync()
	}, nil
}
