package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/bank"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/config"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/fingerprint"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/funnel"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/llm"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/logger"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/mastery"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/questiongen"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/sourcing"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/store"
)

// app bundles everything a command needs once wiring is done.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	store  *store.Store
	remote fingerprint.RemoteStore
}

// newApp loads configuration, opens the database, and connects the remote
// seen-store when configured. Callers must Close.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg := config.Load()

	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := logger.New(verbose)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, store: st}

	addr := cfg.RedisAddr
	if flagAddr, _ := cmd.Flags().GetString("redis"); flagAddr != "" {
		addr = flagAddr
	}
	if addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.remote = fingerprint.NewRedisStore(client)
	}

	return a, nil
}

func (a *app) Close() {
	_ = a.store.Close()
	_ = a.log.Sync()
}

// seenSet builds the learner's seen-set: the persisted local cache is
// preloaded, the remote store attached when configured.
func (a *app) seenSet(ctx context.Context, learnerID, moduleID string) (*fingerprint.SeenSet, error) {
	seen := fingerprint.NewSeenSet(learnerID, moduleID, a.remote, a.log)

	fps, err := a.store.SeenCacheRepo().Load(ctx, learnerID, moduleID)
	if err != nil {
		return nil, err
	}
	seen.Preload(fps)

	if a.remote != nil {
		if err := seen.Reconcile(ctx); err != nil {
			a.log.Warn("remote seen-store unreachable, continuing local-only", zap.Error(err))
		}
	}
	return seen, nil
}

// service wires the batch-building service on top of the store and the
// configured generation provider.
func (a *app) service(ctx context.Context) (*funnel.Service, error) {
	var generator questiongen.Generator
	provider, err := llm.NewProvider(ctx, a.cfg.LLM, a.log)
	if err != nil {
		a.log.Warn("generation tier disabled", zap.Error(err))
	} else {
		generator = questiongen.New(provider, questiongen.DefaultConfig(), a.log)
	}

	pipeline := sourcing.NewPipeline(
		bank.NewVerifiedStore(a.store.DB()),
		bank.NewBankStore(a.store.DB()),
		generator,
		a.cfg.Sourcing,
		a.log,
	)
	selector := funnel.NewSelector(a.cfg.Select, a.cfg.Selector, nil)

	return funnel.NewService(selector, pipeline, a.cfg.Overrides, a.log), nil
}

// params returns the mastery scoring constants in effect.
func (a *app) params() mastery.Params {
	return a.cfg.Selector
}
