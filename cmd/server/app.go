package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/rtfilms/internal/assets"
	"github.com/Clark-Hu/rtfilms/internal/config"
	"github.com/Clark-Hu/rtfilms/internal/logging"
	"github.com/Clark-Hu/rtfilms/internal/repository"
	"github.com/Clark-Hu/rtfilms/internal/resolver"
	"github.com/Clark-Hu/rtfilms/internal/store"
)

// app holds the process-lifetime resources shared by every command.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  store.Handle
}

type bootOptions struct {
	configPath string
	// quiet routes logs to stderr so stdout only carries command output.
	quiet bool
}

func bootstrap(ctx context.Context, opts bootOptions) (*app, error) {
	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Dir:    cfg.LogPath,
		Name:   cfg.AppName,
		Debug:  cfg.LogDebug,
		Stderr: opts.quiet,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With(zap.String("app", cfg.AppName))

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	}

	st, err := store.Open(dbCtx, cfg.DBDriver, cfg.DBURL, storeOpts)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &app{cfg: cfg, logger: logger, store: st}, nil
}

func (a *app) close() {
	a.store.Close()
	_ = a.logger.Sync()
}

// posterBackend returns the configured poster locator and, for remote
// backends, the opener that streams images over HTTP.
func (a *app) posterBackend() (assets.Locator, assets.Opener, error) {
	switch a.cfg.AssetBackend {
	case "minio":
		bucket, err := assets.NewBucket(assets.BucketConfig{
			Endpoint:  a.cfg.MinioEndpoint,
			AccessKey: a.cfg.MinioAccessKey,
			SecretKey: a.cfg.MinioSecretKey,
			Bucket:    a.cfg.MinioBucket,
			UseSSL:    a.cfg.MinioUseSSL,
		}, a.logger.With(zap.String("component", "assets")))
		if err != nil {
			return nil, nil, err
		}
		return bucket, bucket, nil
	default:
		return assets.NewDir(a.cfg.StaticDir), nil, nil
	}
}

func (a *app) newResolver(posters assets.Locator) (*resolver.Resolver, error) {
	repo, err := repository.New(a.store, a.logger)
	if err != nil {
		return nil, err
	}
	mode, err := resolver.ParseLookupMode(a.cfg.LookupMode)
	if err != nil {
		return nil, err
	}
	return resolver.New(repo.Films, repo.Reviews, posters, resolver.Options{
		Mode:           mode,
		FallbackPoster: a.cfg.PosterFallback,
		Logger:         a.logger,
	}), nil
}
