package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vbonduro/assetreg/internal/assetid"
	"github.com/vbonduro/assetreg/internal/auth"
	"github.com/vbonduro/assetreg/internal/config"
	"github.com/vbonduro/assetreg/internal/db"
	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/filestore/local"
	"github.com/vbonduro/assetreg/internal/logging"
	"github.com/vbonduro/assetreg/internal/metrics"
	"github.com/vbonduro/assetreg/internal/service"
	"github.com/vbonduro/assetreg/internal/store"
	"github.com/vbonduro/assetreg/internal/web"
)

// app holds the wired dependencies shared by the subcommands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	database *sql.DB
	registry *prometheus.Registry
	metrics  *metrics.Registry
	tokens   *auth.TokenManager
	services web.Services

	closeLog func()
}

func newApp(cfg *config.Config) (a *app, err error) {
	logger, closeLog, err := logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		Text:  cfg.TestMode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err != nil {
			closeLog()
		}
	}()

	var database *sql.DB
	if cfg.TestMode {
		logger.Warn("test mode: using an in-memory database")
		database, err = db.OpenForTesting()
	} else {
		database, err = db.Open(cfg.DBPath)
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = database.Close()
		}
	}()

	secret := cfg.JWTSecret
	if secret == "" {
		// Tokens signed with an ephemeral secret never outlive the process.
		secret = uuid.NewString()
	}
	tokens, err := auth.NewTokenManager(secret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	files, err := local.New(cfg.ExportPath)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	assetStore := store.NewAssetStore(database)
	userStore := store.NewUserStore(database)
	categories, err := store.NewCatalogStore(database, domain.CatalogCategories)
	if err != nil {
		return nil, err
	}
	locations, err := store.NewCatalogStore(database, domain.CatalogLocations)
	if err != nil {
		return nil, err
	}

	activity := service.NewActivityService(store.NewLogStore(database), logger)
	allocator := assetid.NewAllocator(assetStore, logger, m)

	return &app{
		cfg:      cfg,
		logger:   logger,
		database: database,
		registry: reg,
		metrics:  m,
		tokens:   tokens,
		services: web.Services{
			Assets:   service.NewAssetService(assetStore, allocator, userStore, activity, logger),
			Catalog:  service.NewCatalogService(categories, locations, activity, logger),
			Users:    service.NewUserService(userStore, tokens, activity, logger),
			Activity: activity,
			Exports:  service.NewExportService(assetStore, files, activity, logger),
		},
		closeLog: closeLog,
	}, nil
}

func (a *app) server() *web.Server {
	return web.NewServer(a.services, a.tokens, a.metrics, a.registry, a.logger)
}

func (a *app) Close() error {
	err := a.database.Close()
	if err != nil {
		err = fmt.Errorf("failed to close database: %w", err)
	}
	a.closeLog()
	return err
}

// loadApp reads the configuration and wires the application.
func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}
