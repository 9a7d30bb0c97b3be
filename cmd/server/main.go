package main

import (
	"context"
	"log"
	"os"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/api"
	"github.com/devlarabar/fitnotes-v2/internal/auth"
	"github.com/devlarabar/fitnotes-v2/internal/catalog"
	"github.com/devlarabar/fitnotes-v2/internal/config"
	"github.com/devlarabar/fitnotes-v2/internal/gateway"
	"github.com/devlarabar/fitnotes-v2/internal/session"
)

type app struct {
	logger   internal.Logger
	sessions *session.Manager
	catalog  *catalog.Catalog
}

func (a *app) Logger() internal.Logger    { return a.logger }
func (a *app) Sessions() *session.Manager { return a.sessions }
func (a *app) Catalog() *catalog.Catalog  { return a.catalog }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.Backend == "file" {
		if err := os.MkdirAll("data", 0755); err != nil {
			logger.Fatalf("failed to create data dir: %v", err)
		}
	}

	var (
		sets     gateway.SetRepository
		comments gateway.CommentRepository
		catRepo  gateway.CatalogRepository
	)
	switch cfg.Backend {
	case "postgres":
		sets, comments, catRepo, err = gateway.NewPostgresRepositories(cfg.PostgresDSN, logger)
	default:
		sets, comments, catRepo, err = gateway.NewFileRepositories(cfg, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	cat, err := catalog.Load(context.Background(), catRepo)
	if err != nil {
		logger.Fatalf("failed to load catalog: %v", err)
	}

	a := &app{
		logger:   logger,
		sessions: session.NewManager(sets, comments, cat, logger, cfg.PRPageSize),
		catalog:  cat,
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.LocalAuthToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	r := api.NewRouter(a, cfg, provider)
	logger.Infof("server running on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
