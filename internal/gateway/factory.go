package gateway

import (
	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/config"
)

func NewFileRepositories(cfg *config.Config, logger internal.Logger) (SetRepository, CommentRepository, CatalogRepository, error) {
	g, err := NewFileGateway(cfg.SetsFile, cfg.CommentsFile, cfg.CatalogFile, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return g, g, g, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (SetRepository, CommentRepository, CatalogRepository, error) {
	g, err := NewPostgresGateway(dsn, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return g, g, g, nil
}
