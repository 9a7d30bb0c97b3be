package api

import (
	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/catalog"
	"github.com/devlarabar/fitnotes-v2/internal/session"
)

type App interface {
	Logger() internal.Logger
	Sessions() *session.Manager
	Catalog() *catalog.Catalog
}
