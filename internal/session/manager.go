package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/catalog"
	"github.com/devlarabar/fitnotes-v2/internal/gateway"
	"github.com/devlarabar/fitnotes-v2/internal/ledger"
)

// Manager hands out one Session per owner, loading the owner's history
// from the gateway on first access.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session

	sets     gateway.SetRepository
	comments gateway.CommentRepository
	catalog  *catalog.Catalog
	logger   internal.Logger
	pageSize int
}

func NewManager(sets gateway.SetRepository, comments gateway.CommentRepository, cat *catalog.Catalog, logger internal.Logger, pageSize int) *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		sets:     sets,
		comments: comments,
		catalog:  cat,
		logger:   logger,
		pageSize: pageSize,
	}
}

// Session returns the owner's session, bootstrapping the ledger from
// the gateway the first time the owner shows up.
func (m *Manager) Session(ctx context.Context, ownerID int64) (*Session, error) {
	if ownerID == 0 {
		return nil, ErrUnauthenticated
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[ownerID]; ok {
		return s, nil
	}

	sets, err := m.sets.SetsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("session: failed to load sets for owner %d: %w", ownerID, err)
	}
	comments, err := m.comments.CommentsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("session: failed to load comments for owner %d: %w", ownerID, err)
	}

	led := ledger.New(ownerID)
	for i := range sets {
		m.catalog.Enrich(&sets[i])
	}
	led.Load(sets, comments)

	s := &Session{
		ownerID:  ownerID,
		ledger:   led,
		sets:     m.sets,
		comments: m.comments,
		catalog:  m.catalog,
		logger:   m.logger,
		pageSize: m.pageSize,
	}
	m.sessions[ownerID] = s
	m.logger.Infof("session: bootstrapped owner %d with %d sets and %d comments", ownerID, len(sets), len(comments))
	return s, nil
}
