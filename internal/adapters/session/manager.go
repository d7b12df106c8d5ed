// Package session keeps the upstream session credential and refreshes it on demand.
package session

import (
	"context"
	"sync/atomic"
	"time"

	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
	"golang.org/x/sync/semaphore"
)

// Manager holds at most one session. Refreshes are single-flight: concurrent
// callers that find the session stale queue on one permit, and those behind the
// first observe the session it fetched.
type Manager struct {
	source  ports.CredentialSource
	logger  ports.Logger
	window  time.Duration
	current atomic.Pointer[domain.Session]
	refresh *semaphore.Weighted
}

// NewManager creates a Manager that reuses a credential for window.
func NewManager(source ports.CredentialSource, logger ports.Logger, window time.Duration) *Manager {
	if window <= 0 {
		window = domain.DefaultSessionWindow
	}
	return &Manager{
		source:  source,
		logger:  logger,
		window:  window,
		refresh: semaphore.NewWeighted(1),
	}
}

// Get returns the current session, refreshing it when it is missing or stale.
func (m *Manager) Get(ctx context.Context) (domain.Session, error) {
	if s := m.current.Load(); s != nil && s.Valid(time.Now()) {
		return *s, nil
	}

	if err := m.refresh.Acquire(ctx, 1); err != nil {
		return domain.Session{}, domain.Caused(domain.ErrSessionRefresh, err)
	}
	defer m.refresh.Release(1)

	if s := m.current.Load(); s != nil && s.Valid(time.Now()) {
		return *s, nil
	}

	cookie, err := m.source.FetchCredential(ctx)
	if err != nil {
		return domain.Session{}, domain.Caused(domain.ErrSessionRefresh, err)
	}
	s := &domain.Session{
		Cookie:    cookie,
		FetchedAt: time.Now(),
		Window:    m.window,
	}
	m.current.Store(s)
	m.logger.Debug("session refreshed")
	return *s, nil
}

// Invalidate drops the current session so the next Get refreshes it.
func (m *Manager) Invalidate() {
	m.current.Store(nil)
}
