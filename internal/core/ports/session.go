package ports

import (
	"context"

	"go.trai.ch/railfare/internal/core/domain"
)

//go:generate mockgen -source=session.go -destination=mocks/mock_session.go -package=mocks

// SessionProvider hands out the current upstream session, refreshing it when stale.
type SessionProvider interface {
	Get(ctx context.Context) (domain.Session, error)
	// Invalidate drops the current session so the next Get refreshes it.
	Invalidate()
}

// Limiter bounds concurrent upstream calls per endpoint.
type Limiter interface {
	// Acquire blocks until a permit for endpoint is available. The returned
	// release function must be called exactly once.
	Acquire(ctx context.Context, endpoint domain.Endpoint) (func(), error)
}
