// Package admission bounds concurrent upstream calls per endpoint.
package admission

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/railfare/internal/adapters/cache"
	"go.trai.ch/railfare/internal/core/domain"
)

// DefaultPermitTTL is how long a permit set stays registered in the cache.
const DefaultPermitTTL = 24 * time.Hour

var rootPath = cache.NewPath("admission", "query")

// Limiter hands out per-endpoint permits. Permit sets are created lazily and
// kept in the cache tree, so every caller sharing the tree shares the bound.
type Limiter struct {
	tree    *cache.Tree
	permits func(domain.Endpoint) int64
	ttl     time.Duration
}

// New creates a Limiter sized from cfg.
func New(tree *cache.Tree, cfg *domain.Config) *Limiter {
	ttl := cfg.Cache.PermitTTL
	if ttl <= 0 {
		ttl = DefaultPermitTTL
	}
	return &Limiter{
		tree:    tree,
		permits: cfg.Permits,
		ttl:     ttl,
	}
}

// Acquire blocks until a permit for endpoint is free. The returned release
// function must be called exactly once; further calls are no-ops.
func (l *Limiter) Acquire(ctx context.Context, endpoint domain.Endpoint) (func(), error) {
	set, err := l.permitSet(endpoint)
	if err != nil {
		return nil, err
	}
	if err := set.Acquire(ctx); err != nil {
		return nil, domain.Caused(domain.ErrAdmission, err, "endpoint", string(endpoint))
	}
	var once sync.Once
	return func() { once.Do(set.Release) }, nil
}

// Size returns the number of permits configured for endpoint.
func (l *Limiter) Size(endpoint domain.Endpoint) (int64, error) {
	set, err := l.permitSet(endpoint)
	if err != nil {
		return 0, err
	}
	return set.Size(), nil
}

func (l *Limiter) permitSet(endpoint domain.Endpoint) (*cache.PermitSet, error) {
	v, err := l.tree.GetOrCreate(rootPath.Child(string(endpoint)), l.ttl, func() cache.Value {
		return cache.NewPermitSet(l.permits(endpoint))
	})
	if err != nil {
		return nil, err
	}
	set, ok := v.(*cache.PermitSet)
	if !ok {
		return nil, domain.Annotate(domain.ErrAdmission, "endpoint", string(endpoint), "reason", "slot holds a foreign value")
	}
	return set, nil
}
