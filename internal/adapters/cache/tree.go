// Package cache implements a hierarchical TTL cache addressed by dotted paths.
//
// Every node may hold a value and children. Leaves expire lazily on access and
// through a periodic sweep. Each node holds at most a fixed number of children
// and evicts by a score that weighs recency against visit count.
package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.trai.ch/railfare/internal/core/domain"
)

const (
	// DefaultCapacity is the maximum number of children per node.
	DefaultCapacity = 100
	// DefaultMissTTL is the lifetime of an empty node created by a miss on an intermediate segment.
	DefaultMissTTL = 60 * time.Second
	// DefaultSweepInterval is the period of the background expiry sweep.
	DefaultSweepInterval = 10 * time.Second
	// DefaultAlpha weighs seconds since last access in the eviction score.
	DefaultAlpha = -0.5
	// DefaultBeta weighs the visit count in the eviction score.
	DefaultBeta = 0.5
)

// Tree is the root of the cache. It is safe for concurrent use.
type Tree struct {
	root     *node
	capacity int
	missTTL  time.Duration
	interval time.Duration
	alpha    float64
	beta     float64

	startOnce sync.Once
}

// Option configures a Tree.
type Option func(*Tree)

// WithCapacity sets the per-node child limit.
func WithCapacity(n int) Option {
	return func(t *Tree) {
		if n > 0 {
			t.capacity = n
		}
	}
}

// WithMissTTL sets the lifetime of nodes materialized by intermediate misses.
func WithMissTTL(d time.Duration) Option {
	return func(t *Tree) {
		if d > 0 {
			t.missTTL = d
		}
	}
}

// WithSweepInterval sets the background sweep period.
func WithSweepInterval(d time.Duration) Option {
	return func(t *Tree) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithWeights sets the eviction score weights.
func WithWeights(alpha, beta float64) Option {
	return func(t *Tree) {
		t.alpha = alpha
		t.beta = beta
	}
}

// New creates an empty Tree.
func New(opts ...Option) *Tree {
	t := &Tree{
		root:     newNode(nil, 0, time.Now()),
		capacity: DefaultCapacity,
		missTTL:  DefaultMissTTL,
		interval: DefaultSweepInterval,
		alpha:    DefaultAlpha,
		beta:     DefaultBeta,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewFromConfig creates a Tree from the cache section of the configuration.
func NewFromConfig(cfg domain.CacheConfig) *Tree {
	opts := []Option{
		WithCapacity(cfg.Capacity),
		WithMissTTL(cfg.MissTTL),
		WithSweepInterval(cfg.SweepInterval),
	}
	if cfg.Alpha != 0 || cfg.Beta != 0 {
		opts = append(opts, WithWeights(cfg.Alpha, cfg.Beta))
	}
	return New(opts...)
}

// Start launches the background sweep once. It stops when ctx is done.
func (t *Tree) Start(ctx context.Context) {
	t.startOnce.Do(func() {
		go t.Run(ctx)
	})
}

// Run sweeps expired nodes every interval until ctx is done.
func (t *Tree) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Sweep()
		}
	}
}

// Set stores value at path. Missing intermediate nodes are created without a
// TTL. A ttl of zero means the value never expires. Overwriting an existing
// child keeps its children and counters.
func (t *Tree) Set(path Path, value Value, ttl time.Duration) error {
	if len(path) == 0 {
		return domain.ErrEmptyCachePath
	}
	now := time.Now()
	parent := t.walkCreate(path[:len(path)-1], now)
	key := path[len(path)-1]

	parent.mu.Lock()
	defer parent.mu.Unlock()

	if c := parent.lookupLocked(key, now); c != nil {
		c.mu.Lock()
		c.value = value
		c.expiresAt = time.Time{}
		if ttl > 0 {
			c.expiresAt = now.Add(ttl)
		}
		c.mu.Unlock()
		return nil
	}
	parent.insertLocked(key, newNode(value, ttl, now), t, now)
	return nil
}

// GetOrCreate returns the live value at path, storing the result of create when
// the path holds nothing. The check and the insert happen atomically.
func (t *Tree) GetOrCreate(path Path, ttl time.Duration, create func() Value) (Value, error) {
	if len(path) == 0 {
		return nil, domain.ErrEmptyCachePath
	}
	now := time.Now()
	parent := t.walkCreate(path[:len(path)-1], now)
	key := path[len(path)-1]

	parent.mu.Lock()
	defer parent.mu.Unlock()

	if c := parent.lookupLocked(key, now); c != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.touch(now)
		if c.value != nil {
			return c.value, nil
		}
		c.value = create()
		if ttl > 0 {
			c.expiresAt = now.Add(ttl)
		}
		return c.value, nil
	}

	value := create()
	parent.insertLocked(key, newNode(value, ttl, now), t, now)
	return value, nil
}

// Get returns the value at path. Every node traversed has its access time and
// visit count bumped. A miss on an intermediate segment leaves behind an empty
// node that expires after the miss TTL.
func (t *Tree) Get(path Path) (Value, bool, error) {
	if len(path) == 0 {
		return nil, false, domain.ErrEmptyCachePath
	}
	now := time.Now()
	n := t.root

	for i, key := range path {
		last := i == len(path)-1

		n.mu.Lock()
		c := n.lookupLocked(key, now)
		if c == nil {
			if !last {
				n.insertLocked(key, newNode(nil, t.missTTL, now), t, now)
			}
			n.mu.Unlock()
			return nil, false, nil
		}
		c.mu.Lock()
		c.touch(now)
		c.mu.Unlock()
		n.mu.Unlock()

		n = c
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.value == nil {
		return nil, false, nil
	}
	return n.value, true, nil
}

// Lookup returns the typed item stored at path.
func Lookup[T any](t *Tree, path Path) (T, bool, error) {
	var zero T
	v, ok, err := t.Get(path)
	if err != nil || !ok {
		return zero, false, err
	}
	item, ok := v.(Item[T])
	if !ok {
		return zero, false, nil
	}
	return item.Data, true, nil
}

// Store is shorthand for Set with an Item value.
func Store[T any](t *Tree, path Path, data T, ttl time.Duration) error {
	return t.Set(path, Item[T]{Data: data}, ttl)
}

// Delete removes the node at path and its whole subtree. Deleting a missing
// path is a no-op.
func (t *Tree) Delete(path Path) error {
	if len(path) == 0 {
		return domain.ErrEmptyCachePath
	}
	now := time.Now()
	parent := t.walk(path[:len(path)-1], now)
	if parent == nil {
		return nil
	}
	parent.mu.Lock()
	delete(parent.children, path[len(path)-1])
	parent.mu.Unlock()
	return nil
}

// Children returns a snapshot of the values held by the immediate children of
// path. Children without a value and expired children are skipped. An empty
// path scans the top level.
func (t *Tree) Children(path Path) map[string]Value {
	now := time.Now()
	n := t.walk(path, now)
	out := make(map[string]Value)
	if n == nil {
		return out
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for key, c := range n.children {
		c.mu.Lock()
		if !c.expired(now) && c.value != nil {
			out[key] = c.value
		}
		c.mu.Unlock()
	}
	return out
}

// BatchGet returns the values of the listed children of path. Missing keys are absent from the result.
func (t *Tree) BatchGet(path Path, keys []string) map[string]Value {
	all := t.Children(path)
	out := make(map[string]Value, len(keys))
	for _, key := range keys {
		if v, ok := all[key]; ok {
			out[key] = v
		}
	}
	return out
}

// Keys returns the sorted names of the live children of path.
func (t *Tree) Keys(path Path) []string {
	now := time.Now()
	n := t.walk(path, now)
	if n == nil {
		return nil
	}
	n.mu.Lock()
	live := make([]string, 0, len(n.children))
	for key, c := range n.children {
		c.mu.Lock()
		if !c.expired(now) {
			live = append(live, key)
		}
		c.mu.Unlock()
	}
	n.mu.Unlock()
	sort.Strings(live)
	return live
}

// Sweep removes every expired node and returns how many subtrees were dropped.
func (t *Tree) Sweep() int {
	now := time.Now()
	removed := 0
	queue := []*node{t.root}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		n.mu.Lock()
		before := len(n.children)
		live := n.sweepLocked(now)
		removed += before - len(live)
		n.mu.Unlock()

		queue = append(queue, live...)
	}
	return removed
}

// walk follows path without creating nodes or bumping counters.
func (t *Tree) walk(path Path, now time.Time) *node {
	n := t.root
	for _, key := range path {
		n.mu.Lock()
		c := n.lookupLocked(key, now)
		n.mu.Unlock()
		if c == nil {
			return nil
		}
		n = c
	}
	return n
}

// walkCreate follows path, creating missing nodes. Empty nodes on the way
// lose any miss TTL.
func (t *Tree) walkCreate(path Path, now time.Time) *node {
	n := t.root
	for _, key := range path {
		n.mu.Lock()
		c := n.lookupLocked(key, now)
		if c == nil {
			c = newNode(nil, 0, now)
			n.insertLocked(key, c, t, now)
		} else {
			c.mu.Lock()
			if c.value == nil {
				c.expiresAt = time.Time{}
			}
			c.mu.Unlock()
		}
		n.mu.Unlock()
		n = c
	}
	return n
}
