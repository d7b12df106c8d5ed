package cache

import (
	"context"
	"strings"

	"golang.org/x/sync/semaphore"
)

// Value is what a cache node can hold. Nested maps are never values; they are
// expressed as child nodes.
type Value interface {
	cacheValue()
}

// Item holds a typed scalar or object.
type Item[T any] struct {
	Data T
}

func (Item[T]) cacheValue() {}

// PermitSet is a fixed-size set of admission permits.
type PermitSet struct {
	sem  *semaphore.Weighted
	size int64
}

// NewPermitSet creates a permit set with size permits.
func NewPermitSet(size int64) *PermitSet {
	if size < 1 {
		size = 1
	}
	return &PermitSet{sem: semaphore.NewWeighted(size), size: size}
}

func (*PermitSet) cacheValue() {}

// Acquire blocks until a permit is free or ctx is done.
func (p *PermitSet) Acquire(ctx context.Context) error {
	return p.sem.Acquire(ctx, 1)
}

// Release returns a permit.
func (p *PermitSet) Release() {
	p.sem.Release(1)
}

// Size returns the number of permits in the set.
func (p *PermitSet) Size() int64 {
	return p.size
}

// Path addresses a node as an ordered list of segments.
type Path []string

// ParsePath splits a dotted path. An empty string yields an empty path.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

// NewPath builds a path from segments.
func NewPath(segments ...string) Path {
	return Path(segments)
}

// Child returns a new path extended by segments.
func (p Path) Child(segments ...string) Path {
	out := make(Path, 0, len(p)+len(segments))
	out = append(out, p...)
	return append(out, segments...)
}

// String joins the segments with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}
