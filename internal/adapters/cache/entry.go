package cache

import (
	"sort"
	"sync"
	"time"
)

type node struct {
	mu         sync.Mutex
	value      Value
	children   map[string]*node
	expiresAt  time.Time
	lastAccess time.Time
	visits     uint64
}

func newNode(value Value, ttl time.Duration, now time.Time) *node {
	n := &node{
		value:      value,
		lastAccess: now,
	}
	if ttl > 0 {
		n.expiresAt = now.Add(ttl)
	}
	return n
}

// expired must be called with n.mu held.
func (n *node) expired(now time.Time) bool {
	return !n.expiresAt.IsZero() && !now.Before(n.expiresAt)
}

// touch must be called with n.mu held.
func (n *node) touch(now time.Time) {
	n.lastAccess = now
	n.visits++
}

// lookupLocked returns the live child for key, removing it when expired.
// Must be called with n.mu held.
func (n *node) lookupLocked(key string, now time.Time) *node {
	c, ok := n.children[key]
	if !ok {
		return nil
	}
	c.mu.Lock()
	dead := c.expired(now)
	c.mu.Unlock()
	if dead {
		delete(n.children, key)
		return nil
	}
	return c
}

// insertLocked adds child under key, making room first when the node is full.
// Must be called with n.mu held and key absent.
func (n *node) insertLocked(key string, child *node, t *Tree, now time.Time) {
	if n.children == nil {
		n.children = make(map[string]*node)
	}
	if n != t.root && t.capacity > 0 {
		n.sweepLocked(now)
		if len(n.children) >= t.capacity {
			n.evictLocked(t.alpha, t.beta, now)
		}
	}
	n.children[key] = child
}

// sweepLocked drops expired children and returns the live ones.
// Must be called with n.mu held.
func (n *node) sweepLocked(now time.Time) []*node {
	live := make([]*node, 0, len(n.children))
	for key, c := range n.children {
		c.mu.Lock()
		dead := c.expired(now)
		c.mu.Unlock()
		if dead {
			delete(n.children, key)
			continue
		}
		live = append(live, c)
	}
	return live
}

type candidate struct {
	key        string
	lastAccess time.Time
	score      float64
}

// evictLocked removes the child with the lowest score. The most recently
// accessed child is never chosen while it has siblings.
// Must be called with n.mu held.
func (n *node) evictLocked(alpha, beta float64, now time.Time) {
	if len(n.children) == 0 {
		return
	}
	cands := make([]candidate, 0, len(n.children))
	for key, c := range n.children {
		c.mu.Lock()
		age := now.Sub(c.lastAccess).Seconds()
		cands = append(cands, candidate{
			key:        key,
			lastAccess: c.lastAccess,
			score:      alpha*age + beta*float64(c.visits),
		})
		c.mu.Unlock()
	}
	sort.Slice(cands, func(i, j int) bool {
		if !cands[i].lastAccess.Equal(cands[j].lastAccess) {
			return cands[i].lastAccess.After(cands[j].lastAccess)
		}
		return cands[i].key < cands[j].key
	})
	if len(cands) > 1 {
		cands = cands[1:]
	}
	victim := cands[0]
	for _, c := range cands[1:] {
		if c.score < victim.score || (c.score == victim.score && c.key < victim.key) {
			victim = c
		}
	}
	delete(n.children, victim.key)
}
