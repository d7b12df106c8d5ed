// export_test.go exposes internals for white-box testing.
package cache

import "time"

// RawChildCount returns the number of children stored under path, including expired ones.
func RawChildCount(t *Tree, path Path) int {
	n := t.walk(path, time.Now())
	if n == nil {
		return 0
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.children)
}
