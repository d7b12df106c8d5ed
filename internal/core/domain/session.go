package domain

import "time"

// DefaultSessionWindow is how long a session credential is reused.
const DefaultSessionWindow = 180 * time.Minute

// Session is an upstream credential with its fetch time.
type Session struct {
	Cookie    string
	FetchedAt time.Time
	Window    time.Duration
}

// Valid reports whether the session is still inside its validity window at now.
func (s Session) Valid(now time.Time) bool {
	if s.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(s.FetchedAt) < s.Window
}
