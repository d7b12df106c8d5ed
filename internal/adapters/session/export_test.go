package session

import (
	"net/http"

	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
)

// NewCookieSourceWithClient exposes the client injection used by tests.
func NewCookieSourceWithClient(cfg domain.UpstreamConfig, limiter ports.Limiter, client *http.Client) *CookieSource {
	return newCookieSourceWithClient(cfg, limiter, client)
}
