package railway

import (
	"net/http"

	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
)

// NewClientWithHTTP exposes client injection to tests.
func NewClientWithHTTP(
	cfg domain.UpstreamConfig,
	limiter ports.Limiter,
	sessions ports.SessionProvider,
	tracer ports.Tracer,
	logger ports.Logger,
	client *http.Client,
) *Client {
	return newClientWithHTTP(cfg, limiter, sessions, tracer, logger, client)
}
