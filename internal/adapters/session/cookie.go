package session

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
)

const confPath = "/index/otn/login/conf"

// CookieSource fetches a fresh credential from the login configuration
// endpoint. The cookies set by the response form the credential.
type CookieSource struct {
	indexURL   string
	userAgent  string
	httpClient *http.Client
	limiter    ports.Limiter
}

// NewCookieSource creates a CookieSource from the upstream configuration.
func NewCookieSource(cfg domain.UpstreamConfig, limiter ports.Limiter) *CookieSource {
	return newCookieSourceWithClient(cfg, limiter, &http.Client{Timeout: cfg.Timeout})
}

func newCookieSourceWithClient(cfg domain.UpstreamConfig, limiter ports.Limiter, client *http.Client) *CookieSource {
	c := *client
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &CookieSource{
		indexURL:   strings.TrimSuffix(cfg.IndexURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &c,
		limiter:    limiter,
	}
}

// FetchCredential requests the login configuration and joins the returned
// cookies into one Cookie header value.
func (s *CookieSource) FetchCredential(ctx context.Context) (string, error) {
	release, err := s.limiter.Acquire(ctx, domain.EndpointSession)
	if err != nil {
		return "", err
	}
	defer release()

	url := s.indexURL + confPath + "?t=" + strconv.FormatInt(time.Now().Unix(), 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", domain.Annotate(domain.ErrUpstream, "endpoint", string(domain.EndpointSession), "reason", err.Error())
	}
	req.Header.Set("Referer", s.indexURL+"/index/")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", domain.Annotate(domain.ErrUpstream, "endpoint", string(domain.EndpointSession), "reason", err.Error())
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", domain.Annotate(domain.ErrUpstream, "endpoint", string(domain.EndpointSession), "status_code", resp.StatusCode)
	}

	cookies := resp.Cookies()
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; "), nil
}
