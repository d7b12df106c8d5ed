// Package railway implements the fetch layer in front of the upstream railway
// ticketing service.
package railway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/railfare/internal/adapters/codec"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
)

const (
	ticketsPath    = "/otn/leftTicket/queryG"
	ticketsReferer = "/otn/leftTicket/init?"
	schedulePath   = "/otn/queryTrainInfo/query"
	scheduleRefer  = "/otn/queryTrainInfo/init"
	searchPath     = "/search/v1/train/search"
	indexPath      = "/index/"
	rosterBase     = "/index"

	// maxBody caps how much of a response is read.
	maxBody = 16 << 20
)

// envelope is the common shape of upstream JSON responses.
type envelope[T any] struct {
	Data     T               `json:"data"`
	Status   json.RawMessage `json:"status"`
	Messages json.RawMessage `json:"messages"`
}

type scheduleData struct {
	Data []codec.RawStop `json:"data"`
}

// Client implements ports.Upstream over HTTP. Every call takes a permit for its
// endpoint and, except for the station roster, attaches the session cookie.
// Failures are returned as they are; Client never retries.
type Client struct {
	cfg        domain.UpstreamConfig
	httpClient *http.Client
	limiter    ports.Limiter
	sessions   ports.SessionProvider
	tracer     ports.Tracer
	logger     ports.Logger
}

// NewClient creates a Client with a per-call timeout taken from cfg.
func NewClient(
	cfg domain.UpstreamConfig,
	limiter ports.Limiter,
	sessions ports.SessionProvider,
	tracer ports.Tracer,
	logger ports.Logger,
) *Client {
	return newClientWithHTTP(cfg, limiter, sessions, tracer, logger, &http.Client{Timeout: cfg.Timeout})
}

func newClientWithHTTP(
	cfg domain.UpstreamConfig,
	limiter ports.Limiter,
	sessions ports.SessionProvider,
	tracer ports.Tracer,
	logger ports.Logger,
	client *http.Client,
) *Client {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	cfg.SearchURL = strings.TrimSuffix(cfg.SearchURL, "/")
	cfg.IndexURL = strings.TrimSuffix(cfg.IndexURL, "/")
	return &Client{
		cfg:        cfg,
		httpClient: client,
		limiter:    limiter,
		sessions:   sessions,
		tracer:     tracer,
		logger:     logger,
	}
}

// request describes one upstream exchange.
type request struct {
	endpoint    domain.Endpoint
	url         string
	params      url.Values
	referer     string
	withSession bool
	wantJSON    bool
	key         string
}

// QueryTickets returns the offerings between two station codes on date.
// Records that fail to decode are logged and skipped.
func (c *Client) QueryTickets(ctx context.Context, fromCode, toCode, date string) ([]domain.TrainInfo, error) {
	params := url.Values{}
	params.Set("leftTicketDTO.train_date", date)
	params.Set("leftTicketDTO.from_station", fromCode)
	params.Set("leftTicketDTO.to_station", toCode)
	params.Set("purpose_codes", "ADULT")

	body, err := c.do(ctx, request{
		endpoint:    domain.EndpointTickets,
		url:         c.cfg.BaseURL + ticketsPath,
		params:      params,
		referer:     c.cfg.BaseURL + ticketsReferer,
		withSession: true,
		wantJSON:    true,
		key:         date + "/" + fromCode + "-" + toCode,
	})
	if err != nil {
		return nil, err
	}

	var resp envelope[codec.TicketPayload]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, parseError(domain.EndpointTickets, err)
	}
	trains, errs := codec.DecodeTickets(resp.Data.Result, resp.Data.Map, date)
	for _, e := range errs {
		c.logger.Warn("skipped ticket record: " + e.Error())
	}
	return trains, nil
}

// QuerySchedule returns the stop list of runNumber on date.
func (c *Client) QuerySchedule(ctx context.Context, runNumber, date string) (*domain.TrainSchedule, error) {
	params := url.Values{}
	params.Set("leftTicketDTO.train_no", runNumber)
	params.Set("leftTicketDTO.train_date", date)
	params.Set("rand_code", "")

	body, err := c.do(ctx, request{
		endpoint:    domain.EndpointSchedule,
		url:         c.cfg.BaseURL + schedulePath,
		params:      params,
		referer:     c.cfg.BaseURL + scheduleRefer,
		withSession: true,
		wantJSON:    true,
		key:         date + "/" + runNumber,
	})
	if err != nil {
		return nil, err
	}

	var resp envelope[scheduleData]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, parseError(domain.EndpointSchedule, err)
	}
	stops, err := codec.ParseStops(resp.Data.Data)
	if err != nil {
		return nil, domain.Annotate(err, "run_number", runNumber, "date", date)
	}
	if len(stops) == 0 {
		return nil, domain.Annotate(domain.ErrScheduleNotFound, "run_number", runNumber, "date", date)
	}
	return domain.NewTrainSchedule(runNumber, date, stops), nil
}

// SearchRunNumbers returns the runs whose code starts with runCode on date.
func (c *Client) SearchRunNumbers(ctx context.Context, runCode, date string) ([]domain.RunNumberRecord, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("keyword", runCode)
	params.Set("date", day.Format(domain.CompactDateLayout))

	body, err := c.do(ctx, request{
		endpoint:    domain.EndpointRunNumbers,
		url:         c.cfg.SearchURL + searchPath,
		params:      params,
		referer:     c.cfg.BaseURL + "/",
		withSession: true,
		wantJSON:    true,
		key:         date + "/" + runCode,
	})
	if err != nil {
		return nil, err
	}

	var resp envelope[[]codec.RawRunNumber]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, parseError(domain.EndpointRunNumbers, err)
	}
	return codec.ParseRunNumbers(resp.Data, date), nil
}

// FetchStations downloads the station roster script referenced by the index page.
func (c *Client) FetchStations(ctx context.Context) ([]domain.Station, error) {
	page, err := c.do(ctx, request{
		endpoint: domain.EndpointStations,
		url:      c.cfg.IndexURL + indexPath,
		key:      "index",
	})
	if err != nil {
		return nil, err
	}
	script, err := codec.RosterScriptPath(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, request{
		endpoint: domain.EndpointStations,
		url:      c.cfg.IndexURL + rosterBase + script,
		referer:  c.cfg.IndexURL + indexPath,
		key:      script,
	})
	if err != nil {
		return nil, err
	}
	stations := codec.ParseStationRoster(string(body))
	if len(stations) == 0 {
		return nil, domain.Annotate(domain.ErrUpstreamParse, "endpoint", string(domain.EndpointStations), "reason", "empty roster")
	}
	return stations, nil
}

func (c *Client) do(ctx context.Context, r request) (body []byte, err error) {
	ctx, span := c.tracer.Start(ctx, string(r.endpoint), ports.WithAttribute("query", r.key))
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	release, err := c.limiter.Acquire(ctx, r.endpoint)
	if err != nil {
		return nil, err
	}
	defer release()

	target := r.url
	if len(r.params) > 0 {
		target += "?" + r.params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, upstreamError(r, "reason", err.Error())
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if r.referer != "" {
		req.Header.Set("Referer", r.referer)
	}
	if r.withSession {
		s, err := c.sessions.Get(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Cookie", s.Cookie)
		req.Header.Set("If-Modified-Since", "0")
		req.Header.Set("Cache-Control", "no-cache")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, upstreamError(r, "reason", err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	span.SetAttribute("status_code", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		if r.withSession && resp.StatusCode >= 300 && resp.StatusCode < 400 {
			c.sessions.Invalidate()
		}
		return nil, upstreamError(r, "status_code", resp.StatusCode)
	}
	if r.wantJSON && isHTML(resp.Header.Get("Content-Type")) {
		// An HTML answer to a JSON endpoint is the login page.
		c.sessions.Invalidate()
		return nil, upstreamError(r, "reason", "session rejected")
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, upstreamError(r, "reason", err.Error())
	}
	c.logger.Debug(string(r.endpoint) + " " + r.key + " answered in " + strconv.FormatInt(time.Since(start).Milliseconds(), 10) + "ms")
	return body, nil
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "text/html"
}

func upstreamError(r request, key string, value any) error {
	return domain.Annotate(domain.ErrUpstream, "endpoint", string(r.endpoint), "query", r.key, key, value)
}

func parseError(endpoint domain.Endpoint, err error) error {
	return domain.Annotate(domain.ErrUpstreamParse, "endpoint", string(endpoint), "reason", err.Error())
}
