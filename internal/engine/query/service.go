// Package query answers ticket, schedule and run-number queries on top of the
// fetch layer and the result cache.
package query

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.trai.ch/railfare/internal/adapters/cache" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
)

// Cache path roots.
const (
	ticketsRoot  = "tickets"
	scheduleRoot = "schedule"
)

// Service answers queries. Upstream results are cached in the shared tree and
// schedules are persisted as snapshots.
type Service struct {
	upstream ports.Upstream
	stations ports.StationLookup
	runs     ports.RunNumberLookup
	store    ports.Store
	tree     *cache.Tree
	ttl      domain.CacheConfig
	tracer   ports.Tracer
	logger   ports.Logger
}

// NewService creates a Service.
func NewService(
	upstream ports.Upstream,
	stations ports.StationLookup,
	runs ports.RunNumberLookup,
	store ports.Store,
	tree *cache.Tree,
	ttl domain.CacheConfig,
	tracer ports.Tracer,
	logger ports.Logger,
) *Service {
	return &Service{
		upstream: upstream,
		stations: stations,
		runs:     runs,
		store:    store,
		tree:     tree,
		ttl:      ttl,
		tracer:   tracer,
		logger:   logger,
	}
}

// endpoint is a resolved origin or destination of a ticket query.
type endpoint struct {
	station *domain.Station
	// name is set when the caller gave a station name rather than a telecode.
	name string
}

// resolveStation accepts a telecode or a station name.
func (s *Service) resolveStation(ctx context.Context, token string) (endpoint, error) {
	token = strings.TrimSpace(token)
	st, err := s.stations.LookupByCodeOrName(ctx, token)
	if err != nil {
		return endpoint{}, err
	}
	ep := endpoint{station: st}
	if st.Name == token {
		ep.name = token
	}
	return ep, nil
}

// Tickets returns the offerings for q, filtered and ordered by departure time.
func (s *Service) Tickets(ctx context.Context, q domain.TicketQuery) (trains []domain.TrainInfo, err error) {
	ctx, span := s.tracer.Start(ctx, "query.tickets",
		ports.WithAttribute("date", q.Date),
		ports.WithAttribute("from", q.From),
		ports.WithAttribute("to", q.To))
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	if err := q.Validate(); err != nil {
		return nil, err
	}
	from, err := s.resolveStation(ctx, q.From)
	if err != nil {
		return nil, err
	}
	to, err := s.resolveStation(ctx, q.To)
	if err != nil {
		return nil, err
	}
	filter, err := NewFilter(&q, from.name, to.name)
	if err != nil {
		return nil, err
	}

	all, err := s.fetchTickets(ctx, from.station.Code, to.station.Code, q.Date, q.Force)
	if err != nil {
		return nil, err
	}
	trains = filter.Apply(all)
	span.SetAttribute("trains", len(trains))
	return trains, nil
}

// LegTickets returns the unfiltered offerings between two telecodes, served
// from the cache when present.
func (s *Service) LegTickets(ctx context.Context, fromCode, toCode, date string) ([]domain.TrainInfo, error) {
	return s.fetchTickets(ctx, fromCode, toCode, date, false)
}

func (s *Service) fetchTickets(ctx context.Context, fromCode, toCode, date string, force bool) ([]domain.TrainInfo, error) {
	path := cache.NewPath(ticketsRoot, date, fromCode+"-"+toCode)
	if !force {
		cached, ok, err := cache.Lookup[[]domain.TrainInfo](s.tree, path)
		if err != nil {
			return nil, err
		}
		if ok {
			s.logger.Debug("cache hit " + path.String())
			return cached, nil
		}
	}

	trains, err := s.upstream.QueryTickets(ctx, fromCode, toCode, date)
	if err != nil {
		return nil, domain.Annotate(err, "query", path.String())
	}

	ttl := s.ttl.TicketTTL
	if len(trains) == 0 {
		ttl = s.ttl.EmptyTTL
	}
	if err := cache.Store(s.tree, path, trains, ttl); err != nil {
		return nil, err
	}
	if len(trains) > 0 {
		s.SaveSnapshot(date, fromCode+"-"+toCode, domain.SnapshotTickets, trains)
	}
	return trains, nil
}

// ResolveRunNumber returns the run number of the run whose code equals code on date.
func (s *Service) ResolveRunNumber(ctx context.Context, code, date string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	records, err := s.runs.Lookup(ctx, code, date, true)
	if err != nil {
		return "", err
	}
	for _, r := range records {
		if r.RunCode == code {
			return r.RunNumber, nil
		}
	}
	return "", domain.Annotate(domain.ErrRunNotFound, "run_code", code, "date", date)
}

// Schedule returns the stop list of the run in q. A missing run number is
// completed from the run code first.
func (s *Service) Schedule(ctx context.Context, q domain.ScheduleQuery) (schedule *domain.TrainSchedule, err error) {
	ctx, span := s.tracer.Start(ctx, "query.schedule",
		ports.WithAttribute("date", q.Date),
		ports.WithAttribute("run_code", q.RunCode))
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	if err := q.Validate(); err != nil {
		return nil, err
	}
	runNumber := q.RunNumber
	if runNumber == "" {
		runNumber, err = s.ResolveRunNumber(ctx, q.RunCode, q.Date)
		if err != nil {
			return nil, err
		}
	}

	path := cache.NewPath(scheduleRoot, q.Date, runNumber)
	cached, ok, err := cache.Lookup[*domain.TrainSchedule](s.tree, path)
	if err != nil {
		return nil, err
	}
	if ok {
		s.logger.Debug("cache hit " + path.String())
		return cached, nil
	}

	schedule, err = s.upstream.QuerySchedule(ctx, runNumber, q.Date)
	if err != nil {
		return nil, err
	}
	if err := cache.Store(s.tree, path, schedule, s.ttl.ScheduleTTL); err != nil {
		return nil, err
	}

	key := q.RunCode
	if key == "" {
		key = runNumber
	}
	s.SaveSnapshot(q.Date, key, domain.SnapshotSchedule, schedule)
	return schedule, nil
}

// SaveSnapshot persists a query result under category. Failures are logged
// and otherwise ignored.
func (s *Service) SaveSnapshot(date, key, category string, payload any) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("encoding " + category + " snapshot: " + err.Error())
		return
	}
	err = s.store.PutSnapshot(domain.Snapshot{
		Date:      date,
		QueryKey:  key,
		Category:  category,
		Payload:   data,
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("saving " + category + " snapshot: " + err.Error())
	}
}
