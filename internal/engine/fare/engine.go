// Package fare resolves the fare of one run between two of its stops, optionally
// splitting the trip into legs that are priced separately and summed.
package fare

import (
	"context"
	"strings"

	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Source is the query layer the engine reads tickets and schedules from.
type Source interface {
	LegTickets(ctx context.Context, fromCode, toCode, date string) ([]domain.TrainInfo, error)
	Schedule(ctx context.Context, q domain.ScheduleQuery) (*domain.TrainSchedule, error)
	ResolveRunNumber(ctx context.Context, code, date string) (string, error)
	SaveSnapshot(date, key, category string, payload any)
}

// Engine resolves segmented fares.
type Engine struct {
	queries  Source
	stations ports.StationLookup
	tracer   ports.Tracer
	logger   ports.Logger
}

// NewEngine creates an Engine.
func NewEngine(queries Source, stations ports.StationLookup, tracer ports.Tracer, logger ports.Logger) *Engine {
	return &Engine{
		queries:  queries,
		stations: stations,
		tracer:   tracer,
		logger:   logger,
	}
}

// leg is one planned ticket query.
type leg struct {
	from     domain.Station
	to       domain.Station
	fromStop domain.StopInfo
	toStop   domain.StopInfo
	date     string
}

// route is the validated part of a fare query.
type route struct {
	runNumber string
	schedule  *domain.TrainSchedule
	fromIdx   int
	toIdx     int
}

// Resolve prices q. When one or more legs cannot be matched the partial result
// is returned together with an error wrapping domain.ErrIncompleteFare.
func (e *Engine) Resolve(ctx context.Context, q domain.FareQuery) (result *domain.FareResult, err error) {
	ctx, span := e.tracer.Start(ctx, "fare.resolve",
		ports.WithAttribute("date", q.Date),
		ports.WithAttribute("run_code", q.RunCode),
		ports.WithAttribute("from", q.From),
		ports.WithAttribute("to", q.To))
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	if err := q.Validate(); err != nil {
		return nil, err
	}

	r, err := e.route(ctx, q)
	if err != nil {
		return nil, err
	}
	names, err := e.waypoints(q, r)
	if err != nil {
		return nil, err
	}
	byName, err := e.lookupStations(ctx, names)
	if err != nil {
		return nil, err
	}
	full, legs, err := plan(r, names, byName, q.Date)
	if err != nil {
		return nil, err
	}
	span.SetAttribute("legs", len(legs))

	fullOutcome, outcomes, err := e.fetch(ctx, r.runNumber, full, legs)
	if err != nil {
		return nil, err
	}

	result, err = aggregate(r, fullOutcome, outcomes)
	if err != nil {
		return result, err
	}
	e.queries.SaveSnapshot(q.Date, snapshotKey(r.runNumber, names), domain.SnapshotFare, result)
	return result, nil
}

// route resolves the run number, fetches its schedule and checks the stop order.
func (e *Engine) route(ctx context.Context, q domain.FareQuery) (route, error) {
	runNumber := q.RunNumber
	if runNumber == "" {
		var err error
		runNumber, err = e.queries.ResolveRunNumber(ctx, q.RunCode, q.Date)
		if err != nil {
			return route{}, err
		}
	}

	schedule, err := e.queries.Schedule(ctx, domain.ScheduleQuery{
		Date:      q.Date,
		RunCode:   q.RunCode,
		RunNumber: runNumber,
	})
	if err != nil {
		return route{}, err
	}

	fromIdx, ok := schedule.IndexOf(q.From)
	if !ok {
		return route{}, domain.Annotate(domain.ErrStationNotOnRoute, "station", q.From, "run_number", runNumber)
	}
	toIdx, ok := schedule.IndexOf(q.To)
	if !ok {
		return route{}, domain.Annotate(domain.ErrStationNotOnRoute, "station", q.To, "run_number", runNumber)
	}
	if fromIdx >= toIdx {
		return route{}, domain.Annotate(domain.ErrStationOrder, "from", q.From, "to", q.To)
	}
	return route{runNumber: runNumber, schedule: schedule, fromIdx: fromIdx, toIdx: toIdx}, nil
}

// waypoints returns the ordered station names of the trip including both ends.
func (e *Engine) waypoints(q domain.FareQuery, r route) ([]string, error) {
	var between []string
	switch {
	case len(q.Waypoints) > 0:
		prev, prevName := r.fromIdx, q.From
		for _, name := range q.Waypoints {
			idx, ok := r.schedule.IndexOf(name)
			if !ok {
				return nil, domain.Annotate(domain.ErrStationNotOnRoute, "station", name, "run_number", r.runNumber)
			}
			if idx <= prev || idx >= r.toIdx {
				return nil, domain.Annotate(domain.ErrStationOrder, "from", prevName, "to", name, "destination", q.To)
			}
			prev, prevName = idx, name
		}
		between = q.Waypoints
	case q.Partitions >= 2:
		between = PartitionWaypoints(r.schedule.Between(r.fromIdx, r.toIdx), q.Partitions)
		if len(between) > 0 {
			e.logger.Info(q.From + "-" + q.To + ": waypoints " + strings.Join(between, ","))
		}
	}

	names := make([]string, 0, len(between)+2)
	names = append(names, q.From)
	names = append(names, between...)
	return append(names, q.To), nil
}

// lookupStations resolves every name in one batch and keys the result by name.
func (e *Engine) lookupStations(ctx context.Context, names []string) (map[string]domain.Station, error) {
	found, err := e.stations.LookupByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]domain.Station, len(found))
	for _, st := range found {
		byName[st.Name] = st
	}
	for _, name := range names {
		if _, ok := byName[name]; !ok {
			return nil, domain.Annotate(domain.ErrWaypointMismatch,
				"requested", strings.Join(names, ","), "missing", name)
		}
	}
	return byName, nil
}

// plan builds the full-span query and, when waypoints are present, one query
// per adjacent pair.
func plan(r route, names []string, byName map[string]domain.Station, date string) (leg, []leg, error) {
	newLeg := func(from, to string) (leg, error) {
		fromStop, _ := r.schedule.Stop(from)
		toStop, _ := r.schedule.Stop(to)
		legDate, err := domain.ShiftDate(date, fromStop.DepartDayOffset())
		if err != nil {
			return leg{}, err
		}
		return leg{
			from:     byName[from],
			to:       byName[to],
			fromStop: fromStop,
			toStop:   toStop,
			date:     legDate,
		}, nil
	}

	full, err := newLeg(names[0], names[len(names)-1])
	if err != nil {
		return leg{}, nil, err
	}
	if len(names) <= 2 {
		return full, nil, nil
	}

	legs := make([]leg, 0, len(names)-1)
	for i := range len(names) - 1 {
		l, err := newLeg(names[i], names[i+1])
		if err != nil {
			return leg{}, nil, err
		}
		legs = append(legs, l)
	}
	return full, legs, nil
}

// fetch queries the full span and every leg concurrently. Any failed query
// fails the whole fetch.
func (e *Engine) fetch(ctx context.Context, runNumber string, full leg, legs []leg) (domain.LegOutcome, []domain.LegOutcome, error) {
	var (
		g           errgroup.Group
		fullOutcome domain.LegOutcome
		outcomes    = make([]domain.LegOutcome, len(legs))
	)

	g.Go(func() error {
		o, err := e.fetchLeg(ctx, runNumber, full)
		fullOutcome = o
		return err
	})
	for i, l := range legs {
		g.Go(func() error {
			o, err := e.fetchLeg(ctx, runNumber, l)
			outcomes[i] = o
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return domain.LegOutcome{}, nil, err
	}
	return fullOutcome, outcomes, nil
}

// fetchLeg runs one ticket query and classifies the offerings it returned.
func (e *Engine) fetchLeg(ctx context.Context, runNumber string, l leg) (outcome domain.LegOutcome, err error) {
	ctx, span := e.tracer.Start(ctx, "fare.leg",
		ports.WithAttribute("from", l.from.Name),
		ports.WithAttribute("to", l.to.Name),
		ports.WithAttribute("date", l.date))
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	trains, err := e.queries.LegTickets(ctx, l.from.Code, l.to.Code, l.date)
	if err != nil {
		return domain.LegOutcome{}, err
	}

	outcome = domain.LegOutcome{From: l.from.Name, To: l.to.Name, Date: l.date}
	var match *domain.TrainInfo
	for i := range trains {
		if trains[i].Matches(runNumber, l.from.Code, l.to.Code) {
			outcome.Matches++
			match = &trains[i]
		}
	}

	switch {
	case outcome.Matches == 0:
		outcome.Status = domain.LegNotFound
	case outcome.Matches > 1:
		outcome.Status = domain.LegAmbiguous
	default:
		train := *match
		train.FromStop = &l.fromStop
		train.ToStop = &l.toStop
		outcome.Train = &train
		if _, ok := train.LowestPrice(); ok {
			outcome.Status = domain.LegFound
		} else {
			outcome.Status = domain.LegUnpriced
		}
	}
	span.SetAttribute("status", outcome.Status.String())

	if outcome.Status != domain.LegFound {
		e.logger.Warn(l.from.Name + "-" + l.to.Name + " on " + l.date +
			": expected one priced offering of " + runNumber + ", got " + outcome.Status.String())
	}
	return outcome, nil
}

// aggregate folds the leg outcomes into a fare. The full span must resolve;
// unresolved legs are reported as gaps and leave the total unset.
func aggregate(r route, full domain.LegOutcome, outcomes []domain.LegOutcome) (*domain.FareResult, error) {
	if full.Status != domain.LegFound {
		return nil, domain.Annotate(domain.ErrLegMismatch,
			"from", full.From, "to", full.To, "status", full.Status.String(), "matches", full.Matches)
	}

	train := *full.Train
	train.Stops = r.schedule.Stops
	raw, _ := train.LowestPrice()

	result := &domain.FareResult{
		Train:    &train,
		Legs:     make([]domain.TrainInfo, 0, len(outcomes)),
		RawPrice: raw,
	}
	if len(outcomes) == 0 {
		result.TotalPrice = raw
		result.Complete = true
		return result, nil
	}

	var total domain.Price
	for _, o := range outcomes {
		if o.Status != domain.LegFound {
			result.Gaps = append(result.Gaps, domain.LegGap{
				From:    o.From,
				To:      o.To,
				Date:    o.Date,
				Status:  o.Status,
				Matches: o.Matches,
			})
			continue
		}
		price, _ := o.Train.LowestPrice()
		total += price
		result.Legs = append(result.Legs, *o.Train)
	}

	if len(result.Gaps) > 0 {
		return result, domain.Annotate(domain.ErrIncompleteFare,
			"run_number", r.runNumber, "gaps", len(result.Gaps), "legs", len(outcomes))
	}
	result.TotalPrice = total
	result.Complete = true
	return result, nil
}

func snapshotKey(runNumber string, names []string) string {
	return runNumber + ":" + strings.Join(names, "-")
}
