// Package app implements the application layer for railfare.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.trai.ch/railfare/internal/adapters/daemon"
	"go.trai.ch/railfare/internal/adapters/detector"
	"go.trai.ch/railfare/internal/adapters/linear"
	"go.trai.ch/railfare/internal/adapters/telemetry"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
	"go.trai.ch/railfare/internal/ui/output"
	"go.trai.ch/zerr"
)

// TicketService answers ticket and schedule queries.
type TicketService interface {
	Tickets(ctx context.Context, q domain.TicketQuery) ([]domain.TrainInfo, error)
	Schedule(ctx context.Context, q domain.ScheduleQuery) (*domain.TrainSchedule, error)
}

// FareResolver prices a run between two of its stops.
type FareResolver interface {
	Resolve(ctx context.Context, q domain.FareQuery) (*domain.FareResult, error)
}

// StationCatalog searches and maintains the station roster.
type StationCatalog interface {
	Search(ctx context.Context, keyword string, exact bool, limit int) ([]domain.Station, error)
	Refresh(ctx context.Context) (bool, error)
	Watch(ctx context.Context) error
}

// App represents the main application logic. It implements ports.Queries on
// top of the engines, which is what the daemon serves.
type App struct {
	tickets  TicketService
	fares    FareResolver
	stations StationCatalog
	store    ports.Store
	config   *domain.Config
	logger   ports.Logger

	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// New creates a new App instance.
func New(
	tickets TicketService,
	fares FareResolver,
	stations StationCatalog,
	store ports.Store,
	cfg *domain.Config,
	log ports.Logger,
) *App {
	return &App{
		tickets:  tickets,
		fares:    fares,
		stations: stations,
		store:    store,
		config:   cfg,
		logger:   log,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		now:      time.Now,
	}
}

// WithOutput redirects rendered results and progress lines.
// This is primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithClock replaces the clock used for store cleanup.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Tickets returns the filtered offerings for q.
func (a *App) Tickets(ctx context.Context, q domain.TicketQuery) ([]domain.TrainInfo, error) {
	return a.tickets.Tickets(ctx, q)
}

// Schedule returns the stop list of the run in q.
func (a *App) Schedule(ctx context.Context, q domain.ScheduleQuery) (*domain.TrainSchedule, error) {
	return a.tickets.Schedule(ctx, q)
}

// Fare resolves the fare of the run in q.
func (a *App) Fare(ctx context.Context, q domain.FareQuery) (*domain.FareResult, error) {
	return a.fares.Resolve(ctx, q)
}

// Stations searches the station roster.
func (a *App) Stations(ctx context.Context, keyword string, exact bool, limit int) ([]domain.Station, error) {
	return a.stations.Search(ctx, keyword, exact, limit)
}

// OutputOptions controls where a query runs and how its result is shown.
type OutputOptions struct {
	// OutputMode is the --output flag value: auto, pretty, linear or json.
	OutputMode string
	// Remote sends the query to the daemon instead of answering it in process.
	Remote bool
}

type session struct {
	queries  ports.Queries
	renderer ports.Renderer
	close    func()
}

func (a *App) open(opts OutputOptions) (*session, error) {
	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)

	var renderer ports.Renderer
	switch mode {
	case detector.ModeJSON:
		renderer = linear.NewJSONRenderer()
	case detector.ModePretty:
		renderer = linear.NewRenderer(a.stdout, a.stderr, linear.Options{Profile: output.ColorProfile})
	default:
		renderer = linear.NewRenderer(a.stdout, a.stderr, linear.Options{Progress: !opts.Remote})
	}

	// Spans started by the engines are reported to the renderer.
	shutdown := telemetry.Setup(renderer)
	closers := []func(){func() { _ = shutdown(context.Background()) }}

	var queries ports.Queries = a
	if opts.Remote {
		client, err := daemon.Dial(a.config.Server)
		if err != nil {
			closers[0]()
			return nil, err
		}
		queries = client
		closers = append(closers, func() { _ = client.Close() })
	}

	return &session{
		queries:  queries,
		renderer: renderer,
		close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}

// ShowTickets answers q and renders the offerings.
func (a *App) ShowTickets(ctx context.Context, q domain.TicketQuery, opts OutputOptions) error {
	s, err := a.open(opts)
	if err != nil {
		return err
	}
	defer s.close()

	trains, err := s.queries.Tickets(ctx, q)
	if err != nil {
		return err
	}
	return s.renderer.RenderTickets(a.stdout, trains)
}

// ShowSchedule answers q and renders the stop list.
func (a *App) ShowSchedule(ctx context.Context, q domain.ScheduleQuery, opts OutputOptions) error {
	s, err := a.open(opts)
	if err != nil {
		return err
	}
	defer s.close()

	schedule, err := s.queries.Schedule(ctx, q)
	if err != nil {
		return err
	}
	return s.renderer.RenderSchedule(a.stdout, schedule)
}

// ShowFare resolves q and renders the result. An incomplete fare is rendered
// before its error is returned.
func (a *App) ShowFare(ctx context.Context, q domain.FareQuery, opts OutputOptions) error {
	s, err := a.open(opts)
	if err != nil {
		return err
	}
	defer s.close()

	result, err := s.queries.Fare(ctx, q)
	if result != nil {
		if renderErr := s.renderer.RenderFare(a.stdout, result); renderErr != nil {
			return errors.Join(err, renderErr)
		}
	}
	return err
}

// ShowStations searches the roster and renders the matches.
func (a *App) ShowStations(ctx context.Context, keyword string, exact bool, limit int, opts OutputOptions) error {
	s, err := a.open(opts)
	if err != nil {
		return err
	}
	defer s.close()

	stations, err := s.queries.Stations(ctx, keyword, exact, limit)
	if err != nil {
		return err
	}
	return s.renderer.RenderStations(a.stdout, stations)
}

// RefreshStations fetches the roster from the upstream and stores it when it changed.
func (a *App) RefreshStations(ctx context.Context) error {
	changed, err := a.stations.Refresh(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to refresh station roster")
	}
	if !changed {
		a.logger.Info("station roster is up to date")
	}
	return nil
}

// Clean removes persisted run numbers and snapshots past their retention window.
func (a *App) Clean(_ context.Context) (domain.CleanupReport, error) {
	report, err := a.store.Cleanup(a.now(), a.config.Retention)
	if err != nil {
		return report, err
	}
	a.logger.Info(fmt.Sprintf("removed %d run-number files and %d snapshots",
		report.RunNumberFiles, report.Snapshots))
	return report, nil
}

// Serve runs the query daemon until ctx is done or it has been idle for the
// configured timeout.
func (a *App) Serve(ctx context.Context) error {
	if a.config.Retention.AutoCleanRunNumbers {
		if _, err := a.Clean(ctx); err != nil {
			a.logger.Warn("startup cleanup failed: " + err.Error())
		}
	}
	if err := a.stations.Watch(ctx); err != nil {
		a.logger.Warn("station roster will not be reloaded on change: " + err.Error())
	}

	lis, err := daemon.Listen(a.config.Server)
	if err != nil {
		return err
	}
	server := daemon.NewServer(a, daemon.NewLifecycle(a.config.Server.IdleTimeout), a.logger)
	if err := server.Serve(ctx, lis); err != nil && !errors.Is(err, context.Canceled) {
		return zerr.Wrap(err, "daemon stopped")
	}
	return nil
}

// Status asks a running daemon for its status and prints it.
func (a *App) Status(ctx context.Context) error {
	client, err := daemon.Dial(a.config.Server)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	status, err := client.Ping(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "daemon running (pid %d, uptime %ds, idle shutdown in %ds)\n",
		status.PID, status.UptimeSeconds, status.IdleRemainingSeconds)
	return err
}

// ConfigureLogging switches the logger to JSON or verbose output when it supports it.
func (a *App) ConfigureLogging(json, verbose bool) {
	type configurable interface {
		SetJSON(enable bool)
		SetVerbose(enable bool)
	}
	if l, ok := a.logger.(configurable); ok {
		l.SetJSON(json)
		l.SetVerbose(verbose)
	}
}
