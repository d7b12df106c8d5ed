package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/railfare/cmd/railfare/commands"
	"go.trai.ch/railfare/internal/app"
	"go.trai.ch/railfare/internal/build"
	"go.trai.ch/railfare/internal/core/domain"
)

type mockApp struct {
	tickets  *domain.TicketQuery
	schedule *domain.ScheduleQuery
	fare     *domain.FareQuery
	keyword  string
	exact    bool
	limit    int
	opts     app.OutputOptions
	called   []string
	logJSON  bool
	verbose  bool
	err      error
}

func (m *mockApp) ShowTickets(_ context.Context, q domain.TicketQuery, opts app.OutputOptions) error {
	m.tickets, m.opts = &q, opts
	m.called = append(m.called, "tickets")
	return m.err
}

func (m *mockApp) ShowSchedule(_ context.Context, q domain.ScheduleQuery, opts app.OutputOptions) error {
	m.schedule, m.opts = &q, opts
	m.called = append(m.called, "schedule")
	return m.err
}

func (m *mockApp) ShowFare(_ context.Context, q domain.FareQuery, opts app.OutputOptions) error {
	m.fare, m.opts = &q, opts
	m.called = append(m.called, "fare")
	return m.err
}

func (m *mockApp) ShowStations(_ context.Context, keyword string, exact bool, limit int, opts app.OutputOptions) error {
	m.keyword, m.exact, m.limit, m.opts = keyword, exact, limit, opts
	m.called = append(m.called, "stations")
	return m.err
}

func (m *mockApp) RefreshStations(context.Context) error {
	m.called = append(m.called, "refresh")
	return m.err
}

func (m *mockApp) Clean(context.Context) (domain.CleanupReport, error) {
	m.called = append(m.called, "clean")
	return domain.CleanupReport{}, m.err
}

func (m *mockApp) Serve(context.Context) error {
	m.called = append(m.called, "serve")
	return m.err
}

func (m *mockApp) Status(context.Context) error {
	m.called = append(m.called, "status")
	return m.err
}

func (m *mockApp) ConfigureLogging(json, verbose bool) {
	m.logJSON, m.verbose = json, verbose
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m).WithClock(func() time.Time {
		return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Tickets(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "tickets", "广州南", "阳江",
			"-d", "2026-10-20", "-t", "D*,G2", "-s", "江门", "--exact",
			"--after", "08:00", "--before", "20:00", "--force", "-o", "json", "--remote")
		require.NoError(t, err)

		require.NotNil(t, m.tickets)
		assert.Equal(t, domain.TicketQuery{
			Date:         "2026-10-20",
			From:         "广州南",
			To:           "阳江",
			Trains:       []string{"D*", "G2"},
			Stations:     []string{"江门"},
			Exact:        true,
			DepartAfter:  "08:00",
			DepartBefore: "20:00",
			Force:        true,
		}, *m.tickets)
		assert.Equal(t, app.OutputOptions{OutputMode: "json", Remote: true}, m.opts)
	})

	t.Run("defaults the date to today", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "tickets", "IZQ", "YJQ")
		require.NoError(t, err)
		assert.Equal(t, "2026-10-16", m.tickets.Date)
		assert.Equal(t, "auto", m.opts.OutputMode)
	})

	t.Run("requires both stations", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "tickets", "IZQ")
		require.Error(t, err)
		assert.Empty(t, m.called)
	})
}

func TestCommands_Schedule(t *testing.T) {
	t.Run("run code", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "schedule", "K1234", "-d", "2026-10-20")
		require.NoError(t, err)
		assert.Equal(t, domain.ScheduleQuery{Date: "2026-10-20", RunCode: "K1234"}, *m.schedule)
	})

	t.Run("run number only", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "schedule", "--run-number", "6i000K123400")
		require.NoError(t, err)
		assert.Equal(t, "6i000K123400", m.schedule.RunNumber)
		assert.Empty(t, m.schedule.RunCode)
	})

	t.Run("shows usage without a run", func(t *testing.T) {
		m := &mockApp{}
		out, err := execute(t, m, "schedule")
		require.NoError(t, err)
		assert.Contains(t, out, "Usage:")
		assert.Empty(t, m.called)
	})
}

func TestCommands_Fare(t *testing.T) {
	t.Run("waypoints", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "fare", "K1234", "广州南", "阳江", "-d", "2026-10-20", "--via", "江门,台山")
		require.NoError(t, err)
		assert.Equal(t, domain.FareQuery{
			Date:      "2026-10-20",
			RunCode:   "K1234",
			From:      "广州南",
			To:        "阳江",
			Waypoints: []string{"江门", "台山"},
		}, *m.fare)
	})

	t.Run("partitions", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "fare", "K1234", "广州南", "阳江", "-k", "3")
		require.NoError(t, err)
		assert.Equal(t, 3, m.fare.Partitions)
		assert.Nil(t, m.fare.Waypoints)
	})

	t.Run("via and partitions exclude each other", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "fare", "K1234", "广州南", "阳江", "-k", "3", "--via", "江门")
		require.Error(t, err)
		assert.Empty(t, m.called)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		m := &mockApp{err: domain.ErrIncompleteFare}
		_, err := execute(t, m, "fare", "K1234", "广州南", "阳江")
		require.ErrorIs(t, err, domain.ErrIncompleteFare)
	})
}

func TestCommands_Stations(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "stations", "search", "yj", "--exact", "-l", "5")
	require.NoError(t, err)
	assert.Equal(t, "yj", m.keyword)
	assert.True(t, m.exact)
	assert.Equal(t, 5, m.limit)

	_, err = execute(t, m, "stations", "refresh")
	require.NoError(t, err)
	assert.Equal(t, []string{"stations", "refresh"}, m.called)
}

func TestCommands_Maintenance(t *testing.T) {
	m := &mockApp{}
	for _, cmd := range []string{"serve", "status", "clean"} {
		_, err := execute(t, m, cmd)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"serve", "status", "clean"}, m.called)

	failing := &mockApp{err: errors.New("simulated error")}
	_, err := execute(t, failing, "clean")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_LoggingFlags(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "clean", "--log-json", "--verbose")
	require.NoError(t, err)
	assert.True(t, m.logJSON)
	assert.True(t, m.verbose)
}

func TestCommands_VersionAndVerboseFlagsCoexist(t *testing.T) {
	for _, args := range [][]string{
		{"--version"},
		{"-v"},
		{"--verbose", "status"},
		{"--version", "--verbose"},
	} {
		m := &mockApp{}
		var (
			out string
			err error
		)
		require.NotPanics(t, func() {
			out, err = execute(t, m, args...)
		}, "args %v", args)
		require.NoError(t, err, "args %v", args)
		if args[0] != "--verbose" {
			assert.Contains(t, out, "railfare version "+build.Version)
		}
	}
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "railfare version "+build.Version)
}
