package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/railfare/internal/adapters/logger"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(lg *logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(lg *logger.Logger) { lg.Info("resolved 3 legs") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(lg *logger.Logger) { lg.Warn("leg 江门 -> 阳江 dropped") },
			goldenName: "warn_basic",
		},
		{
			name: "debug hidden by default",
			log: func(lg *logger.Logger) {
				lg.Debug("session refreshed")
				lg.Info("done")
			},
			goldenName: "debug_hidden",
		},
		{
			name: "debug when verbose",
			log: func(lg *logger.Logger) {
				lg.SetVerbose(true)
				lg.Debug("session refreshed")
			},
			goldenName: "debug_verbose",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.Wrap(
		domain.Annotate(domain.ErrUpstream, "endpoint", "fetch_trains", "status_code", 502),
		"query tickets",
	)
	lg.Error(err)

	g := goldie.New(t)
	g.Assert(t, "error_chain", buf.Bytes())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(domain.Annotate(domain.ErrUnknownStation, "name", "火星"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "unknown station", record["error"])
	assert.Equal(t, "火星", record["name"])
}

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "standard error",
			err:  errors.New("boom"),
			want: []string{"boom"},
		},
		{
			name: "annotated sentinel",
			err:  domain.Annotate(domain.ErrUnknownStation, "name", "x"),
			want: []string{"unknown station"},
		},
		{
			name: "wrapped chain",
			err:  zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle"), "outer"),
			want: []string{"outer", "middle", "root cause"},
		},
		{
			name: "annotated standard error",
			err:  domain.Annotate(errors.New("dial tcp: refused"), "endpoint", "fetch_cookies"),
			want: []string{"dial tcp: refused"},
		},
		{
			name: "sentinel with cause",
			err: domain.Caused(domain.ErrSessionRefresh,
				domain.Annotate(domain.ErrUpstream, "endpoint", "fetch_cookies")),
			want: []string{"failed to refresh session", "upstream request failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)
			got := make([]string, 0, len(entries))
			for _, e := range entries {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatErrorEntries_Metadata(t *testing.T) {
	entries := logger.CollectErrorEntries(
		domain.Annotate(domain.ErrStationOrder, "to", "广州南", "from", "阳江"),
	)
	assert.Equal(t,
		"Error: origin must precede destination on the route (from=阳江 to=广州南)",
		logger.FormatErrorEntries(entries),
	)
}

func TestFormatErrorEntries_Multiline(t *testing.T) {
	entries := []logger.ErrorEntry{
		{Message: "first\nsecond"},
		{Message: "cause\ndetail"},
	}
	want := "Error: first\n" +
		"       second\n" +
		"\n" +
		"  Caused by:\n" +
		"    → cause\n" +
		"      detail"
	assert.Equal(t, want, logger.FormatErrorEntries(entries))
}
