package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/railfare/internal/adapters/logger"
)

func TestPrettyHandler_AttrsAndGroups(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name string
		log  func(l *slog.Logger)
		want string
	}{
		{
			name: "record attrs",
			log:  func(l *slog.Logger) { l.Info("leg priced", "from", "广州南", "price", "45.00") },
			want: "leg priced from=广州南 price=45.00\n",
		},
		{
			name: "values with spaces are quoted",
			log:  func(l *slog.Logger) { l.Warn("dropped", "reason", "no seats left", "note", "") },
			want: "! dropped reason=\"no seats left\" note=\"\"\n",
		},
		{
			name: "bound attrs keep their group",
			log: func(l *slog.Logger) {
				l.With("run", "K1234").WithGroup("leg").With("from", "江门").Info("matched", "to", "阳江")
			},
			want: "matched run=K1234 leg.from=江门 leg.to=阳江\n",
		},
		{
			name: "nested groups",
			log: func(l *slog.Logger) {
				l.WithGroup("fare").WithGroup("leg").Debug("split", slog.Group("stop", "index", 2))
			},
			want: "○ split fare.leg.stop.index=2\n",
		},
		{
			name: "empty group is dropped",
			log:  func(l *slog.Logger) { l.Error("failed", slog.Group("meta")) },
			want: "✗ failed\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			h := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			tt.log(slog.New(h))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_LevelFilter(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := slog.New(logger.NewPrettyHandler(buf, nil))
	l.Debug("hidden")
	l.Info("shown")

	assert.Equal(t, "shown\n", buf.String())
}
