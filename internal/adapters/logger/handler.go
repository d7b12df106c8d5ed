package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/railfare/internal/ui/output"
	"go.trai.ch/railfare/internal/ui/style"
)

// badge is the icon and colour a log line is drawn with.
type badge struct {
	icon  string
	color lipgloss.Color
}

// badgeFor returns the badge of level. Info lines carry no icon.
func badgeFor(level slog.Level) badge {
	switch {
	case level >= slog.LevelError:
		return badge{icon: style.Cross, color: style.Red}
	case level >= slog.LevelWarn:
		return badge{icon: style.Warning, color: style.Yellow}
	case level < slog.LevelInfo:
		return badge{icon: style.Circle, color: style.Slate}
	default:
		return badge{color: style.Slate}
	}
}

// PrettyHandler is a slog.Handler that writes one coloured line per record:
// the level badge, the message, then key=value pairs. Keys are prefixed with
// the dotted path of the groups opened on the handler.
type PrettyHandler struct {
	out    *termenv.Output
	mu     *sync.Mutex
	level  slog.Leveler
	prefix string
	bound  string
}

// NewPrettyHandler creates a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{
		out:   output.New(w),
		mu:    &sync.Mutex{},
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	b := badgeFor(r.Level)

	var line strings.Builder
	if b.icon != "" {
		line.WriteString(b.icon + " ")
	}
	line.WriteString(r.Message)
	line.WriteString(h.bound)
	r.Attrs(func(attr slog.Attr) bool {
		appendAttr(&line, h.prefix, attr)
		return true
	})

	styled := h.out.String(line.String()).Foreground(termenv.RGBColor(string(b.color)))

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a handler that appends attrs to every line. The attrs are
// keyed under the groups open at the time of the call.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var bound strings.Builder
	bound.WriteString(h.bound)
	for _, attr := range attrs {
		appendAttr(&bound, h.prefix, attr)
	}
	next := *h
	next.bound = bound.String()
	return &next
}

// WithGroup returns a handler that nests subsequent keys under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// appendAttr writes " key=value" for attr, expanding group values into one
// pair per member.
func appendAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		inner := prefix
		if attr.Key != "" {
			inner = prefix + attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			appendAttr(b, inner, member)
		}
		return
	}
	b.WriteString(" " + prefix + attr.Key + "=" + quoteValue(attr.Value.String()))
}

// quoteValue quotes values that would otherwise not read back as one token.
func quoteValue(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
