package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/railfare/internal/core/ports"
	"go.trai.ch/railfare/internal/ui/style"
)

// Bridge is a span processor that reports span progress to a renderer. Spans
// that carry "from" and "to" attributes are labelled with their leg.
type Bridge struct {
	renderer ports.Renderer
}

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// NewBridge returns a Bridge reporting to renderer. A nil renderer disables it.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart reports the span under its leg label.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	id, ok := b.spanID(s.SpanContext())
	if !ok {
		return
	}
	b.renderer.OnSpanStart(id, parentSpanID(parent), spanLabel(s.Name(), s.Attributes()), s.StartTime())
}

// OnEnd reports the outcome of the span.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	id, ok := b.spanID(s.SpanContext())
	if !ok {
		return
	}
	b.renderer.OnSpanEnd(id, s.EndTime(), spanError(s))
}

// ForceFlush does nothing; spans are reported synchronously.
func (b *Bridge) ForceFlush(context.Context) error { return nil }

// Shutdown does nothing.
func (b *Bridge) Shutdown(context.Context) error { return nil }

func (b *Bridge) spanID(sc trace.SpanContext) (string, bool) {
	if b.renderer == nil || !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

func parentSpanID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}

// spanLabel appends "from→to" to name when both attributes are set.
func spanLabel(name string, attrs []attribute.KeyValue) string {
	var from, to string
	for _, kv := range attrs {
		switch kv.Key {
		case "from":
			from = kv.Value.Emit()
		case "to":
			to = kv.Value.Emit()
		}
	}
	if from == "" || to == "" {
		return name
	}
	return name + " " + from + style.Arrow + to
}

func spanError(s sdktrace.ReadOnlySpan) error {
	status := s.Status()
	if status.Code != codes.Error {
		return nil
	}
	if status.Description == "" {
		return errors.New(s.Name() + " failed")
	}
	return errors.New(status.Description)
}
