package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/railfare/internal/adapters/telemetry"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
	"go.trai.ch/railfare/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = telemetry.NoOpSpan{}
	var _ sdktrace.SpanProcessor = (*telemetry.Bridge)(nil)
}

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return sr
}

func TestOTelTracer_Attributes(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(t.Context(), "leg",
		ports.WithAttribute("from", "广州南"),
		ports.WithAttribute("legs", 2),
	)
	span.SetAttribute("price", domain.Price(4500))
	span.SetAttribute("complete", true)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "广州南", attrs["from"].AsString())
	assert.Equal(t, int64(2), attrs["legs"].AsInt64())
	assert.Equal(t, "45.00", attrs["price"].AsString())
	assert.True(t, attrs["complete"].AsBool())
}

func TestOTelTracer_RecordError(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(t.Context(), "fetch_trains")
	span.RecordError(nil)
	span.RecordError(errors.New("status 502"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "status 502", spans[0].Status().Description)
}

func TestBridge_ForwardsLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	var rootID string
	renderer.EXPECT().OnSpanStart(gomock.Any(), "", "resolve", gomock.Any()).
		Do(func(id, _, _ string, _ time.Time) { rootID = id })
	renderer.EXPECT().OnSpanStart(gomock.Any(), gomock.Any(), "leg", gomock.Any()).
		Do(func(_, parent, _ string, _ time.Time) { assert.Equal(t, rootID, parent) })
	renderer.EXPECT().OnSpanEnd(gomock.Any(), gomock.Any(), gomock.Not(nil))
	renderer.EXPECT().OnSpanEnd(gomock.Any(), gomock.Any(), nil)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(renderer)))
	defer func() { _ = tp.Shutdown(context.Background()) }()
	tracer := tp.Tracer("test")

	ctx, root := tracer.Start(t.Context(), "resolve")
	_, leg := tracer.Start(ctx, "leg")
	leg.SetStatus(codes.Error, "")
	leg.End()
	root.End()
}

func TestBridge_NilRenderer(_ *testing.T) {
	bridge := telemetry.NewBridge(nil)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	_, span := tp.Tracer("test").Start(context.Background(), "noop")
	span.End()
	_ = bridge.ForceFlush(context.Background())
	_ = bridge.Shutdown(context.Background())
}

func TestSetup_InstallsBridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().OnSpanStart(gomock.Any(), "", "fetch_train_schedule", gomock.Any())
	renderer.EXPECT().OnSpanEnd(gomock.Any(), gomock.Any(), nil)

	prev := otel.GetTracerProvider()
	shutdown := telemetry.Setup(renderer)
	t.Cleanup(func() {
		_ = shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	_, span := telemetry.NewOTelTracer("test").Start(t.Context(), "fetch_train_schedule")
	span.End()
}

func TestBridge_LabelsLegSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().OnSpanStart(gomock.Any(), "", "fare.leg 广州南→江门", gomock.Any())
	renderer.EXPECT().OnSpanStart(gomock.Any(), "", "fare.leg", gomock.Any())
	renderer.EXPECT().OnSpanEnd(gomock.Any(), gomock.Any(), nil).Times(2)

	prev := otel.GetTracerProvider()
	shutdown := telemetry.Setup(renderer)
	t.Cleanup(func() {
		_ = shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	tracer := telemetry.NewOTelTracer("test")
	_, leg := tracer.Start(t.Context(), "fare.leg",
		ports.WithAttribute("from", "广州南"),
		ports.WithAttribute("to", "江门"),
		ports.WithAttribute("date", "2026-10-20"))
	leg.End()

	_, partial := tracer.Start(t.Context(), "fare.leg", ports.WithAttribute("from", "广州南"))
	partial.End()
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx, span := tracer.Start(t.Context(), "anything", ports.WithAttribute("k", "v"))
	assert.Equal(t, t.Context(), ctx)
	span.SetAttribute("k", 1)
	span.RecordError(errors.New("ignored"))
	span.End()
}
