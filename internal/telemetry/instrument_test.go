package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/steveyegge/dev-wizard/internal/identity"
	"github.com/steveyegge/dev-wizard/internal/prompt"
	"github.com/steveyegge/dev-wizard/internal/testutil/fakeprompt"
)

type stubScanner struct {
	found []identity.Selection
	err   error
}

func (s stubScanner) Scan(context.Context, string, string, []identity.SegmentSpec) ([]identity.Selection, error) {
	return s.found, s.err
}

// installSDK points the global providers at in-memory recorders.
func installSDK(t *testing.T) (*tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()
	t.Setenv("DEV_WIZARD_OTEL_ENABLED", "true")

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	SetRunID("run-1")
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
		SetRunID("")
	})
	return spans, reader
}

func sumOf(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func hasAttr(attrs []attribute.KeyValue, key, value string) bool {
	for _, kv := range attrs {
		if string(kv.Key) == key && kv.Value.AsString() == value {
			return true
		}
	}
	return false
}

func TestWrappersDisabled(t *testing.T) {
	t.Setenv("DEV_WIZARD_OTEL_ENABLED", "")
	s := stubScanner{}
	assert.Equal(t, identity.SnapshotScanner(s), WrapScanner(s))
	p := fakeprompt.New()
	assert.Same(t, p, WrapPrompter(p))
}

func TestInstrumentedScanner(t *testing.T) {
	spans, reader := installSDK(t)
	sel := identity.NewSelection([]identity.SegmentSelection{{ID: "cadence", Value: "daily"}})
	s := WrapScanner(stubScanner{found: []identity.Selection{sel, sel}})

	found, err := s.Scan(context.Background(), "/repo", "maintenance", []identity.SegmentSpec{{ID: "cadence"}})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "answers.Scan", ended[0].Name())
	assert.True(t, hasAttr(ended[0].Attributes(), "devwizard.scenario", "maintenance"))
	assert.True(t, hasAttr(ended[0].Attributes(), "devwizard.run.id", "run-1"))
	assert.Equal(t, int64(1), sumOf(t, reader, "devwizard.answers.scans"))
	assert.Equal(t, int64(2), sumOf(t, reader, "devwizard.answers.snapshots"))
}

func TestInstrumentedScannerError(t *testing.T) {
	spans, _ := installSDK(t)
	boom := errors.New("permission denied")
	_, err := WrapScanner(stubScanner{err: boom}).Scan(context.Background(), "/repo", "s", nil)
	assert.ErrorIs(t, err, boom)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestInstrumentedPrompter(t *testing.T) {
	spans, reader := installSDK(t)
	fake := fakeprompt.New(
		fakeprompt.Answer("hello"),
		fakeprompt.Choose("b"),
		fakeprompt.Cancel(fakeprompt.KindText),
	)
	p := WrapPrompter(fake)
	ctx := context.Background()

	v, err := p.Text(ctx, prompt.TextRequest{Message: "Name?"})
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = p.Select(ctx, prompt.SelectRequest{Message: "Pick", Options: []prompt.Option{{Value: "a"}, {Value: "b"}}})
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = p.Text(ctx, prompt.TextRequest{Message: "Again?"})
	assert.ErrorIs(t, err, prompt.ErrCancelled)

	ended := spans.Ended()
	require.Len(t, ended, 3)
	assert.Equal(t, "prompt.text", ended[0].Name())
	assert.Equal(t, "prompt.select", ended[1].Name())
	assert.True(t, hasAttr(ended[2].Attributes(), "devwizard.prompt.outcome", "cancelled"))
	assert.NotEqual(t, codes.Error, ended[2].Status().Code, "cancellation is not an error")
	assert.Equal(t, int64(3), sumOf(t, reader, "devwizard.prompts"))
}

func TestInitDisabledInstallsNoop(t *testing.T) {
	t.Setenv("DEV_WIZARD_OTEL_ENABLED", "")
	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	})

	require.NoError(t, Init(context.Background(), "dev-wizard", "test"))
	_, span := Tracer("").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	Shutdown(context.Background())
}
