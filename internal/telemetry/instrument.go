package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/steveyegge/dev-wizard/internal/identity"
	"github.com/steveyegge/dev-wizard/internal/prompt"
)

const (
	scanScopeName   = "github.com/steveyegge/dev-wizard/answers"
	promptScopeName = "github.com/steveyegge/dev-wizard/prompt"
)

// InstrumentedScanner wraps an identity.SnapshotScanner with a span per scan
// and devwizard.answers.* metrics. Use WrapScanner to create one.
type InstrumentedScanner struct {
	inner     identity.SnapshotScanner
	tracer    trace.Tracer
	scans     metric.Int64Counter
	snapshots metric.Int64Counter
	dur       metric.Float64Histogram
}

// WrapScanner returns s decorated with OTel instrumentation.
// When telemetry is disabled, s is returned as-is.
func WrapScanner(s identity.SnapshotScanner) identity.SnapshotScanner {
	if !Enabled() {
		return s
	}
	m := Meter(scanScopeName)
	scans, _ := m.Int64Counter("devwizard.answers.scans",
		metric.WithDescription("Snapshot scans of the answers tree"),
	)
	snapshots, _ := m.Int64Counter("devwizard.answers.snapshots",
		metric.WithDescription("Distinct identity snapshots found by scans"),
	)
	dur, _ := m.Float64Histogram("devwizard.answers.scan.duration",
		metric.WithDescription("Snapshot scan duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	return &InstrumentedScanner{
		inner:     s,
		tracer:    Tracer(scanScopeName),
		scans:     scans,
		snapshots: snapshots,
		dur:       dur,
	}
}

func (s *InstrumentedScanner) Scan(ctx context.Context, repoRoot, scenarioID string, segments []identity.SegmentSpec) ([]identity.Selection, error) {
	attrs := runAttrs(
		attribute.String("devwizard.scenario", scenarioID),
		attribute.Int("devwizard.identity.segments", len(segments)),
	)
	ctx, span := s.tracer.Start(ctx, "answers.Scan", trace.WithAttributes(attrs...))
	defer span.End()
	start := time.Now()

	found, err := s.inner.Scan(ctx, repoRoot, scenarioID, segments)

	s.scans.Add(ctx, 1, metric.WithAttributes(attrs...))
	s.dur.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return found, err
	}
	s.snapshots.Add(ctx, int64(len(found)), metric.WithAttributes(attrs...))
	span.SetAttributes(attribute.Int("devwizard.answers.snapshots", len(found)))
	return found, nil
}

// InstrumentedPrompter wraps a prompt.Prompter with a span per prompt and a
// devwizard.prompts counter labelled by kind and outcome.
type InstrumentedPrompter struct {
	inner   prompt.Prompter
	tracer  trace.Tracer
	prompts metric.Int64Counter
	wait    metric.Float64Histogram
}

// WrapPrompter returns p decorated with OTel instrumentation.
// When telemetry is disabled, p is returned as-is.
func WrapPrompter(p prompt.Prompter) prompt.Prompter {
	if !Enabled() {
		return p
	}
	m := Meter(promptScopeName)
	prompts, _ := m.Int64Counter("devwizard.prompts",
		metric.WithDescription("Prompts shown to the operator"),
	)
	wait, _ := m.Float64Histogram("devwizard.prompt.wait",
		metric.WithDescription("Time spent waiting for the operator in milliseconds"),
		metric.WithUnit("ms"),
	)
	return &InstrumentedPrompter{
		inner:   p,
		tracer:  Tracer(promptScopeName),
		prompts: prompts,
		wait:    wait,
	}
}

func (p *InstrumentedPrompter) Text(ctx context.Context, req prompt.TextRequest) (string, error) {
	ctx, span, start := p.start(ctx, "text", req.Message)
	v, err := p.inner.Text(ctx, req)
	p.done(ctx, span, start, "text", err)
	return v, err
}

func (p *InstrumentedPrompter) Select(ctx context.Context, req prompt.SelectRequest) (string, error) {
	ctx, span, start := p.start(ctx, "select", req.Message)
	span.SetAttributes(attribute.Int("devwizard.prompt.options", len(req.Options)))
	v, err := p.inner.Select(ctx, req)
	p.done(ctx, span, start, "select", err)
	return v, err
}

func (p *InstrumentedPrompter) start(ctx context.Context, kind, message string) (context.Context, trace.Span, time.Time) {
	ctx, span := p.tracer.Start(ctx, "prompt."+kind, trace.WithAttributes(runAttrs(
		attribute.String("devwizard.prompt.message", message),
	)...))
	return ctx, span, time.Now()
}

func (p *InstrumentedPrompter) done(ctx context.Context, span trace.Span, start time.Time, kind string, err error) {
	outcome := "answered"
	switch {
	case prompt.IsCancelled(err):
		outcome = "cancelled"
	case err != nil:
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	attrs := metric.WithAttributes(runAttrs(
		attribute.String("devwizard.prompt.kind", kind),
		attribute.String("devwizard.prompt.outcome", outcome),
	)...)
	p.prompts.Add(ctx, 1, attrs)
	p.wait.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)
	span.SetAttributes(attribute.String("devwizard.prompt.outcome", outcome))
	span.End()
}
