package maxima

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("gapp.maxima")
	meter  = otel.Meter("gapp.maxima")
)

var (
	optimizeLatency metric.Float64Histogram
	optimizeTotal   metric.Int64Counter
	cacheLookups    metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments once.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		optimizeLatency, err = meter.Float64Histogram(
			"maxima_optimize_duration_seconds",
			metric.WithDescription("Duration of CAS runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		optimizeTotal, err = meter.Int64Counter(
			"maxima_optimize_total",
			metric.WithDescription("Total number of CAS runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cacheLookups, err = meter.Int64Counter(
			"maxima_cache_lookups_total",
			metric.WithDescription("Result cache lookups by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startOptimizeSpan(ctx context.Context, command string, lines int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "ProcessConnection.Optimize",
		trace.WithAttributes(
			attribute.String("maxima.command", command),
			attribute.Int("maxima.input_lines", lines),
		),
	)
}

func setOptimizeSpanResult(span trace.Span, outputLines int, err error) {
	span.SetAttributes(attribute.Int("maxima.output_lines", outputLines))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func recordOptimizeMetrics(ctx context.Context, command string, duration time.Duration, success bool) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("command", command),
		attribute.Bool("success", success),
	)
	optimizeLatency.Record(ctx, duration.Seconds(), attrs)
	optimizeTotal.Add(ctx, 1, attrs)
}

func recordCacheLookup(ctx context.Context, hit bool) {
	if err := initMetrics(); err != nil {
		return
	}
	cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", hit)))
}
