package obs

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "heritage-itinerary-service"

// PlannerMetrics holds the instruments recorded by the planning pipeline.
// The zero value is not usable; build it with NewPlannerMetrics.
type PlannerMetrics struct {
	resolutions   metric.Int64Counter
	geocodeMisses metric.Int64Counter
	plans         metric.Int64Counter
	planDuration  metric.Float64Histogram
}

// NewPlannerMetrics creates instruments from the global MeterProvider.
// Instrument creation errors fall back to no-op instruments and are logged.
func NewPlannerMetrics() *PlannerMetrics {
	meter := otel.GetMeterProvider().Meter(meterName)
	m := &PlannerMetrics{}

	var err error
	m.resolutions, err = meter.Int64Counter(
		"coordinate_resolutions_total",
		metric.WithDescription("Coordinate resolutions by fallback tier"),
		metric.WithUnit("{resolution}"),
	)
	logInstrumentErr("coordinate_resolutions_total", err)

	m.geocodeMisses, err = meter.Int64Counter(
		"geocode_misses_total",
		metric.WithDescription("Remote geocoding calls that did not produce a coordinate"),
		metric.WithUnit("{call}"),
	)
	logInstrumentErr("geocode_misses_total", err)

	m.plans, err = meter.Int64Counter(
		"itinerary_plans_total",
		metric.WithDescription("Itineraries assembled, labeled by routing mode"),
		metric.WithUnit("{plan}"),
	)
	logInstrumentErr("itinerary_plans_total", err)

	m.planDuration, err = meter.Float64Histogram(
		"itinerary_plan_duration_seconds",
		metric.WithDescription("Duration of itinerary planning in seconds"),
		metric.WithUnit("s"),
	)
	logInstrumentErr("itinerary_plan_duration_seconds", err)

	return m
}

func logInstrumentErr(name string, err error) {
	if err != nil {
		slog.Error("metrics: create instrument", slog.String("name", name), slog.Any("error", err))
	}
}

func (m *PlannerMetrics) Resolution(ctx context.Context, tier string) {
	if m == nil || m.resolutions == nil {
		return
	}
	m.resolutions.Add(ctx, 1, metric.WithAttributes(attribute.String("tier", tier)))
}

func (m *PlannerMetrics) GeocodeMiss(ctx context.Context, reason string) {
	if m == nil || m.geocodeMisses == nil {
		return
	}
	m.geocodeMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *PlannerMetrics) Plan(ctx context.Context, fallback bool, seconds float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("fallback", fallback))
	if m.plans != nil {
		m.plans.Add(ctx, 1, attrs)
	}
	if m.planDuration != nil {
		m.planDuration.Record(ctx, seconds, attrs)
	}
}
