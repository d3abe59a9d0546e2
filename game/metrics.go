package game

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "dotdestroyer/game"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics records simulation counters. Uses the global OTel meter, which is
// a no-op until a provider is installed.
type Metrics struct {
	shots     metric.Int64Counter
	hits      metric.Int64Counter
	destroyed metric.Int64Counter
	expired   metric.Int64Counter
	frames    metric.Int64Counter
	frameTime metric.Float64Histogram
}

// NewMetrics creates the simulation instruments
func NewMetrics() (*Metrics, error) {
	m := meter()
	metrics := &Metrics{}

	var err error
	metrics.shots, err = m.Int64Counter(
		"arena.shots.fired",
		metric.WithDescription("Projectiles spawned by ship weapons"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}

	metrics.hits, err = m.Int64Counter(
		"arena.projectile.hits",
		metric.WithDescription("Projectiles that damaged a hostile ship"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	metrics.destroyed, err = m.Int64Counter(
		"arena.ships.destroyed",
		metric.WithDescription("Ships whose health dropped to zero"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating destroyed counter: %w", err)
	}

	metrics.expired, err = m.Int64Counter(
		"arena.projectiles.expired",
		metric.WithDescription("Projectiles removed for leaving the arena"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating expired counter: %w", err)
	}

	metrics.frames, err = m.Int64Counter(
		"arena.frames",
		metric.WithDescription("Simulation frames stepped"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	metrics.frameTime, err = m.Float64Histogram(
		"arena.frame.duration",
		metric.WithDescription("Wall time spent in one simulation step"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frame duration histogram: %w", err)
	}

	return metrics, nil
}

// record adds one frame's events and step duration
func (m *Metrics) record(ctx context.Context, events []Event, took time.Duration) {
	if m == nil {
		return
	}
	m.frames.Add(ctx, 1)
	m.frameTime.Record(ctx, float64(took.Microseconds())/1000)

	for _, e := range events {
		faction := metric.WithAttributes(attribute.String("faction", e.Faction.String()))
		switch e.Type {
		case EventTypeShotFired:
			m.shots.Add(ctx, 1, faction)
		case EventTypeProjectileHit:
			m.hits.Add(ctx, 1, faction)
		case EventTypeShipDestroyed:
			m.destroyed.Add(ctx, 1, faction)
		case EventTypeProjectileExpired:
			m.expired.Add(ctx, 1)
		}
	}
}
