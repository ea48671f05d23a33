package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// PoolStatsSource reports connection pool statistics; *sql.DB satisfies it
type PoolStatsSource interface {
	Stats() sql.DBStats
}

// DBPoolMetrics exposes connection pool statistics as observable instruments.
// Values are read from the pool at collection time, so no goroutine is needed.
type DBPoolMetrics struct {
	registration metric.Registration
}

// NewDBPoolMetrics registers the pool instruments against meter
func NewDBPoolMetrics(meter metric.Meter, pool PoolStatsSource) (*DBPoolMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create db_pool_connections: %w", err)
	}
	maxOpen, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections allowed"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create db_pool_connections_max: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_total",
		metric.WithDescription("Connections waited for since start"),
		metric.WithUnit("{wait}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create db_pool_wait_total: %w", err)
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := pool.Stats()
		o.ObserveInt64(connections, int64(s.InUse), metric.WithAttributes(AttrPoolState.String("in_use")))
		o.ObserveInt64(connections, int64(s.Idle), metric.WithAttributes(AttrPoolState.String("idle")))
		o.ObserveInt64(maxOpen, int64(s.MaxOpenConnections))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, connections, maxOpen, waits)
	if err != nil {
		return nil, fmt.Errorf("failed to register pool callback: %w", err)
	}
	return &DBPoolMetrics{registration: reg}, nil
}

// Stop unregisters the callback
func (m *DBPoolMetrics) Stop() error {
	return m.registration.Unregister()
}
