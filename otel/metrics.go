// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package otel holds the OpenTelemetry metric instruments of the router
// core. Only the otel API is consumed here; SDK and exporter wiring
// belong to the binary embedding this module.
package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ChainMetrics holds the instruments for the publish filter chain.
type ChainMetrics struct {
	meter metric.Meter

	evaluationsTotal metric.Int64Counter
	rejectionsTotal  metric.Int64Counter
	applyDuration    metric.Float64Histogram
}

// NewChainMetrics creates a ChainMetrics instance with all instruments
// initialized.
func NewChainMetrics() (*ChainMetrics, error) {
	m := &ChainMetrics{
		meter: otel.Meter("mqtt-router"),
	}

	var err error

	m.evaluationsTotal, err = m.meter.Int64Counter(
		"mqtt.publish_filter.evaluations.total",
		metric.WithDescription("Total publish filter chain evaluations"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluationsTotal counter: %w", err)
	}

	m.rejectionsTotal, err = m.meter.Int64Counter(
		"mqtt.publish_filter.rejections.total",
		metric.WithDescription("Total publishes rejected by the filter chain"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rejectionsTotal counter: %w", err)
	}

	m.applyDuration, err = m.meter.Float64Histogram(
		"mqtt.publish_filter.apply.duration",
		metric.WithDescription("Filter chain evaluation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create applyDuration histogram: %w", err)
	}

	return m, nil
}

// RecordAccepted records an evaluation that accepted the publish.
func (m *ChainMetrics) RecordAccepted(ctx context.Context, d time.Duration) {
	m.evaluationsTotal.Add(ctx, 1)
	m.applyDuration.Record(ctx, float64(d.Microseconds())/1000.0)
}

// RecordRejected records an evaluation that rejected the publish.
func (m *ChainMetrics) RecordRejected(ctx context.Context, d time.Duration) {
	m.evaluationsTotal.Add(ctx, 1)
	m.rejectionsTotal.Add(ctx, 1)
	m.applyDuration.Record(ctx, float64(d.Microseconds())/1000.0)
}
