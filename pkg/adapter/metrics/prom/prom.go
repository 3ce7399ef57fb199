// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package prom exports the parking operations outcomes as Prometheus
// metrics. The Collector implements the parkinguc.Observer interface,
// so it can be passed to the application use case and it may be
// served by the Handler function.
package prom

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/momeni/parking/pkg/core/model"
)

const namespace = "pkweb"

// Collector keeps the parking metrics.
type Collector struct {
	entries    *prometheus.CounterVec
	exits      *prometheus.CounterVec
	rejections *prometheus.CounterVec
	revenue    *prometheus.CounterVec
	stay       prometheus.Histogram
}

// New creates a Collector and registers its metrics in `reg`.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parking_entries_total",
			Help:      "Number of opened tickets per lot.",
		}, []string{"lot_id"}),
		exits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parking_exits_total",
			Help:      "Number of closed tickets per lot.",
		}, []string{"lot_id"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parking_rejections_total",
			Help:      "Number of failed park and remove operations.",
		}, []string{"op", "reason"}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parking_revenue_total",
			Help:      "Sum of the charged amounts per lot.",
		}, []string{"lot_id"}),
		stay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parking_stay_hours",
			Help:      "Duration of the closed tickets in hours.",
			Buckets:   []float64{0.5, 1, 2, 4, 8, 24, 72},
		}),
	}
	for _, m := range []prometheus.Collector{
		c.entries, c.exits, c.rejections, c.revenue, c.stay,
	} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("registering metric: %w", err)
		}
	}
	return c, nil
}

// Parked counts a successful entry to the lotID lot.
func (c *Collector) Parked(lotID uuid.UUID) {
	c.entries.WithLabelValues(lotID.String()).Inc()
}

// Removed counts a successful exit from the lotID lot and records its
// stay duration and charged amount.
func (c *Collector) Removed(
	lotID uuid.UUID, stay time.Duration, charge decimal.Decimal,
) {
	lot := lotID.String()
	c.exits.WithLabelValues(lot).Inc()
	c.revenue.WithLabelValues(lot).Add(charge.InexactFloat64())
	c.stay.Observe(stay.Hours())
}

// Rejected counts a failed op operation, labeled by the reason of err.
func (c *Collector) Rejected(op string, err error) {
	c.rejections.WithLabelValues(op, Reason(err)).Inc()
}

// Reason returns a short label describing the model error which is
// wrapped by err.
func Reason(err error) string {
	switch {
	case errors.Is(err, model.ErrVehicleAlreadyParked):
		return "already_parked"
	case errors.Is(err, model.ErrNoAvailableSlot):
		return "no_slot"
	case errors.Is(err, model.ErrAlreadyClosed):
		return "already_closed"
	case errors.Is(err, model.ErrInvalidGate):
		return "invalid_gate"
	case errors.Is(err, model.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, model.ErrLotNotFound),
		errors.Is(err, model.ErrVehicleNotFound),
		errors.Is(err, model.ErrTicketNotFound):
		return "not_found"
	default:
		return "other"
	}
}

// Handler returns an http.Handler which serves the metrics of `g`.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
