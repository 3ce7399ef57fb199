// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package prom_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/pkg/adapter/metrics/prom"
	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/usecase/parkinguc"
)

var _ parkinguc.Observer = (*prom.Collector)(nil)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := prom.New(reg)
	require.NoError(t, err)

	lot := uuid.New()
	c.Parked(lot)
	c.Parked(lot)
	c.Removed(lot, 2*time.Hour+10*time.Minute, decimal.NewFromInt(60))
	c.Rejected(parkinguc.OpPark, cerr.Conflict(model.ErrNoAvailableSlot))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	srv := httptest.NewServer(prom.Handler(reg))
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), fmt.Sprintf(
		`pkweb_parking_entries_total{lot_id=%q} 2`, lot.String(),
	))
	assert.Contains(t, string(body), fmt.Sprintf(
		`pkweb_parking_revenue_total{lot_id=%q} 60`, lot.String(),
	))
	assert.Contains(
		t, string(body),
		`pkweb_parking_rejections_total{op="park",reason="no_slot"} 1`,
	)
	assert.Contains(t, string(body), `pkweb_parking_stay_hours_count 1`)
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := prom.New(reg)
	require.NoError(t, err)
	_, err = prom.New(reg)
	assert.Error(t, err)
}

func TestReason(t *testing.T) {
	cases := map[error]string{
		cerr.Conflict(model.ErrVehicleAlreadyParked): "already_parked",
		cerr.Conflict(model.ErrNoAvailableSlot):      "no_slot",
		cerr.Conflict(model.ErrAlreadyClosed):        "already_closed",
		cerr.BadRequest(model.ErrInvalidGate):        "invalid_gate",
		cerr.Internal(model.ErrInvalidState):         "invalid_state",
		cerr.NotFound(model.ErrTicketNotFound):       "not_found",
		errors.New("boom"):                           "other",
	}
	for err, reason := range cases {
		assert.Equal(t, reason, prom.Reason(err), err.Error())
	}
}
