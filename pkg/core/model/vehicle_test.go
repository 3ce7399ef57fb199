// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/pkg/core/model"
)

func TestVehicleType(t *testing.T) {
	for _, s := range []string{"car", "bike"} {
		vt, err := model.ParseVehicleType(s)
		require.NoError(t, err)
		assert.NoError(t, vt.Validate())
		assert.Equal(t, s, vt.String())
	}
	vt, err := model.ParseVehicleType("truck")
	assert.ErrorIs(t, err, model.ErrUnknownVehicleType)
	assert.Equal(t, model.VehicleTypeInvalid, vt)
	assert.Error(t, vt.Validate())
	assert.Panics(t, func() { _ = vt.String() })

	var v model.Vehicle
	err = json.Unmarshal([]byte(`{"type":"bike"}`), &v)
	require.NoError(t, err)
	assert.Equal(t, model.VehicleTypeBike, v.Type)
	err = json.Unmarshal([]byte(`{"type":"boat"}`), &v)
	assert.Error(t, err)
	_, err = json.Marshal(model.Vehicle{})
	assert.Error(t, err, "invalid types may not be serialized")
}

func TestLotValidation(t *testing.T) {
	lot := model.Lot{
		Name: "a", Capacity: 1, HourlyRate: decimal.Zero, GateCount: 2,
	}
	require.NoError(t, lot.Validate())
	assert.ErrorIs(t, lot.ValidateGate(0), model.ErrInvalidGate)
	assert.NoError(t, lot.ValidateGate(1))
	assert.NoError(t, lot.ValidateGate(2))
	assert.ErrorIs(t, lot.ValidateGate(3), model.ErrInvalidGate)

	lot.HourlyRate = decimal.RequireFromString("12.50")
	assert.NoError(t, lot.Validate())
	lot.HourlyRate = decimal.RequireFromString("1.005")
	assert.ErrorIs(t, lot.Validate(), model.ErrInvalidLot)
	lot.HourlyRate = decimal.NewFromInt(-1)
	assert.ErrorIs(t, lot.Validate(), model.ErrInvalidLot)
}

func TestTicketDuration(t *testing.T) {
	entry := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tk := model.Ticket{EntryTime: entry}
	assert.True(t, tk.Open())
	assert.Zero(t, tk.Duration())
	exit := entry.Add(90 * time.Minute)
	tk.ExitTime = &exit
	assert.False(t, tk.Open())
	assert.Equal(t, 90*time.Minute, tk.Duration())
}
