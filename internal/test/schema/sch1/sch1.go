// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sch1 provides database schema major version 1 verification
// logic. This implementation may be instantiated indirectly using
// the github.com/momeni/parking/internal/test/schema package.
package sch1

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/pkg/adapter/db/gormdb"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/migration/stlmig1"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/slotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/ticketsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/vehiclesrp"
	"github.com/momeni/parking/pkg/core/repo"
)

// These constants present the relevant major, minor, and patch semantic
// versions of this schema verifier package. They follow the stlmig1
// package because whenever a new minor version is released, the
// stlmig1 has to be updated and this verifier needs to check its
// updated changes too.
const (
	Major = stlmig1.Major
	Minor = stlmig1.Minor
	Patch = stlmig1.Patch
)

// columns lists the expected columns of each table.
var columns = map[string][]string{
	"parking_lots": {
		"id", "name", "capacity", "hourly_rate", "gate_count",
		"created_at",
	},
	"parking_slots": {"id", "lot_id", "slot_number", "is_available"},
	"vehicles":      {"id", "serial_number", "type", "registered_at"},
	"tickets": {
		"id", "slot_id", "lot_id", "vehicle_id", "entry_gate",
		"entry_time", "exit_time", "total_charge",
	},
}

// Verifier implements the schema major version 1 verification logic.
// It wraps a database connection as noted in New function.
type Verifier struct {
	c *gormdb.Conn // database connection which is used for testing
}

// New instantiates a Verifier struct, wrapping the `c` database
// connection which must be created by the gormdb package.
func New(c repo.Conn) *Verifier {
	return &Verifier{c: c.(*gormdb.Conn)}
}

// VerifySchema ensures that all tables and their columns exist.
// Extra tables or columns are tolerated, so a more recent minor
// version passes this verification too.
func (v *Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	m := v.c.DB.WithContext(ctx).Migrator()
	for table, cols := range columns {
		if !assert.Truef(t, m.HasTable(table), "missing %q", table) {
			continue
		}
		for _, col := range cols {
			assert.Truef(
				t, m.HasColumn(table, col),
				"missing %q column of %q", col, table,
			)
		}
	}
}

// VerifyDevData checks for presence of the development suitable initial
// data and marks possible issues using the `t` testing argument.
func (v *Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	lots, err := lotsrp.New().Conn(v.c).List(ctx)
	require.NoError(t, err, "listing lots")
	require.Len(t, lots, stlmig1.DevLots)
	slots := slotsrp.New().Conn(v.c)
	for i, lot := range lots {
		assert.Equal(t, fmt.Sprintf("lot%d", i), lot.Name)
		assert.Equal(t, stlmig1.DevCapacity, lot.Capacity)
		assert.Equal(t, stlmig1.DevGateCount, lot.GateCount)
		assert.True(t, stlmig1.DevHourlyRate.Equal(lot.HourlyRate))
		total, avail, err := slots.Count(ctx, lot.ID)
		require.NoError(t, err, "counting slots of %s", lot.Name)
		assert.Equal(t, stlmig1.DevCapacity, total)
		assert.Equal(t, stlmig1.DevCapacity, avail)
	}
	vehicles, err := vehiclesrp.New().Conn(v.c).List(ctx)
	require.NoError(t, err, "listing vehicles")
	assert.Len(t, vehicles, 2)
	v.verifyNoOpenTicket(ctx, t)
}

// VerifyProdData checks that all tables are empty, as expected from
// the production suitable initial data.
func (v *Verifier) VerifyProdData(ctx context.Context, t *testing.T) {
	lots, err := lotsrp.New().Conn(v.c).List(ctx)
	require.NoError(t, err, "listing lots")
	assert.Empty(t, lots)
	vehicles, err := vehiclesrp.New().Conn(v.c).List(ctx)
	require.NoError(t, err, "listing vehicles")
	assert.Empty(t, vehicles)
	v.verifyNoOpenTicket(ctx, t)
}

func (v *Verifier) verifyNoOpenTicket(ctx context.Context, t *testing.T) {
	tickets, err := ticketsrp.New().Conn(v.c).ListOpen(ctx, nil)
	require.NoError(t, err, "listing open tickets")
	assert.Empty(t, tickets)
}
