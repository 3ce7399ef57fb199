// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ticketsuc_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/momeni/parking/internal/test/fakeclock"
	"github.com/momeni/parking/internal/test/sqlitedb"
	"github.com/momeni/parking/pkg/adapter/db/gormdb"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/slotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/ticketsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/vehiclesrp"
	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
	"github.com/momeni/parking/pkg/core/usecase/lotsuc"
	"github.com/momeni/parking/pkg/core/usecase/slotsuc"
	"github.com/momeni/parking/pkg/core/usecase/ticketsuc"
	"github.com/momeni/parking/pkg/core/usecase/vehiclesuc"
)

var epoch = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

type TicketsTestSuite struct {
	suite.Suite

	Ctx      context.Context
	Pool     *gormdb.Pool
	Clock    *fakeclock.Clock
	Lots     *lotsuc.UseCase
	Vehicles *vehiclesuc.UseCase
	Tickets  *ticketsuc.UseCase
}

func TestTicketsTestSuite(t *testing.T) {
	suite.Run(t, &TicketsTestSuite{Ctx: context.Background()})
}

// SetupTest creates a fresh database for each test, so lot names and
// slot states of tests do not interfere.
func (tts *TicketsTestSuite) SetupTest() {
	p := sqlitedb.NewProd(tts.Ctx, tts.T())
	tts.Pool = p
	tts.Clock = fakeclock.New(epoch)
	slots := slotsuc.New(slotsrp.New())
	var err error
	tts.Lots, err = lotsuc.New(
		p, lotsrp.New(), slots, lotsuc.WithClock(tts.Clock),
	)
	tts.Require().NoError(err)
	tts.Vehicles = vehiclesuc.New(p, vehiclesrp.New(), tts.Clock)
	tts.Tickets, err = ticketsuc.New(
		p, lotsrp.New(), vehiclesrp.New(), ticketsrp.New(), slots,
		ticketsuc.WithClock(tts.Clock),
	)
	tts.Require().NoError(err)
}

func (tts *TicketsTestSuite) newLot(capacity, gates int) *model.Lot {
	lot, err := tts.Lots.CreateLot(
		tts.Ctx, uuid.NewString(), capacity, decimal.NewFromInt(20), gates,
	)
	tts.Require().NoError(err)
	return lot
}

func (tts *TicketsTestSuite) newVehicle() *model.Vehicle {
	v, err := tts.Vehicles.Register(
		tts.Ctx, uuid.NewString()[:8], model.VehicleTypeCar,
	)
	tts.Require().NoError(err)
	return v
}

func (tts *TicketsTestSuite) requireOccupied(lotID uuid.UUID, n int) {
	_, o, err := tts.Lots.Occupancy(tts.Ctx, lotID)
	tts.Require().NoError(err)
	tts.Equal(n, o.Occupied, "occupied slots")
	tts.Equal(o.Capacity-n, o.Available, "available slots")
}

// freeAllSlots marks all slots of the lotID lot as available behind
// the back of the tickets use case, so the open tickets and slots of
// that lot disagree.
func (tts *TicketsTestSuite) freeAllSlots(lotID uuid.UUID) {
	err := tts.Pool.Conn(tts.Ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := c.Exec(
			ctx, "UPDATE parking_slots SET is_available = ? WHERE lot_id = ?",
			true, lotID,
		)
		return err
	})
	tts.Require().NoError(err, "freeing slots of lot %s", lotID)
}

func (tts *TicketsTestSuite) requireStatus(err error, code int) {
	var ce *cerr.Error
	if tts.ErrorAs(err, &ce) {
		tts.Equal(code, ce.HTTPStatusCode)
	}
}

func (tts *TicketsTestSuite) TestParkAndExitChargesStartedHours() {
	lot := tts.newLot(1, 1)
	v := tts.newVehicle()
	t, slot, err := tts.Tickets.OpenTicket(tts.Ctx, v.ID, lot.ID, 1)
	tts.Require().NoError(err)
	tts.Equal(0, slot.Number)
	tts.False(slot.Available)
	tts.True(t.Open())
	tts.True(t.TotalCharge.IsZero())
	tts.True(epoch.Equal(t.EntryTime))
	tts.requireOccupied(lot.ID, 1)

	tts.Clock.Advance(2*time.Hour + 10*time.Minute)
	closed, err := tts.Tickets.CloseTicket(tts.Ctx, t.ID)
	tts.Require().NoError(err)
	tts.False(closed.Open())
	tts.Equal(2*time.Hour+10*time.Minute, closed.Duration())
	tts.True(closed.TotalCharge.Equal(decimal.NewFromInt(60)), closed.TotalCharge)
	tts.requireOccupied(lot.ID, 0)

	stored, err := tts.Tickets.GetTicket(tts.Ctx, t.ID)
	tts.Require().NoError(err)
	tts.True(stored.TotalCharge.Equal(decimal.NewFromInt(60)), stored.TotalCharge)
	tts.Require().NotNil(stored.ExitTime)

	_, err = tts.Tickets.CloseTicket(tts.Ctx, t.ID)
	tts.ErrorIs(err, model.ErrAlreadyClosed)
	tts.requireStatus(err, http.StatusConflict)
	tts.requireOccupied(lot.ID, 0)

	v2 := tts.newVehicle()
	_, slot, err = tts.Tickets.OpenTicket(tts.Ctx, v2.ID, lot.ID, 1)
	tts.Require().NoError(err)
	tts.Equal(0, slot.Number)
}

func (tts *TicketsTestSuite) TestImmediateExitIsFree() {
	lot := tts.newLot(2, 1)
	v := tts.newVehicle()
	t, _, err := tts.Tickets.OpenTicket(tts.Ctx, v.ID, lot.ID, 1)
	tts.Require().NoError(err)
	closed, err := tts.Tickets.CloseTicket(tts.Ctx, t.ID)
	tts.Require().NoError(err)
	tts.True(closed.TotalCharge.IsZero())
}

func (tts *TicketsTestSuite) TestOpenTicketRejections() {
	lot := tts.newLot(1, 2)
	parked := tts.newVehicle()
	_, _, err := tts.Tickets.OpenTicket(tts.Ctx, parked.ID, lot.ID, 2)
	tts.Require().NoError(err)
	other := tts.newVehicle()
	for _, tc := range []struct {
		name      string
		vehicleID uuid.UUID
		lotID     uuid.UUID
		gate      int
		err       error
		code      int
	}{
		{
			"unknown vehicle", uuid.New(), lot.ID, 1,
			model.ErrVehicleNotFound, http.StatusNotFound,
		},
		{
			"unknown lot", other.ID, uuid.New(), 1,
			model.ErrLotNotFound, http.StatusNotFound,
		},
		{
			"gate zero", other.ID, lot.ID, 0,
			model.ErrInvalidGate, http.StatusBadRequest,
		},
		{
			"gate beyond count", other.ID, lot.ID, 3,
			model.ErrInvalidGate, http.StatusBadRequest,
		},
		{
			"already parked", parked.ID, lot.ID, 1,
			model.ErrVehicleAlreadyParked, http.StatusConflict,
		},
		{
			"full lot", other.ID, lot.ID, 1,
			model.ErrNoAvailableSlot, http.StatusConflict,
		},
	} {
		tts.Run(tc.name, func() {
			_, _, err := tts.Tickets.OpenTicket(
				tts.Ctx, tc.vehicleID, tc.lotID, tc.gate,
			)
			tts.ErrorIs(err, tc.err)
			tts.requireStatus(err, tc.code)
		})
	}
	tts.requireOccupied(lot.ID, 1)
	open, err := tts.Tickets.ListOpenTickets(tts.Ctx, &lot.ID)
	tts.Require().NoError(err)
	tts.Len(open, 1)
}

func (tts *TicketsTestSuite) TestCloseUnknownTicket() {
	_, err := tts.Tickets.CloseTicket(tts.Ctx, uuid.New())
	tts.ErrorIs(err, model.ErrTicketNotFound)
	tts.requireStatus(err, http.StatusNotFound)
	_, err = tts.Tickets.GetTicket(tts.Ctx, uuid.New())
	tts.ErrorIs(err, model.ErrTicketNotFound)
}

func (tts *TicketsTestSuite) TestLowestFreeSlotIsReused() {
	lot := tts.newLot(3, 1)
	tickets := make([]*model.Ticket, 3)
	for i := range tickets {
		t, slot, err := tts.Tickets.OpenTicket(
			tts.Ctx, tts.newVehicle().ID, lot.ID, 1,
		)
		tts.Require().NoError(err)
		tts.Equal(i, slot.Number)
		tickets[i] = t
	}
	_, err := tts.Tickets.CloseTicket(tts.Ctx, tickets[1].ID)
	tts.Require().NoError(err)
	_, slot, err := tts.Tickets.OpenTicket(
		tts.Ctx, tts.newVehicle().ID, lot.ID, 1,
	)
	tts.Require().NoError(err)
	tts.Equal(1, slot.Number)
}

func (tts *TicketsTestSuite) TestConcurrentParksRespectCapacity() {
	const capacity = 5
	lot := tts.newLot(capacity, 1)
	vehicles := make([]*model.Vehicle, capacity+1)
	for i := range vehicles {
		vehicles[i] = tts.newVehicle()
	}
	var wg sync.WaitGroup
	slots := make([]*model.Slot, len(vehicles))
	errs := make([]error, len(vehicles))
	for i, v := range vehicles {
		wg.Add(1)
		go func(i int, v *model.Vehicle) {
			defer wg.Done()
			_, slots[i], errs[i] = tts.Tickets.OpenTicket(
				tts.Ctx, v.ID, lot.ID, 1,
			)
		}(i, v)
	}
	wg.Wait()
	var numbers []int
	for i, err := range errs {
		if err != nil {
			tts.ErrorIs(err, model.ErrNoAvailableSlot)
			continue
		}
		numbers = append(numbers, slots[i].Number)
	}
	sort.Ints(numbers)
	tts.Equal([]int{0, 1, 2, 3, 4}, numbers, "distinct slots")
	tts.requireOccupied(lot.ID, capacity)
}

func (tts *TicketsTestSuite) TestConcurrentParksOfOneVehicle() {
	const attempts = 8
	lot := tts.newLot(attempts, 1)
	v := tts.newVehicle()
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = tts.Tickets.OpenTicket(
				tts.Ctx, v.ID, lot.ID, 1,
			)
		}(i)
	}
	wg.Wait()
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		tts.ErrorIs(err, model.ErrVehicleAlreadyParked)
	}
	tts.Equal(1, succeeded)
	tts.requireOccupied(lot.ID, 1)
}

func (tts *TicketsTestSuite) TestConcurrentExitsOfOneTicket() {
	lot := tts.newLot(2, 1)
	t, _, err := tts.Tickets.OpenTicket(
		tts.Ctx, tts.newVehicle().ID, lot.ID, 1,
	)
	tts.Require().NoError(err)
	tts.Clock.Advance(time.Hour)
	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = tts.Tickets.CloseTicket(tts.Ctx, t.ID)
		}(i)
	}
	wg.Wait()
	closed := 0
	for _, err := range errs {
		if err == nil {
			closed++
			continue
		}
		tts.ErrorIs(err, model.ErrAlreadyClosed)
	}
	tts.Equal(1, closed)
	tts.requireOccupied(lot.ID, 0)
}

func (tts *TicketsTestSuite) TestCurrentParkings() {
	lot1, lot2 := tts.newLot(3, 1), tts.newLot(3, 1)
	var want1 []uuid.UUID
	for i, lot := range []*model.Lot{lot1, lot2, lot1} {
		tts.Clock.Advance(time.Minute)
		t, _, err := tts.Tickets.OpenTicket(
			tts.Ctx, tts.newVehicle().ID, lot.ID, 1,
		)
		tts.Require().NoError(err, fmt.Sprintf("parking #%d", i))
		if lot == lot1 {
			want1 = append(want1, t.ID)
		}
	}
	pp, err := tts.Tickets.CurrentParkings(tts.Ctx, &lot1.ID)
	tts.Require().NoError(err)
	var got1 []uuid.UUID
	for _, p := range pp {
		got1 = append(got1, p.Ticket.ID)
		tts.Equal(lot1.ID, p.Lot.ID)
		tts.Equal(p.Ticket.SlotID, p.Slot.ID)
		tts.Equal(p.Ticket.VehicleID, p.Vehicle.ID)
		tts.False(p.Slot.Available)
	}
	tts.Equal(want1, got1, "sorted by entry time")

	all, err := tts.Tickets.ListOpenTickets(tts.Ctx, nil)
	tts.Require().NoError(err)
	tts.Len(all, 3)
	for i := 1; i < len(all); i++ {
		tts.False(all[i].EntryTime.Before(all[i-1].EntryTime))
	}

	missing := uuid.New()
	_, err = tts.Tickets.CurrentParkings(tts.Ctx, &missing)
	tts.ErrorIs(err, model.ErrLotNotFound)
}

func (tts *TicketsTestSuite) TestFailedInsertReleasesClaimedSlot() {
	lot := tts.newLot(2, 1)
	v1, v2 := tts.newVehicle(), tts.newVehicle()
	t1, _, err := tts.Tickets.OpenTicket(tts.Ctx, v1.ID, lot.ID, 1)
	tts.Require().NoError(err)
	tts.freeAllSlots(lot.ID)

	// slot 0 is claimed again, but the open ticket of v1 blocks
	// the insertion of the second ticket
	_, _, err = tts.Tickets.OpenTicket(tts.Ctx, v2.ID, lot.ID, 1)
	tts.Require().ErrorIs(err, model.ErrInvalidState)
	tts.NotErrorIs(err, model.ErrVehicleAlreadyParked)
	tts.requireStatus(err, http.StatusInternalServerError)
	tts.requireOccupied(lot.ID, 0)

	open, err := tts.Tickets.ListOpenTickets(tts.Ctx, &lot.ID)
	tts.Require().NoError(err)
	tts.Require().Len(open, 1)
	tts.Equal(t1.ID, open[0].ID)
}

func (tts *TicketsTestSuite) TestStuckReleaseKeepsTicketClosed() {
	lot := tts.newLot(1, 1)
	v := tts.newVehicle()
	t, _, err := tts.Tickets.OpenTicket(tts.Ctx, v.ID, lot.ID, 1)
	tts.Require().NoError(err)
	tts.freeAllSlots(lot.ID)

	var logs bytes.Buffer
	defer slog.SetDefault(slog.Default())
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))

	tts.Clock.Advance(30 * time.Minute)
	closed, err := tts.Tickets.CloseTicket(tts.Ctx, t.ID)
	tts.Require().NoError(err, "the vehicle has left anyway")
	tts.False(closed.Open())
	tts.True(decimal.NewFromInt(20).Equal(closed.TotalCharge))
	tts.Contains(logs.String(), "closed ticket slot could not be released")

	got, err := tts.Tickets.GetTicket(tts.Ctx, t.ID)
	tts.Require().NoError(err)
	tts.False(got.Open(), "the ticket is not reopened")
	tts.requireOccupied(lot.ID, 0)
}

func TestNewRejectsDuplicateClock(t *testing.T) {
	c := fakeclock.New(epoch)
	_, err := ticketsuc.New(
		nil, nil, nil, nil, nil,
		ticketsuc.WithClock(c), ticketsuc.WithClock(c),
	)
	require.ErrorContains(t, err, "clock is already configured")
}
