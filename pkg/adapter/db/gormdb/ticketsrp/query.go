// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ticketsrp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momeni/parking/pkg/adapter/db/gormdb"
	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/model"
)

type gTicket struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	SlotID      uuid.UUID `gorm:"type:uuid"`
	LotID       uuid.UUID `gorm:"type:uuid"`
	VehicleID   uuid.UUID `gorm:"type:uuid"`
	EntryGate   int
	EntryTime   time.Time
	ExitTime    *time.Time
	TotalCharge decimal.Decimal
}

func (gt *gTicket) TableName() string {
	return "tickets"
}

func (gt *gTicket) Model() *model.Ticket {
	t := &model.Ticket{
		ID:          gt.ID,
		SlotID:      gt.SlotID,
		LotID:       gt.LotID,
		VehicleID:   gt.VehicleID,
		EntryGate:   gt.EntryGate,
		EntryTime:   gt.EntryTime.UTC(),
		TotalCharge: gt.TotalCharge,
	}
	if gt.ExitTime != nil {
		exit := gt.ExitTime.UTC()
		t.ExitTime = &exit
	}
	return t
}

// Create inserts the t open ticket. The partial unique index over the
// vehicle_id of open tickets rejects a second open ticket of a vehicle
// with model.ErrVehicleAlreadyParked. A second open ticket of a slot
// is an internal model.ErrInvalidState error instead.
func Create[Q gormdb.Queryer](
	ctx context.Context, q Q, t *model.Ticket,
) error {
	gt := &gTicket{
		ID:          t.ID,
		SlotID:      t.SlotID,
		LotID:       t.LotID,
		VehicleID:   t.VehicleID,
		EntryGate:   t.EntryGate,
		EntryTime:   t.EntryTime,
		TotalCharge: t.TotalCharge,
	}
	err := q.GORM(ctx).Create(gt).Error
	switch key, unique := gormdb.ViolatedUnique(err); {
	case err == nil:
		return nil
	case !unique:
		return fmt.Errorf("inserting ticket: %w", err)
	case key == openSlotIndex || key == "tickets.slot_id":
		return cerr.Internal(fmt.Errorf(
			"slot %s has another open ticket: %w",
			t.SlotID, model.ErrInvalidState,
		))
	default:
		return cerr.Conflict(model.ErrVehicleAlreadyParked)
	}
}

// openSlotIndex allows one open ticket per slot. Violating it means
// that an occupied slot was marked as available.
const openSlotIndex = "tickets_open_slot_idx"

// Get queries the ticketID ticket.
func Get[Q gormdb.Queryer](
	ctx context.Context, q Q, ticketID uuid.UUID,
) (*model.Ticket, error) {
	return get(q.GORM(ctx), ticketID)
}

// GetForUpdate queries the ticketID ticket and locks its row until the
// end of the transaction (for the PostgreSQL dialect).
func GetForUpdate[Q gormdb.Queryer](
	ctx context.Context, q Q, ticketID uuid.UUID,
) (*model.Ticket, error) {
	gdb := q.GORM(ctx)
	if q.Dialect() == gormdb.Postgres {
		gdb = gdb.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return get(gdb, ticketID)
}

func get(gdb *gorm.DB, ticketID uuid.UUID) (*model.Ticket, error) {
	var gt gTicket
	err := gdb.Where("id = ?", ticketID).Take(&gt).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(model.ErrTicketNotFound)
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gt.Model(), nil
}

// FindOpenByVehicle queries the open ticket of vehicleID, returning
// nil if there is no such ticket.
func FindOpenByVehicle[Q gormdb.Queryer](
	ctx context.Context, q Q, vehicleID uuid.UUID,
) (*model.Ticket, error) {
	var gt gTicket
	err := q.GORM(ctx).Where(
		"vehicle_id = ? AND exit_time IS NULL", vehicleID,
	).Take(&gt).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gt.Model(), nil
}

// Close sets the exit time and total charge of the ticketID ticket if
// it is still open.
func Close[Q gormdb.Queryer](
	ctx context.Context,
	q Q,
	ticketID uuid.UUID,
	exit time.Time,
	charge decimal.Decimal,
) (*model.Ticket, error) {
	res := q.GORM(ctx).Model(&gTicket{}).Where(
		"id = ? AND exit_time IS NULL", ticketID,
	).Updates(map[string]any{
		"exit_time":    exit,
		"total_charge": charge,
	})
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("closing ticket: %w", err)
	}
	t, err := Get(ctx, q, ticketID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, cerr.Conflict(model.ErrAlreadyClosed)
	}
	return t, nil
}

// ListOpen queries the open tickets, sorted by their entry time and
// slot number. If lotID is not nil, only tickets of that lot are kept.
func ListOpen[Q gormdb.Queryer](
	ctx context.Context, q Q, lotID *uuid.UUID,
) ([]model.Ticket, error) {
	gdb := q.GORM(ctx).Table("tickets t").Select("t.*").Joins(
		"JOIN parking_slots s ON s.id = t.slot_id",
	).Where("t.exit_time IS NULL")
	if lotID != nil {
		gdb = gdb.Where("t.lot_id = ?", *lotID)
	}
	var gts []gTicket
	err := gdb.Order("t.entry_time").Order("s.slot_number").Find(&gts).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	tickets := make([]model.Ticket, 0, len(gts))
	for i := range gts {
		tickets = append(tickets, *gts[i].Model())
	}
	return tickets, nil
}

// gParking is a row of the joined current parkings query.
type gParking struct {
	TicketID     uuid.UUID
	SlotID       uuid.UUID
	LotID        uuid.UUID
	VehicleID    uuid.UUID
	EntryGate    int
	EntryTime    time.Time
	TotalCharge  decimal.Decimal
	SerialNumber string
	VehicleType  string
	RegisteredAt time.Time
	SlotNumber   int
	IsAvailable  bool
	LotName      string
	Capacity     int
	HourlyRate   decimal.Decimal
	GateCount    int
	LotCreatedAt time.Time
}

func (gp *gParking) Model() (*model.Parking, error) {
	vt, err := model.ParseVehicleType(gp.VehicleType)
	if err != nil {
		return nil, fmt.Errorf(
			"vehicle %s type %q: %w", gp.VehicleID, gp.VehicleType, err,
		)
	}
	return &model.Parking{
		Ticket: model.Ticket{
			ID:          gp.TicketID,
			SlotID:      gp.SlotID,
			LotID:       gp.LotID,
			VehicleID:   gp.VehicleID,
			EntryGate:   gp.EntryGate,
			EntryTime:   gp.EntryTime.UTC(),
			TotalCharge: gp.TotalCharge,
		},
		Vehicle: model.Vehicle{
			ID:           gp.VehicleID,
			SerialNumber: gp.SerialNumber,
			Type:         vt,
			RegisteredAt: gp.RegisteredAt.UTC(),
		},
		Slot: model.Slot{
			ID:        gp.SlotID,
			LotID:     gp.LotID,
			Number:    gp.SlotNumber,
			Available: gp.IsAvailable,
		},
		Lot: model.Lot{
			ID:         gp.LotID,
			Name:       gp.LotName,
			Capacity:   gp.Capacity,
			HourlyRate: gp.HourlyRate,
			GateCount:  gp.GateCount,
			CreatedAt:  gp.LotCreatedAt.UTC(),
		},
	}, nil
}

const parkingsQuery = `SELECT
	t.id AS ticket_id, t.slot_id, t.lot_id, t.vehicle_id,
	t.entry_gate, t.entry_time, t.total_charge,
	v.serial_number, v.type AS vehicle_type, v.registered_at,
	s.slot_number, s.is_available,
	l.name AS lot_name, l.capacity, l.hourly_rate, l.gate_count,
	l.created_at AS lot_created_at
FROM tickets t
JOIN vehicles v ON v.id = t.vehicle_id
JOIN parking_slots s ON s.id = t.slot_id
JOIN parking_lots l ON l.id = t.lot_id
WHERE t.exit_time IS NULL`

// ListParkings queries the open tickets like ListOpen, joining them
// with their vehicles, slots, and lots.
func ListParkings[Q gormdb.Queryer](
	ctx context.Context, q Q, lotID *uuid.UUID,
) ([]model.Parking, error) {
	var sb strings.Builder
	sb.WriteString(parkingsQuery)
	var args []any
	if lotID != nil {
		sb.WriteString(" AND t.lot_id = ?")
		args = append(args, *lotID)
	}
	sb.WriteString(" ORDER BY t.entry_time, s.slot_number")
	var gps []gParking
	err := q.GORM(ctx).Raw(sb.String(), args...).Scan(&gps).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	parkings := make([]model.Parking, 0, len(gps))
	for i := range gps {
		p, err := gps[i].Model()
		if err != nil {
			return nil, err
		}
		parkings = append(parkings, *p)
	}
	return parkings, nil
}
