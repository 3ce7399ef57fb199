// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momeni/parking/pkg/adapter/db/gormdb"
	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/model"
)

// batchSize is the maximum number of slots per INSERT statement.
const batchSize = 500

type gSlot struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	LotID       uuid.UUID `gorm:"type:uuid"`
	SlotNumber  int
	IsAvailable bool
}

func (gs *gSlot) TableName() string {
	return "parking_slots"
}

func (gs *gSlot) Model() *model.Slot {
	return &model.Slot{
		ID:        gs.ID,
		LotID:     gs.LotID,
		Number:    gs.SlotNumber,
		Available: gs.IsAvailable,
	}
}

// CreateAll inserts capacity available slots for the lotID lot.
func CreateAll[Q gormdb.Queryer](
	ctx context.Context, q Q, lotID uuid.UUID, capacity int,
) ([]model.Slot, error) {
	gss := make([]gSlot, 0, capacity)
	for n := 0; n < capacity; n++ {
		gss = append(gss, gSlot{
			ID:          uuid.New(),
			LotID:       lotID,
			SlotNumber:  n,
			IsAvailable: true,
		})
	}
	if err := q.GORM(ctx).CreateInBatches(&gss, batchSize).Error; err != nil {
		return nil, fmt.Errorf("inserting %d slots: %w", capacity, err)
	}
	slots := make([]model.Slot, 0, capacity)
	for i := range gss {
		slots = append(slots, *gss[i].Model())
	}
	return slots, nil
}

// ClaimFree marks the available slot of lotID with the lowest number
// as unavailable. The candidate row is locked (skipping the rows which
// are locked by other transactions) and is updated only if it is still
// available, so two transactions may never claim the same slot.
func ClaimFree[Q gormdb.Queryer](
	ctx context.Context, q Q, lotID uuid.UUID,
) (*model.Slot, error) {
	gdb := q.GORM(ctx)
	sel := gdb
	if q.Dialect() == gormdb.Postgres {
		sel = gdb.Clauses(clause.Locking{
			Strength: "UPDATE", Options: "SKIP LOCKED",
		})
	}
	var gs gSlot
	err := sel.Where(
		"lot_id = ? AND is_available = ?", lotID, true,
	).Order("slot_number").Take(&gs).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.Conflict(model.ErrNoAvailableSlot)
	case err != nil:
		return nil, fmt.Errorf("finding a free slot: %w", err)
	}
	res := gdb.Model(&gSlot{}).Where(
		"id = ? AND is_available = ?", gs.ID, true,
	).Update("is_available", false)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("claiming slot %d: %w", gs.SlotNumber, err)
	}
	if n := res.RowsAffected; n != 1 {
		return nil, cerr.Internal(fmt.Errorf(
			"claiming locked slot %d updated %d rows: %w",
			gs.SlotNumber, n, model.ErrInvalidState,
		))
	}
	gs.IsAvailable = false
	return gs.Model(), nil
}

// Release marks the slotID slot as available if it is unavailable.
func Release[Q gormdb.Queryer](
	ctx context.Context, q Q, slotID uuid.UUID,
) (*model.Slot, error) {
	res := q.GORM(ctx).Model(&gSlot{}).Where(
		"id = ? AND is_available = ?", slotID, false,
	).Update("is_available", true)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("releasing slot: %w", err)
	}
	slot, err := Get(ctx, q, slotID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, cerr.Internal(fmt.Errorf(
			"slot %d of lot %s is available already: %w",
			slot.Number, slot.LotID, model.ErrInvalidState,
		))
	}
	return slot, nil
}

// Get queries the slotID slot.
func Get[Q gormdb.Queryer](
	ctx context.Context, q Q, slotID uuid.UUID,
) (*model.Slot, error) {
	var gs gSlot
	err := q.GORM(ctx).Where("id = ?", slotID).Take(&gs).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(model.ErrSlotNotFound)
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gs.Model(), nil
}

// ListByLot queries the slots of lotID, sorted by their numbers.
func ListByLot[Q gormdb.Queryer](
	ctx context.Context, q Q, lotID uuid.UUID,
) ([]model.Slot, error) {
	var gss []gSlot
	err := q.GORM(ctx).Where(
		"lot_id = ?", lotID,
	).Order("slot_number").Find(&gss).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	slots := make([]model.Slot, 0, len(gss))
	for i := range gss {
		slots = append(slots, *gss[i].Model())
	}
	return slots, nil
}

type counts struct {
	Total     int
	Available int
}

// Count queries the number of all and available slots of lotID.
func Count[Q gormdb.Queryer](
	ctx context.Context, q Q, lotID uuid.UUID,
) (total, available int, err error) {
	var c counts
	err = q.GORM(ctx).Model(&gSlot{}).Select(
		"COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN is_available THEN 1 ELSE 0 END), 0)" +
			" AS available",
	).Where("lot_id = ?", lotID).Scan(&c).Error
	if err != nil {
		return 0, 0, fmt.Errorf("query: %w", err)
	}
	return c.Total, c.Available, nil
}
