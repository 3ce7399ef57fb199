// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package slotsuc contains the slot pool UseCase which owns the slots
// availability. It is not exposed to the end-users directly. Instead,
// the lots and tickets use cases call it from within their database
// transactions, so slot changes are committed or rolled back together
// with the lot or ticket changes which cause them.
package slotsuc

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/momeni/parking/pkg/core/log"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
)

// UseCase represents the slot pool. It is stateless and may be used
// concurrently.
type UseCase struct {
	slotsrp repo.Slots
}

// New instantiates a slot pool use case.
func New(s repo.Slots) *UseCase {
	return &UseCase{slotsrp: s}
}

// Materialize creates capacity available slots, numbered from zero,
// for the lotID lot in the tx transaction.
func (sp *UseCase) Materialize(
	ctx context.Context, tx repo.Tx, lotID uuid.UUID, capacity int,
) ([]model.Slot, error) {
	slots, err := sp.slotsrp.Tx(tx).CreateAll(ctx, lotID, capacity)
	if err != nil {
		return nil, fmt.Errorf("materializing slots: %w", err)
	}
	return slots, nil
}

// ClaimFreeSlot marks the lowest numbered available slot of the lotID
// lot as unavailable and returns it. Errors wrap the
// model.ErrNoAvailableSlot if the lot is full. The claim is persisted
// only if tx commits.
func (sp *UseCase) ClaimFreeSlot(
	ctx context.Context, tx repo.Tx, lotID uuid.UUID,
) (*model.Slot, error) {
	slot, err := sp.slotsrp.Tx(tx).ClaimFree(ctx, lotID)
	if err != nil {
		return nil, fmt.Errorf("claiming a slot: %w", err)
	}
	log.Debug(
		ctx, "slot is claimed",
		log.UUID("lot", lotID), log.UUID("slot", slot.ID),
	)
	return slot, nil
}

// ReleaseSlot marks the slotID slot as available. Releasing a slot
// which is available already is an invariant violation and returns an
// error wrapping the model.ErrInvalidState (while changing nothing).
func (sp *UseCase) ReleaseSlot(
	ctx context.Context, tx repo.Tx, slotID uuid.UUID,
) (*model.Slot, error) {
	slot, err := sp.slotsrp.Tx(tx).Release(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("releasing slot %s: %w", slotID, err)
	}
	return slot, nil
}

// Slots lists the slots of the lotID lot using the c connection.
func (sp *UseCase) Slots(
	ctx context.Context, c repo.Conn, lotID uuid.UUID,
) ([]model.Slot, error) {
	return sp.slotsrp.Conn(c).ListByLot(ctx, lotID)
}

// Occupancy counts the occupied and available slots of the lot.
func (sp *UseCase) Occupancy(
	ctx context.Context, c repo.Conn, lot *model.Lot,
) (*model.Occupancy, error) {
	total, available, err := sp.slotsrp.Conn(c).Count(ctx, lot.ID)
	if err != nil {
		return nil, fmt.Errorf("counting slots: %w", err)
	}
	return &model.Occupancy{
		LotID:     lot.ID,
		Capacity:  total,
		Occupied:  total - available,
		Available: available,
	}, nil
}
