// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lotsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/momeni/parking/pkg/adapter/db/gormdb"
	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/model"
)

type gLot struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name       string
	Capacity   int
	HourlyRate decimal.Decimal
	GateCount  int
	CreatedAt  time.Time
}

func (gl *gLot) TableName() string {
	return "parking_lots"
}

func (gl *gLot) Model() *model.Lot {
	return &model.Lot{
		ID:         gl.ID,
		Name:       gl.Name,
		Capacity:   gl.Capacity,
		HourlyRate: gl.HourlyRate,
		GateCount:  gl.GateCount,
		CreatedAt:  gl.CreatedAt.UTC(),
	}
}

func fromModel(lot *model.Lot) *gLot {
	return &gLot{
		ID:         lot.ID,
		Name:       lot.Name,
		Capacity:   lot.Capacity,
		HourlyRate: lot.HourlyRate,
		GateCount:  lot.GateCount,
		CreatedAt:  lot.CreatedAt,
	}
}

// Create inserts lot using the q connection or transaction.
func Create[Q gormdb.Queryer](
	ctx context.Context, q Q, lot *model.Lot,
) error {
	if err := q.GORM(ctx).Create(fromModel(lot)).Error; err != nil {
		if gormdb.IsUniqueViolation(err) {
			return cerr.Conflict(fmt.Errorf(
				"lot %q exists: %w", lot.Name, model.ErrInvalidLot,
			))
		}
		return fmt.Errorf("inserting lot: %w", err)
	}
	return nil
}

// Get queries the lotID lot.
func Get[Q gormdb.Queryer](
	ctx context.Context, q Q, lotID uuid.UUID,
) (*model.Lot, error) {
	var gl gLot
	err := q.GORM(ctx).Where("id = ?", lotID).Take(&gl).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(model.ErrLotNotFound)
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gl.Model(), nil
}

// List queries all lots, sorted by name.
func List[Q gormdb.Queryer](
	ctx context.Context, q Q,
) ([]model.Lot, error) {
	var gls []gLot
	err := q.GORM(ctx).Order("name").Order("created_at").Find(&gls).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	lots := make([]model.Lot, 0, len(gls))
	for i := range gls {
		lots = append(lots, *gls[i].Model())
	}
	return lots, nil
}
