// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package parkingrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/momeni/parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking/pkg/core/model"
)

// DefaultEntryGate is used when a park request omits the entry_gate.
const DefaultEntryGate = 1

type rawParkReq struct {
	VehicleID string `json:"vehicle_id" binding:"required"`
	LotID     string `json:"lot_id" binding:"required"`
	EntryGate *int   `json:"entry_gate" binding:"omitempty,min=1"`
}

type parkReq struct {
	VehicleID uuid.UUID
	LotID     uuid.UUID
	EntryGate int
}

type ticketURI struct {
	TicketID string `uri:"tid" binding:"required"`
}

type parkingsQuery struct {
	LotID string `form:"lot_id"`
}

// ParkResp reports the opened ticket and its assigned slot number.
type ParkResp struct {
	Ticket     *model.Ticket `json:"ticket"`
	SlotNumber int           `json:"slot_number"`
}

// RemoveResp reports the closed ticket and its actual stay duration
// in hours, rounded to two decimal places.
type RemoveResp struct {
	Ticket        *model.Ticket   `json:"ticket"`
	DurationHours decimal.Decimal `json:"duration_hours"`
}

// ParkingsResp lists the current parkings.
type ParkingsResp struct {
	CurrentParkings []model.Parking `json:"current_parkings"`
	TotalCount      int             `json:"total_count"`
}

func (rs *resource) DserParkReq(c *gin.Context) *parkReq {
	req := &rawParkReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	var errs map[string][]string
	val := &parkReq{
		VehicleID: serdser.ParseUUID(&errs, "vehicle_id", req.VehicleID),
		LotID:     serdser.ParseUUID(&errs, "lot_id", req.LotID),
		EntryGate: DefaultEntryGate,
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	if req.EntryGate != nil {
		val.EntryGate = *req.EntryGate
	}
	return val
}

func (rs *resource) DserTicketID(c *gin.Context) (uuid.UUID, bool) {
	req := &ticketURI{}
	if ok := serdser.BindURI(c, req); !ok {
		return uuid.Nil, false
	}
	var errs map[string][]string
	ticketID := serdser.ParseUUID(&errs, "tid", req.TicketID)
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return ticketID, true
}

// DserLotFilter parses the optional lot_id query param. A nil UUID
// pointer is returned when the param is missing.
func (rs *resource) DserLotFilter(c *gin.Context) (*uuid.UUID, bool) {
	req := &parkingsQuery{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil, false
	}
	if req.LotID == "" {
		return nil, true
	}
	var errs map[string][]string
	lotID := serdser.ParseUUID(&errs, "lot_id", req.LotID)
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil, false
	}
	return &lotID, true
}

// SerRemoveResp creates a RemoveResp for the closed `t` ticket.
func SerRemoveResp(t *model.Ticket) *RemoveResp {
	return &RemoveResp{
		Ticket:        t,
		DurationHours: decimal.NewFromFloat(t.Duration().Hours()).Round(2),
	}
}

// SerParkingsResp wraps the `pp` parkings. A nil slice is reported as
// an empty list.
func SerParkingsResp(pp []model.Parking) *ParkingsResp {
	if pp == nil {
		pp = []model.Parking{}
	}
	return &ParkingsResp{CurrentParkings: pp, TotalCount: len(pp)}
}
