// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lotsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/momeni/parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking/pkg/core/model"
)

type createLotReq struct {
	Name       string          `json:"name" binding:"required,max=128"`
	Capacity   int             `json:"capacity" binding:"required,min=1"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	GateCount  int             `json:"gate_count" binding:"required,min=1"`
}

type lotURI struct {
	LotID string `uri:"lid" binding:"required"`
}

// LotResp reports a lot together with its current occupancy.
type LotResp struct {
	Lot       *model.Lot       `json:"lot"`
	Occupancy *model.Occupancy `json:"occupancy"`
}

func (rs *resource) DserCreateLotReq(c *gin.Context) *createLotReq {
	req := &createLotReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	if req.HourlyRate.IsNegative() {
		c.JSON(http.StatusBadRequest, map[string][]string{
			"hourly_rate": {"The hourly_rate must not be negative."},
		})
		return nil
	}
	return req
}

func (rs *resource) DserLotID(c *gin.Context) (uuid.UUID, bool) {
	req := &lotURI{}
	if ok := serdser.BindURI(c, req); !ok {
		return uuid.Nil, false
	}
	var errs map[string][]string
	lotID := serdser.ParseUUID(&errs, "lid", req.LotID)
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return lotID, true
}
