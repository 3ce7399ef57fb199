// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/momeni/parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking/pkg/core/model"
)

type rawRegisterReq struct {
	SerialNumber string `json:"serial_number" binding:"required,max=32"`
	Type         string `json:"type" binding:"required,oneof=car bike"`
}

type registerReq struct {
	SerialNumber string
	Type         model.VehicleType
}

type vehicleURI struct {
	VehicleID string `uri:"vid" binding:"required"`
}

func (rs *resource) DserRegisterReq(c *gin.Context) *registerReq {
	req := &rawRegisterReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	vt, err := model.ParseVehicleType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, map[string][]string{
			"type": {err.Error()},
		})
		return nil
	}
	return &registerReq{SerialNumber: req.SerialNumber, Type: vt}
}

func (rs *resource) DserVehicleID(c *gin.Context) (uuid.UUID, bool) {
	req := &vehicleURI{}
	if ok := serdser.BindURI(c, req); !ok {
		return uuid.Nil, false
	}
	var errs map[string][]string
	vehicleID := serdser.ParseUUID(&errs, "vid", req.VehicleID)
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return vehicleID, true
}
