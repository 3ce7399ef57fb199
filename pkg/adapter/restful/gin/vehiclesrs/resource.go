// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrs realizes the vehicles resource, allowing vehicles
// to be registered and queried through the REST APIs.
package vehiclesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momeni/parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking/pkg/core/usecase/vehiclesuc"
)

type resource struct {
	vehicles func() *vehiclesuc.UseCase
}

// Register instantiates a resource adapting the vehicles use case with
// the relevant REST APIs:
//  1. POST request to /api/pkweb/v1/vehicles
//     in order to register a vehicle,
//  2. GET request to /api/pkweb/v1/vehicles
//     in order to list the registered vehicles,
//  3. GET request to /api/pkweb/v1/vehicles/:vid
//     in order to fetch one vehicle.
func Register(r *gin.RouterGroup, vehicles func() *vehiclesuc.UseCase) {
	rs := &resource{vehicles: vehicles}
	r.POST("vehicles", rs.RegisterVehicle)
	r.GET("vehicles", rs.ListVehicles)
	r.GET("vehicles/:vid", rs.GetVehicle)
}

func (rs *resource) RegisterVehicle(c *gin.Context) {
	req := rs.DserRegisterReq(c)
	if req == nil {
		return
	}
	v, err := rs.vehicles().Register(c, req.SerialNumber, req.Type)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (rs *resource) ListVehicles(c *gin.Context) {
	vv, err := rs.vehicles().List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vv)
}

func (rs *resource) GetVehicle(c *gin.Context) {
	vehicleID, ok := rs.DserVehicleID(c)
	if !ok {
		return
	}
	v, err := rs.vehicles().Get(c, vehicleID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
