// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lotsrs realizes the lots resource, allowing the parking lots
// provisioning and inspection REST APIs to be accepted and delegated to
// the lots use cases respectively.
package lotsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momeni/parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking/pkg/core/usecase/lotsuc"
)

type resource struct {
	lots func() *lotsuc.UseCase
}

// Register instantiates a resource adapting the lots use case instance
// (which is fetched for each request) with the relevant REST APIs:
//  1. POST request to /api/pkweb/v1/lots
//     in order to create a lot and its slots,
//  2. GET request to /api/pkweb/v1/lots
//     in order to list all lots,
//  3. GET request to /api/pkweb/v1/lots/:lid
//     in order to fetch a lot and its occupancy,
//  4. GET request to /api/pkweb/v1/lots/:lid/slots
//     in order to list the slots of a lot.
func Register(r *gin.RouterGroup, lots func() *lotsuc.UseCase) {
	rs := &resource{lots: lots}
	r.POST("lots", rs.CreateLot)
	r.GET("lots", rs.ListLots)
	r.GET("lots/:lid", rs.GetLot)
	r.GET("lots/:lid/slots", rs.ListSlots)
}

func (rs *resource) CreateLot(c *gin.Context) {
	req := rs.DserCreateLotReq(c)
	if req == nil {
		return
	}
	lot, err := rs.lots().CreateLot(
		c, req.Name, req.Capacity, req.HourlyRate, req.GateCount,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, lot)
}

func (rs *resource) ListLots(c *gin.Context) {
	ll, err := rs.lots().ListLots(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ll)
}

func (rs *resource) GetLot(c *gin.Context) {
	lotID, ok := rs.DserLotID(c)
	if !ok {
		return
	}
	lot, o, err := rs.lots().Occupancy(c, lotID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, LotResp{Lot: lot, Occupancy: o})
}

func (rs *resource) ListSlots(c *gin.Context) {
	lotID, ok := rs.DserLotID(c)
	if !ok {
		return
	}
	slots, err := rs.lots().Slots(c, lotID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
