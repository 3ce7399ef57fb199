// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package parkingrs realizes the parkings and tickets resources,
// allowing vehicles to enter and exit the parking lots and the current
// parkings to be listed through the REST APIs.
package parkingrs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momeni/parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking/pkg/core/usecase/parkinguc"
)

type resource struct {
	parking func() *parkinguc.UseCase
}

// Register instantiates a resource adapting the parking use case with
// the relevant REST APIs:
//  1. POST request to /api/pkweb/v1/parkings
//     in order to park a vehicle and open its ticket,
//  2. POST request to /api/pkweb/v1/parkings/:tid/exit
//     in order to close the ticket and release its slot,
//  3. GET request to /api/pkweb/v1/parkings?lot_id=
//     in order to list the current parkings, optionally for one lot,
//  4. GET request to /api/pkweb/v1/tickets/:tid
//     in order to fetch an open or closed ticket.
func Register(r *gin.RouterGroup, parking func() *parkinguc.UseCase) {
	rs := &resource{parking: parking}
	r.POST("parkings", rs.Park)
	r.POST("parkings/:tid/exit", rs.Remove)
	r.GET("parkings", rs.CurrentParkings)
	r.GET("tickets/:tid", rs.GetTicket)
}

func (rs *resource) Park(c *gin.Context) {
	req := rs.DserParkReq(c)
	if req == nil {
		return
	}
	e, err := rs.parking().Park(c, req.VehicleID, req.LotID, req.EntryGate)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, ParkResp{
		Ticket:     e.Ticket,
		SlotNumber: e.Slot.Number,
	})
}

func (rs *resource) Remove(c *gin.Context) {
	ticketID, ok := rs.DserTicketID(c)
	if !ok {
		return
	}
	t, err := rs.parking().Remove(c, ticketID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerRemoveResp(t))
}

func (rs *resource) CurrentParkings(c *gin.Context) {
	lotID, ok := rs.DserLotFilter(c)
	if !ok {
		return
	}
	pp, err := rs.parking().CurrentParkings(c, lotID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerParkingsResp(pp))
}

func (rs *resource) GetTicket(c *gin.Context) {
	ticketID, ok := rs.DserTicketID(c)
	if !ok {
		return
	}
	t, err := rs.parking().Ticket(c, ticketID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
