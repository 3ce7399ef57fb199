// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momeni/parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/slotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/ticketsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/vehiclesrp"
	"github.com/momeni/parking/pkg/adapter/metrics/prom"
	"github.com/momeni/parking/pkg/adapter/restful/gin/lotsrs"
	"github.com/momeni/parking/pkg/adapter/restful/gin/parkingrs"
	"github.com/momeni/parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/parking/pkg/adapter/restful/gin/settingsrs"
	"github.com/momeni/parking/pkg/adapter/restful/gin/vehiclesrs"
	"github.com/momeni/parking/pkg/core/clock"
	"github.com/momeni/parking/pkg/core/repo"
	"github.com/momeni/parking/pkg/core/usecase/appuc"
)

// BasePath is the common prefix of all REST APIs.
const BasePath = "/api/pkweb/v1"

// Options are the settings which are needed by Register.
type Options struct {
	// Builder creates the use case objects, e.g., a *cfg1.Config.
	Builder appuc.Builder

	// Metrics, if not nil, receives the parking metrics which are
	// served by the /metrics route.
	Metrics *prometheus.Registry

	// Clock, if not nil, replaces the system clock of the use cases.
	Clock clock.Clock
}

// Register instantiates relevant repositories and use cases based on
// the opts.Builder settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like lotsuc and each repository package is named like lotsrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like lotsrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// The created application use case is returned, so it may be reloaded
// later with a fresh Builder.
func Register(
	e *gin.Engine, p repo.Pool, opts Options,
) (*appuc.UseCase, error) {
	var appOpts []appuc.Option
	if opts.Clock != nil {
		appOpts = append(appOpts, appuc.WithClock(opts.Clock))
	}
	if opts.Metrics != nil {
		c, err := prom.New(opts.Metrics)
		if err != nil {
			return nil, fmt.Errorf("creating metrics collector: %w", err)
		}
		appOpts = append(appOpts, appuc.WithObserver(c))
		e.GET("/metrics", gin.WrapH(prom.Handler(opts.Metrics)))
	}
	appUseCase, err := appuc.New(p, appuc.Repos{
		Lots:     lotsrp.New(),
		Slots:    slotsrp.New(),
		Tickets:  ticketsrp.New(),
		Vehicles: vehiclesrp.New(),
	}, appOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating application use case: %w", err)
	}
	if err = appUseCase.Reload(opts.Builder); err != nil {
		return nil, fmt.Errorf("creating use cases: %w", err)
	}
	serdser.UseWireFieldNames()
	r := e.Group(BasePath)
	settingsrs.Register(r, appUseCase)
	lotsrs.Register(r, appUseCase.LotsUseCase)
	vehiclesrs.Register(r, appUseCase.VehiclesUseCase)
	parkingrs.Register(r, appUseCase.ParkingUseCase)
	return appUseCase, nil
}
