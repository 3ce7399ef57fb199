// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settingsrs exposes the visible settings of pkweb as a
// read-only resource.
package settingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momeni/parking/pkg/core/usecase/appuc"
)

// Register serves GET settings under r. Settings are read from app on
// every request, so a reload is visible right away.
func Register(r *gin.RouterGroup, app *appuc.UseCase) {
	r.GET("settings", func(c *gin.Context) {
		c.JSON(http.StatusOK, app.Settings())
	})
}
