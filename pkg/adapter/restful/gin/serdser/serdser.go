// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the common (de)serialization helpers which
// are used by the resources packages. Requests are bound and validated
// using the gin-gonic bindings and errors are reported as either
// {"detail": "message"} or {"field": ["message", ...]} JSON objects.
package serdser

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/log"
)

// InternalErrorDetail is reported instead of the actual error message
// of the 5xx responses.
const InternalErrorDetail = "internal server error"

var fieldNamesOnce sync.Once

// UseWireFieldNames asks the gin-gonic validator to report the invalid
// fields by their json, form, or uri tag names (whichever is present)
// instead of their Go names.
func UseWireFieldNames() {
	fieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				switch name {
				case "-":
					return ""
				case "":
					continue
				}
				return name
			}
			return fld.Name
		})
	})
}

// Bind deserializes the request into `req` using the `b` binding and
// validates it. In case of errors, a 400 response is written and
// false is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	return reportBindErr(c, c.ShouldBindWith(req, b))
}

// BindURI deserializes the path params into `req` and validates it.
// In case of errors, a 400 response is written and false is returned.
func BindURI(c *gin.Context, req any) bool {
	return reportBindErr(c, c.ShouldBindUri(req))
}

func reportBindErr(c *gin.Context, err error) bool {
	switch err := err.(type) {
	case *validator.InvalidValidationError:
		SerErr(c, err)
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// AddErr appends the `msgs` messages to the errors of the `name` field.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

// ParseUUID parses `s` as the `name` field. In case of errors, the
// message is recorded in `errs` and uuid.Nil is returned.
func ParseUUID(
	errs *map[string][]string, name, s string,
) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		AddErr(errs, name, "The "+name+" is not a UUID.")
		return uuid.Nil
	}
	return id
}

// SerErr writes `err` as a JSON response. The status code is taken from
// a wrapped cerr.Error (if any) and defaults to 500. The details of 5xx
// errors are logged and replaced by InternalErrorDetail.
func SerErr(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	var ce *cerr.Error
	if errors.As(err, &ce) {
		code = ce.HTTPStatusCode
	}
	if code >= http.StatusInternalServerError {
		log.Error(
			c, "request failed",
			slog.String("path", c.FullPath()), log.Err("err", err),
		)
		c.JSON(code, gin.H{"detail": InternalErrorDetail})
		return
	}
	c.JSON(code, gin.H{"detail": ce.Err.Error()})
}
