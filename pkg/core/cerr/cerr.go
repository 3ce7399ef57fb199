// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the core layer errors. An Error wraps another
// error (usually one of the model sentinel errors) and attaches the
// HTTP status code which should be reported when it reaches a REST API
// resource. Wrapping keeps the errors.Is and errors.As functions
// working for callers in all layers.
package cerr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// Internal reports whether the error is caused by a server-side fault.
// The details of internal errors should be logged and not reported to
// the end-users.
func (e *Error) Internal() bool {
	return e.HTTPStatusCode >= http.StatusInternalServerError
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

func Internal(err error) *Error {
	return &Error{
		Err: err, HTTPStatusCode: http.StatusInternalServerError,
	}
}
