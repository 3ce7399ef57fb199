// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings holds the small generic helpers shared by the
// versioned configuration packages: defaulting of optional pointer
// fields, clamping of bounded values (e.g., the lot capacity limit),
// and a YAML friendly duration type.
package settings

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// Duration wraps time.Duration so it can be read from and written to
// configuration files as strings like "30s" or "1h30m".
type Duration time.Duration

// UnmarshalText parses data with time.ParseDuration. The receiver is
// only updated when parsing succeeds.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// Marshal formats d like time.Duration.String but drops the trailing
// zero units, so 2m0s becomes 2m and 3h0m0s becomes 3h.
// A nil d gives a nil string, letting callers omit unset fields.
func (d *Duration) Marshal() *string {
	if d == nil {
		return nil
	}
	s := time.Duration(*d).String()
	if t, ok := strings.CutSuffix(s, "m0s"); ok {
		s = t + "m"
	}
	if t, ok := strings.CutSuffix(s, "h0m"); ok {
		s = t + "h"
	}
	return &s
}

// MarshalText implements encoding.TextMarshaler.
func (d *Duration) MarshalText() ([]byte, error) {
	s := d.Marshal()
	if s == nil {
		return nil, errors.New("nil duration")
	}
	return []byte(*s), nil
}

// LogValue implements slog.LogValuer.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(time.Duration(*d))
}
