// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Vehicle models a vehicle which may enter parking lots. Vehicles are
// registered before parking and are identified by their ID, while the
// SerialNumber is the human readable plate number.
type Vehicle struct {
	ID           uuid.UUID   `json:"id"`
	SerialNumber string      `json:"serial_number"`
	Type         VehicleType `json:"type"`
	RegisteredAt time.Time   `json:"registered_at"`
}

// VehicleType specifies the vehicle type enum. Although this enum is
// numeric, it is (de)serialized as a string for readability in the
// adapter layer and the database.
type VehicleType int

// Valid values for the VehicleType enum.
const (
	VehicleTypeInvalid VehicleType = iota // zero value is invalid

	VehicleTypeCar
	VehicleTypeBike
)

// ErrUnknownVehicleType indicates that a given string may not be parsed
// as a valid/known vehicle type. The invalid string is not included
// because the caller of ParseVehicleType knows about it already.
var ErrUnknownVehicleType = errors.New("unknown vehicle type")

// VehicleTypeError indicates an invalid vehicle type, containing the
// invalid type as an integer.
type VehicleTypeError int

// Error implements the error interface, returning a string
// representation of the VehicleTypeError.
func (e VehicleTypeError) Error() string {
	return fmt.Sprintf("invalid vehicle type: %d", e)
}

// Validate returns nil if VehicleType value is valid. For invalid
// values, an instance of the VehicleTypeError will be returned.
func (vt VehicleType) Validate() error {
	switch vt {
	case VehicleTypeCar, VehicleTypeBike:
		return nil
	default:
		return VehicleTypeError(vt)
	}
}

// String converts the VehicleType enum to a string.
// Invalid vehicle type causes a panic.
func (vt VehicleType) String() string {
	switch vt {
	case VehicleTypeCar:
		return "car"
	case VehicleTypeBike:
		return "bike"
	default:
		panic(VehicleTypeError(vt))
	}
}

// MarshalText implements the encoding.TextMarshaler interface, so
// vehicle types are serialized as strings in JSON documents.
func (vt VehicleType) MarshalText() ([]byte, error) {
	if err := vt.Validate(); err != nil {
		return nil, err
	}
	return []byte(vt.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (vt *VehicleType) UnmarshalText(text []byte) error {
	v, err := ParseVehicleType(string(text))
	if err != nil {
		return err
	}
	*vt = v
	return nil
}

// ParseVehicleType parses the given string and returns a VehicleType.
// For invalid strings, VehicleTypeInvalid and ErrUnknownVehicleType
// will be returned.
func ParseVehicleType(vt string) (VehicleType, error) {
	switch vt {
	case "car":
		return VehicleTypeCar, nil
	case "bike":
		return VehicleTypeBike, nil
	default:
		return VehicleTypeInvalid, ErrUnknownVehicleType
	}
}
