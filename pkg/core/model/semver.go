// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer is a major.minor.patch release version. It tags both the
// configuration file format and the database schema, so pkweb can
// refuse to run against a layout it does not understand.
// A major bump breaks compatibility, a minor bump only adds.
type SemVer [3]uint

// UnmarshalText parses "major[.minor[.patch]]" into sv. Missing
// components are taken as zero. On error, sv is not modified.
func (sv *SemVer) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), ".")
	if len(parts) > 3 {
		return fmt.Errorf("the %q has wrong number of components", text)
	}
	var v SemVer
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 0)
		if err != nil {
			return fmt.Errorf("the %q component is not numeric", p)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

// Marshal returns the string form of sv for YAML serialization.
func (sv *SemVer) Marshal() string {
	return sv.String()
}

// MarshalText implements encoding.TextMarshaler.
func (sv *SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}
