// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"

	"github.com/momeni/parking/pkg/core/model"
)

// MismatchingSemVerError is returned when a configuration file or
// database schema declares a version other than the one pkweb was
// built for. Index 0 holds the wanted version and index 1 holds the
// version which was found.
type MismatchingSemVerError [2]model.SemVer

func (msve *MismatchingSemVerError) Error() string {
	return fmt.Sprintf("expected v%s, but got v%s", msve[0], msve[1])
}
