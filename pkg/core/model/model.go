// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by JSON
// serializers) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
// The ORM specific structs are kept in the adapter layer because the
// table layout (e.g., the denormalized lot_id column of tickets) does
// not need to leak into the business-level models.
package model
