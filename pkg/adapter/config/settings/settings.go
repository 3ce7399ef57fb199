// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
)

// Nil2Zero makes (*t) point to a fresh zero T when it is nil.
// A non-nil (*t) is left alone.
func Nil2Zero[T any](t **T) {
	if *t == nil {
		*t = new(T)
	}
}

// OverwriteNil fills a nil (*dst) with a copy of (*src). It is used
// for installing defaults, so an already set dst or a nil src keeps
// dst untouched.
func OverwriteNil[T any](dst **T, src *T) {
	if *dst == nil && src != nil {
		*dst = clone(src)
	}
}

// OverwriteUnconditionally replaces (*dst) with a copy of (*src),
// or with nil when src is nil. The copy keeps dst independent of
// later changes to src, which matters when a reloaded configuration
// is merged into the running one.
func OverwriteUnconditionally[T any](dst **T, src *T) {
	*dst = clone(src)
}

func clone[T any](src *T) *T {
	if src == nil {
		return nil
	}
	t := *src
	return &t
}

// OutOfRangeError reports a setting which fell outside of its
// [min, max] boundaries. Value holds the rejected value while the
// setting itself is clamped to the violated boundary.
type OutOfRangeError[T cmp.Ordered] struct {
	Value        *T
	LessThanMin  bool
	InvalidRange bool // min and max were swapped
}

// Error implements the error interface.
func (e *OutOfRangeError[T]) Error() string {
	if e.InvalidRange {
		return "min is greater than max"
	}
	if e.LessThanMin {
		return "value is less than min"
	}
	return "value is greater than max"
}

// VerifyRange checks (*value) against the optional minb and maxb
// boundaries. A nil (*value) is always accepted because it stands for
// a missing setting which is defaulted elsewhere. On a violation, the
// setting is clamped and the original value is reported in the error.
func VerifyRange[T cmp.Ordered](
	value **T, minb, maxb *T,
) *OutOfRangeError[T] {
	if minb != nil && maxb != nil && *minb > *maxb {
		return &OutOfRangeError[T]{InvalidRange: true}
	}
	if *value == nil {
		return nil
	}
	v := **value
	if minb != nil && v < *minb {
		**value = *minb
		return &OutOfRangeError[T]{Value: &v, LessThanMin: true}
	}
	if maxb != nil && v > *maxb {
		**value = *maxb
		return &OutOfRangeError[T]{Value: &v}
	}
	return nil
}
