// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/pkg/adapter/config/settings"
)

func TestDurationMarshal(t *testing.T) {
	cases := map[time.Duration]string{
		10 * time.Second:           "10s",
		2 * time.Minute:            "2m",
		3 * time.Hour:              "3h",
		time.Hour + 30*time.Second: "1h0m30s",
	}
	for d, expected := range cases {
		sd := settings.Duration(d)
		s := sd.Marshal()
		require.NotNil(t, s)
		assert.Equal(t, expected, *s)
	}
	var nilDuration *settings.Duration
	assert.Nil(t, nilDuration.Marshal())
}

func TestVerifyRange(t *testing.T) {
	minb, maxb := 1, 10
	v := 20
	p := &v
	err := settings.VerifyRange(&p, &minb, &maxb)
	require.NotNil(t, err)
	assert.False(t, err.LessThanMin)
	assert.Equal(t, 10, *p)
	assert.Equal(t, 20, *err.Value)

	v = 0
	p = &v
	err = settings.VerifyRange(&p, &minb, &maxb)
	require.NotNil(t, err)
	assert.True(t, err.LessThanMin)
	assert.Equal(t, 1, *p)

	p = nil
	assert.Nil(t, settings.VerifyRange(&p, &minb, &maxb))

	err = settings.VerifyRange(&p, &maxb, &minb)
	require.NotNil(t, err)
	assert.True(t, err.InvalidRange)
}
