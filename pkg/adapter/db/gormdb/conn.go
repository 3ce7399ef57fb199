// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/parking/pkg/core/repo"
)

// Conn is one connection of a Pool. Its statements are auto-committed
// unless they run in a Tx.
type Conn struct {
	session
}

type TxHandler = repo.TxHandler

// Tx runs f in a new transaction of c. It commits when f returns nil
// and rolls back when f fails or panics. A panic is reported as an
// error instead of being propagated.
func (c *Conn) Tx(ctx context.Context, f TxHandler) (err error) {
	gtx := c.DB.WithContext(ctx).Begin()
	if gtx.Error != nil {
		return fmt.Errorf("begin tx: %w", gtx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panicked: %v", r)
		}
		if err == nil {
			if err = gtx.Commit().Error; err != nil {
				err = fmt.Errorf("commit: %w", err)
			}
			return
		}
		err = fmt.Errorf("handler: %w", err)
		if rbErr := gtx.Rollback().Error; rbErr != nil {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
	}()
	return f(ctx, &Tx{session{gtx}})
}

func (c *Conn) IsConn() {
}
