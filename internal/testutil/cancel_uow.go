package testutil

import (
	"context"
	"sync/atomic"

	"github.com/alexanderramin/chronos/internal/db"
)

// CancelAfterNTxUoW delegates to Inner and fires Cancel once the Nth
// transaction has completed. This simulates a deadline expiring in the
// middle of a multi-transaction operation: everything committed before
// the cancellation must survive it.
//
// Transactions are counted starting at 1.
type CancelAfterNTxUoW struct {
	Inner  db.UnitOfWork
	Cancel context.CancelFunc
	After  int32
	count  atomic.Int32
}

func (u *CancelAfterNTxUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	err := u.Inner.WithinTx(ctx, fn)
	if u.count.Add(1) == u.After {
		u.Cancel()
	}
	return err
}
