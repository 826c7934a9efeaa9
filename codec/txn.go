package codec

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/ndcodec/resource"
)

// txn tracks object slot reference changes made while a record is staged.
// Handles acquired for new values are released on rollback; handles that
// were overwritten are released only on commit. A nested record's txn
// hands both lists to its parent on commit.
type txn struct {
	handles  *resource.Table
	parent   *txn
	acquired []resource.Handle
	released []resource.Handle
}

const maxPooledTxnCapacity = 64

var txnPool = sync.Pool{
	New: func() any {
		return &txn{
			acquired: make([]resource.Handle, 0, 8),
			released: make([]resource.Handle, 0, 8),
		}
	},
}

func newTxn(handles *resource.Table, parent *txn) *txn {
	tx := txnPool.Get().(*txn)
	tx.handles = handles
	tx.parent = parent
	return tx
}

// track records a handle acquired during the transaction.
func (tx *txn) track(h resource.Handle) {
	tx.acquired = append(tx.acquired, h)
}

// deferRelease schedules release of an overwritten handle for commit.
func (tx *txn) deferRelease(h resource.Handle) {
	if h != 0 {
		tx.released = append(tx.released, h)
	}
}

// commit makes the transaction's reference changes final. It runs after
// the staged bytes are copied out, so it cannot fail: every released
// handle was live when its slot was overwritten, and a handle some other
// owner released in the meantime is only logged.
func (tx *txn) commit() {
	defer tx.recycle()

	if tx.parent != nil {
		tx.parent.acquired = append(tx.parent.acquired, tx.acquired...)
		tx.parent.released = append(tx.parent.released, tx.released...)
		return
	}

	for _, h := range tx.released {
		if err := tx.handles.Release(h); err != nil {
			Logger().Warn("release overwritten object", zap.Uint32("handle", uint32(h)), zap.Error(err))
		}
	}
}

// rollback releases every handle acquired during the transaction.
func (tx *txn) rollback() {
	defer tx.recycle()

	for _, h := range tx.acquired {
		_ = tx.handles.Release(h)
	}
}

func (tx *txn) recycle() {
	if cap(tx.acquired) > maxPooledTxnCapacity || cap(tx.released) > maxPooledTxnCapacity {
		return
	}
	tx.handles = nil
	tx.parent = nil
	tx.acquired = tx.acquired[:0]
	tx.released = tx.released[:0]
	txnPool.Put(tx)
}
