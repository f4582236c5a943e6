package gopinotdb

import (
	"database/sql/driver"
)

// pinotTx satisfies database/sql. Pinot has no transactions, so both Commit
// and Rollback only release the transaction.
type pinotTx struct {
	pc *pinotConn
}

func (tx *pinotTx) Commit() error {
	return tx.end()
}

func (tx *pinotTx) Rollback() error {
	return tx.end()
}

func (tx *pinotTx) end() error {
	if tx.pc == nil || tx.pc.conn.IsClosed() {
		return driver.ErrBadConn
	}
	tx.pc = nil
	return nil
}
