package runner

import (
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"
)

const (
	txPending = iota
	txCommitted
	txRollbacked
)

// ErrTxClosed occurs when Commit or Rollback is called on a finished
// transaction.
var ErrTxClosed = errors.New("transaction has already been committed or rolled back")

// Tx is a transaction. Queryable methods run inside it.
type Tx struct {
	sync.Mutex
	tx *sqlx.Tx
	*Queryable
	state int
}

// Commit commits the transaction.
func (tx *Tx) Commit() error {
	tx.Lock()
	defer tx.Unlock()
	if tx.state != txPending {
		return ErrTxClosed
	}
	if err := tx.tx.Commit(); err != nil {
		return logger.Error("commit failed", "err", err)
	}
	tx.state = txCommitted
	if logger.IsDebug() {
		logger.Debug("tx commit")
	}
	return nil
}

// Rollback rolls the transaction back.
func (tx *Tx) Rollback() error {
	tx.Lock()
	defer tx.Unlock()
	if tx.state != txPending {
		return ErrTxClosed
	}
	if err := tx.tx.Rollback(); err != nil {
		return logger.Error("rollback failed", "err", err)
	}
	tx.state = txRollbacked
	if logger.IsDebug() {
		logger.Debug("tx rollback")
	}
	return nil
}

// AutoRollback rolls back unless the transaction was committed. Meant for
// defer, so errors are logged rather than returned.
func (tx *Tx) AutoRollback() error {
	tx.Lock()
	defer tx.Unlock()
	if tx.state != txPending {
		return nil
	}
	if err := tx.tx.Rollback(); err != nil {
		return logger.Error("autorollback failed", "err", err)
	}
	tx.state = txRollbacked
	return nil
}
