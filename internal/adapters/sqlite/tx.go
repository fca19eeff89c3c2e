package sqlite

import (
	"database/sql"

	"opennoution/internal/ports"
)

// storeTx implements ports.StoreTx
type storeTx struct {
	collections
	tx *sql.Tx
}

// Ensure storeTx implements StoreTx
var _ ports.StoreTx = (*storeTx)(nil)

// Commit commits the transaction
func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}
