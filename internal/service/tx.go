package service

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// readTx runs fn in a read-only transaction so a listing's count and page
// fetch see the same snapshot. sqlite transactions are already serialized.
func readTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	db = db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		return db.Transaction(fn, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	}
	return db.Transaction(fn)
}
