package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx executes fn inside a transaction. When db is nil (stub repositories in
// unit tests) fn runs directly with a nil tx; stub Tx methods ignore it.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
