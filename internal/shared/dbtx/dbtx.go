// Package dbtx lets gorm repositories run inside a *sql.Tx opened by a service.
package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a gorm session whose statements execute on tx. A nil tx returns
// db unchanged.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if db == nil || tx == nil {
		return db
	}
	// Passing a context forces gorm to clone the statement, so the pool swap
	// below does not leak into db.
	bound := db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	bound.Statement.ConnPool = tx
	return bound
}
