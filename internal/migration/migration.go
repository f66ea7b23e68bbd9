// Package migration creates the HR schema on PostgreSQL or SQLite.
package migration

import (
	"fmt"

	"go-hrdash/internal/employee"
	"go-hrdash/internal/promotionhistory"
	"go-hrdash/internal/promotionschedule"
	"go-hrdash/internal/salaryadjustment"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models are migrated in dependency order: employees first, then the tables
// referencing it.
func Models() []any {
	return []any{
		&employee.Employee{},
		&promotionhistory.PromotionHistory{},
		&salaryadjustment.SalaryAdjustment{},
		&promotionschedule.PromotionSchedule{},
	}
}

const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id VARCHAR(64) NOT NULL DEFAULT '',
	aggregate_type VARCHAR(50) NOT NULL,
	aggregate_id VARCHAR(64) NOT NULL,
	event_type VARCHAR(100) NOT NULL,
	topic VARCHAR(150) NOT NULL,
	payload JSONB NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	next_retry_at TIMESTAMPTZ NULL,
	error_message TEXT NULL,
	processed_at TIMESTAMPTZ NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_dispatch
	ON outbox_events (status, next_retry_at, created_at);
`

// Run migrates every table. The outbox table uses PostgreSQL types and is
// only created there; SQLite deployments run without the event relay.
func Run(db *gorm.DB) error {
	log := zap.L().Named("migration")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(outboxDDL).Error; err != nil {
			return fmt.Errorf("create outbox_events: %w", err)
		}
	}

	log.Info("schema migrated", zap.String("dialect", db.Dialector.Name()))
	return nil
}
