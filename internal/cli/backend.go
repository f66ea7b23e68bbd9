// Package cli holds the hrctl operator commands.
package cli

import (
	"go-hrdash/internal/app"
	"go-hrdash/internal/config"
	"go-hrdash/internal/migration"

	"go.uber.org/zap"
)

// Backend is what a command needs from the running system.
type Backend struct {
	Services app.Services
	Migrate  func() error
	Close    func()
}

// Opener connects a Backend; commands call it lazily so --help never touches
// the database.
type Opener func() (*Backend, error)

// DefaultOpener connects using the process configuration.
func DefaultOpener(cfg config.Config) Opener {
	return func() (*Backend, error) {
		// migrate runs explicitly, not as a side effect of connecting
		cfg.Database.AutoMigrate = false

		infra, err := app.OpenInfrastructure(cfg)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Services: app.NewServices(infra, zap.L()),
			Migrate:  func() error { return migration.Run(infra.GormDB) },
			Close:    infra.Close,
		}, nil
	}
}
