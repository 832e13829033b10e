package cmd

import (
	"fmt"

	"blockcheck/core/config"
	"blockcheck/core/database"
	"blockcheck/core/fingerprint"
	"blockcheck/core/history"
	"blockcheck/core/storage"
	"blockcheck/feature/integrity"

	"go.uber.org/zap"
)

// newService wires an integrity service for the given locations. A storage
// client is only created when one of them is an s3:// object, and the
// history database is only opened when record is set.
func newService(cfg *config.Config, logg *zap.Logger, record bool, locations ...string) (*integrity.Service, error) {
	var client storage.Client
	for _, loc := range locations {
		if !storage.IsRemote(loc) {
			continue
		}
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		client = c
		break
	}

	var repo *history.Repository
	if record {
		r, err := openHistory(cfg)
		if err != nil {
			return nil, err
		}
		repo = r
	}

	return integrity.NewService(fingerprint.NewLoader(client), repo, logg), nil
}

// openHistory connects to the configured database and migrates the runs table.
func openHistory(cfg *config.Config) (*history.Repository, error) {
	if !cfg.Database.Enabled() {
		return nil, fmt.Errorf("history requires a database: set DATABASE_DRIVER to mysql or sqlite")
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}

	repo := history.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	return repo, nil
}
