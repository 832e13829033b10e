// Package database opens the optional history database.
//
// It wraps GORM and supports MySQL for shared installations and SQLite for a
// single host keeping its own drift history next to the block store.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("history unavailable: %w", err)
//	}
//	repo := history.NewRepository(db)
package database
