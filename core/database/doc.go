// Package database handles database connections and schema inspection.
//
// It wraps GORM and configures either a MySQL connection or a SQLite file
// (or ":memory:") from the application configuration. The database is
// optional: it only backs the outcome journal.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let features verify that the tables
// they write to have the expected shape before a run starts.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "sync_outcomes", []string{"run_id", "state"})
package database
