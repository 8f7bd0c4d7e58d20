// Package database keeps the history of bootstrap passes.
//
// Connect opens a GORM connection to MySQL or SQLite. History records one
// BootstrapRun per pass with a LoadOutcome per dependency, so operators can see
// which libraries loaded, were skipped or failed over time.
//
// History holds outcomes only. Dependencies are always rediscovered and reloaded
// from the manifest; nothing is ever loaded back from this store.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	history, err := database.NewHistory(db)
//	run, err := history.Record(ctx, report)
package database
