// Package database handles the optional warehouse reporting database.
//
// It wraps GORM to open either MySQL (the warehouse's reporting replica) or
// SQLite (local snapshots and tests) from the application's configuration.
//
// # Connect
//
// Connect opens the connection, applies pool limits and pings it within
// Config.TimeoutSeconds. Failure is not fatal for the service: the secondary
// warehouse can still be supplied through the API or an import.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the integrity feature verify that
// the reporting table still exposes the columns the sql source selects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Warehouse database unavailable", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "stock_balances", secondary.RequiredColumns)
package database
