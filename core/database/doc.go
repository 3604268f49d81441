// Package database handles the optional MySQL connection used to keep the
// history of reconciliation cycles.
//
// It provides a wrapper around GORM to configure the connection, its pool
// and timeouts from the application's configuration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("History disabled", zap.Error(err))
//	}
package database
