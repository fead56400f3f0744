package db

import (
	"fmt"

	"gorm.io/gorm"

	"nestcloud/internal/config"
)

// New opens the database selected by cfg.DBDriver.
func New(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return NewSQLite(cfg.SQLitePath)
	case "mysql":
		return NewMySQL(cfg.MySQLDSN)
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
}
