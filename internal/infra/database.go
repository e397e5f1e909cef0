package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"simplifytour/internal/config"
	"simplifytour/pkg/logger"
)

const (
	DatabaseTypePostgres = "postgres"
	DatabaseTypeSqlite   = "sqlite"
)

// NewDatabase opens the configured database.
func NewDatabase(cfg config.DatabaseConfig, log logger.Logger, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	gormConfig := &gorm.Config{Logger: logger.NewGormLogger(log, level)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Type {
	case DatabaseTypePostgres:
		db, err = gorm.Open(postgres.Open(cfg.URL), gormConfig)
	case DatabaseTypeSqlite:
		db, err = gorm.Open(sqlite.Open(cfg.URL), gormConfig)
		if err == nil {
			err = db.Exec("PRAGMA foreign_keys = ON").Error
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", cfg.Type, err)
	}

	log.Info("connected to ", cfg.Type, " database")
	return db, nil
}

func CloseDatabase(db *gorm.DB, log logger.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("error getting database instance: ", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("error closing database connection: ", err)
	} else {
		log.Info("database connection closed successfully")
	}
}
