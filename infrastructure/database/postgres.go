package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/vfg2006/budget-pacing-api/internal/config"
)

func openPostgres(cfg config.Database) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}
