package database

import (
	"database/sql"
	"strings"

	"github.com/vfg2006/budget-pacing-api/internal/config"
	_ "modernc.org/sqlite"
)

const sqlitePragmas = "_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)"

func openSQLite(cfg config.Database) (*sql.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = ":memory:"
	}

	if dsn != ":memory:" && !strings.Contains(dsn, "_pragma") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + sqlitePragmas
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Um único escritor; em :memory: cada conexão teria um banco diferente
	db.SetMaxOpenConns(1)

	return db, nil
}
