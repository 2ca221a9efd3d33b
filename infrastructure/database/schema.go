package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'ACTIVE',
		meta_account_id VARCHAR(64),
		google_account_id VARCHAR(64),
		meta_monthly_budget NUMERIC(14,2),
		google_monthly_budget NUMERIC(14,2),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS custom_budget_overrides (
		id VARCHAR(64) PRIMARY KEY,
		client_id VARCHAR(64) NOT NULL REFERENCES clients(id),
		platform VARCHAR(16) NOT NULL,
		account_id VARCHAR(64),
		amount NUMERIC(14,2) NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_custom_budget_overrides_lookup
		ON custom_budget_overrides (client_id, platform, is_active)`,
	`CREATE TABLE IF NOT EXISTS review_snapshots (
		id VARCHAR(32) PRIMARY KEY,
		client_id VARCHAR(64) NOT NULL,
		platform VARCHAR(16) NOT NULL,
		account_id VARCHAR(64) NOT NULL,
		review_date DATE NOT NULL,
		total_spent NUMERIC(14,2) NOT NULL,
		current_daily_budget NUMERIC(14,2) NOT NULL,
		ideal_daily_budget NUMERIC(14,2) NOT NULL,
		using_custom_budget BOOLEAN NOT NULL DEFAULT FALSE,
		budget_amount NUMERIC(14,2) NOT NULL,
		custom_budget_id VARCHAR(64),
		custom_budget_end_date DATE,
		remaining_days INTEGER NOT NULL,
		recommendation TEXT NOT NULL,
		recommendation_action VARCHAR(16) NOT NULL,
		recommendation_amount NUMERIC(14,2) NOT NULL,
		campaigns JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (client_id, platform, review_date)
	)`,
	`CREATE TABLE IF NOT EXISTS platform_credentials (
		platform VARCHAR(16) PRIMARY KEY,
		access_token TEXT NOT NULL,
		expires_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'ACTIVE',
		meta_account_id TEXT,
		google_account_id TEXT,
		meta_monthly_budget NUMERIC,
		google_monthly_budget NUMERIC,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS custom_budget_overrides (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id),
		platform TEXT NOT NULL,
		account_id TEXT,
		amount NUMERIC NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_custom_budget_overrides_lookup
		ON custom_budget_overrides (client_id, platform, is_active)`,
	`CREATE TABLE IF NOT EXISTS review_snapshots (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		platform TEXT NOT NULL,
		account_id TEXT NOT NULL,
		review_date DATE NOT NULL,
		total_spent NUMERIC NOT NULL,
		current_daily_budget NUMERIC NOT NULL,
		ideal_daily_budget NUMERIC NOT NULL,
		using_custom_budget BOOLEAN NOT NULL DEFAULT 0,
		budget_amount NUMERIC NOT NULL,
		custom_budget_id TEXT,
		custom_budget_end_date DATE,
		remaining_days INTEGER NOT NULL,
		recommendation TEXT NOT NULL,
		recommendation_action TEXT NOT NULL,
		recommendation_amount NUMERIC NOT NULL,
		campaigns BLOB,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (client_id, platform, review_date)
	)`,
	`CREATE TABLE IF NOT EXISTS platform_credentials (
		platform TEXT PRIMARY KEY,
		access_token TEXT NOT NULL,
		expires_at DATETIME,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Migrate cria as tabelas do pipeline caso ainda não existam
func Migrate(ctx context.Context, conn *Connection) error {
	statements := postgresSchema
	if conn.Driver == DriverSQLite {
		statements = sqliteSchema
	}

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("erro ao aplicar migração %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("driver", conn.Driver).Infof("Migrações aplicadas: %d instruções", len(statements))
	return nil
}
