package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"modernc.org/sqlite"
)

// WrapError classifica o erro do driver como domain.ErrPersistence, preservando o código do banco
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%w: %s: erro no banco de dados: %v (código: %s)", domain.ErrPersistence, op, pqErr, pqErr.Code)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("%w: %s: erro no banco de dados: %v (código: %d)", domain.ErrPersistence, op, sqliteErr, sqliteErr.Code())
	}

	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

// IsNoRows indica ausência de registro, que nos repositórios não é erro
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
