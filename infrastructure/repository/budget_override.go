package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-pacing-api/infrastructure/database"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

const customBudgetOverridesTable = "custom_budget_overrides cbo"

type BudgetOverrideRepository interface {
	// ListActive retorna os overrides ativos do cliente na plataforma.
	// O recorte por data é responsabilidade de quem consome.
	ListActive(ctx context.Context, clientID string, platform domain.Platform) ([]*domain.CustomBudgetOverride, error)
}

type budgetOverrideRepository struct {
	conn *database.Connection
}

func NewBudgetOverrideRepository(conn *database.Connection) BudgetOverrideRepository {
	return &budgetOverrideRepository{
		conn: conn,
	}
}

func (r *budgetOverrideRepository) ListActive(ctx context.Context, clientID string, platform domain.Platform) ([]*domain.CustomBudgetOverride, error) {
	query, args, err := r.conn.Builder().
		Select(
			"cbo.id", "cbo.client_id", "cbo.platform", "cbo.account_id", "cbo.amount",
			"cbo.start_date", "cbo.end_date", "cbo.description", "cbo.is_active", "cbo.created_at",
		).
		From(customBudgetOverridesTable).
		Where(squirrel.Eq{
			"cbo.client_id": clientID,
			"cbo.platform":  string(platform),
			"cbo.is_active": true,
		}).
		OrderBy("cbo.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.WrapError("listar overrides de orçamento", err)
	}
	defer rows.Close()

	overrides := make([]*domain.CustomBudgetOverride, 0)
	for rows.Next() {
		var (
			o         domain.CustomBudgetOverride
			platform  string
			accountID sql.NullString
		)

		err := rows.Scan(
			&o.ID,
			&o.ClientID,
			&platform,
			&accountID,
			&o.Amount,
			&o.StartDate,
			&o.EndDate,
			&o.Description,
			&o.IsActive,
			&o.CreatedAt,
		)
		if err != nil {
			return nil, database.WrapError("escanear override de orçamento", err)
		}

		o.Platform = domain.Platform(platform)
		o.AccountID = nullStringPtr(accountID)
		overrides = append(overrides, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, database.WrapError("iterar overrides de orçamento", err)
	}

	return overrides, nil
}
