package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-pacing-api/infrastructure/database"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

const clientsTable = "clients c"

var clientColumns = []string{
	"c.id", "c.name", "c.status",
	"c.meta_account_id", "c.google_account_id",
	"c.meta_monthly_budget", "c.google_monthly_budget",
}

// ClientRepository é somente leitura: o cadastro de clientes pertence a outro serviço
type ClientRepository interface {
	GetByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListActive(ctx context.Context) ([]*domain.Client, error)
}

type clientRepository struct {
	conn *database.Connection
}

func NewClientRepository(conn *database.Connection) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) GetByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query, args, err := r.conn.Builder().
		Select(clientColumns...).
		From(clientsTable).
		Where(squirrel.Eq{"c.id": clientID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	client, err := scanClient(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, database.WrapError("buscar cliente", err)
	}

	return client, nil
}

func (r *clientRepository) ListActive(ctx context.Context) ([]*domain.Client, error) {
	query, args, err := r.conn.Builder().
		Select(clientColumns...).
		From(clientsTable).
		Where(squirrel.Eq{"c.status": string(domain.ClientStatusActive)}).
		OrderBy("c.name ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.WrapError("listar clientes ativos", err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, database.WrapError("escanear cliente", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, database.WrapError("iterar clientes", err)
	}

	return clients, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var (
		client                   domain.Client
		status                   string
		metaAccount, googleAcc   sql.NullString
		metaBudget, googleBudget decimal.NullDecimal
	)

	err := row.Scan(
		&client.ID,
		&client.Name,
		&status,
		&metaAccount,
		&googleAcc,
		&metaBudget,
		&googleBudget,
	)
	if err != nil {
		return nil, err
	}

	client.Status = domain.ClientStatus(status)
	client.MetaAccountID = nullStringPtr(metaAccount)
	client.GoogleAccountID = nullStringPtr(googleAcc)
	client.MetaMonthlyBudget = metaBudget.Decimal
	client.GoogleMonthlyBudget = googleBudget.Decimal

	return &client, nil
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}
