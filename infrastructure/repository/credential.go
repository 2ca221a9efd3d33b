package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-pacing-api/infrastructure/database"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

const platformCredentialsTable = "platform_credentials"

// CredentialRepository lê a tabela de tokens mantida pelo serviço de renovação
type CredentialRepository interface {
	GetByPlatform(ctx context.Context, platform domain.Platform) (*domain.Credential, error)
}

type credentialRepository struct {
	conn *database.Connection
}

func NewCredentialRepository(conn *database.Connection) CredentialRepository {
	return &credentialRepository{
		conn: conn,
	}
}

func (r *credentialRepository) GetByPlatform(ctx context.Context, platform domain.Platform) (*domain.Credential, error) {
	query, args, err := r.conn.Builder().
		Select("access_token", "expires_at").
		From(platformCredentialsTable).
		Where(squirrel.Eq{"platform": string(platform)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		token     string
		expiresAt sql.NullTime
	)

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&token, &expiresAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, database.WrapError("buscar credencial", err)
	}

	credential := &domain.Credential{
		Platform:    platform,
		AccessToken: token,
	}
	if expiresAt.Valid {
		credential.ExpiresAt = &expiresAt.Time
	}

	return credential, nil
}
