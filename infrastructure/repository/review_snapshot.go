package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/budget-pacing-api/infrastructure/database"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"github.com/vfg2006/budget-pacing-api/pkg/utils"
)

const (
	reviewSnapshotsTable = "review_snapshots rs"

	DefaultHistoryLimit = 30
	MaxHistoryLimit     = 366
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var reviewSnapshotColumns = []string{
	"rs.id", "rs.client_id", "rs.platform", "rs.account_id", "rs.review_date",
	"rs.total_spent", "rs.current_daily_budget", "rs.ideal_daily_budget",
	"rs.using_custom_budget", "rs.budget_amount", "rs.custom_budget_id", "rs.custom_budget_end_date",
	"rs.remaining_days", "rs.recommendation", "rs.recommendation_action", "rs.recommendation_amount",
	"rs.campaigns", "rs.created_at", "rs.updated_at",
}

// ReviewSnapshotRepository guarda no máximo um snapshot por (cliente, plataforma, dia)
type ReviewSnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *domain.ReviewSnapshot) error
	Latest(ctx context.Context, clientID string, platform domain.Platform) (*domain.ReviewSnapshot, error)
	History(ctx context.Context, clientID string, platform domain.Platform, limit int) ([]*domain.ReviewSnapshot, error)
}

type reviewSnapshotRepository struct {
	conn *database.Connection
}

func NewReviewSnapshotRepository(conn *database.Connection) ReviewSnapshotRepository {
	return &reviewSnapshotRepository{
		conn: conn,
	}
}

// Upsert sobrescreve o snapshot do dia; ID e created_at do registro original são preservados
func (r *reviewSnapshotRepository) Upsert(ctx context.Context, snapshot *domain.ReviewSnapshot) error {
	id, err := utils.GenerateID()
	if err != nil {
		return fmt.Errorf("erro ao gerar id do snapshot: %w", err)
	}

	campaignsJSON, err := json.Marshal(snapshot.Campaigns)
	if err != nil {
		return fmt.Errorf("erro ao serializar campanhas para JSON: %w", err)
	}

	var customBudgetEndDate interface{}
	if snapshot.CustomBudgetEndDate != nil {
		customBudgetEndDate = snapshot.CustomBudgetEndDate.Format(time.DateOnly)
	}

	query, args, err := r.conn.Builder().
		Insert("review_snapshots").
		Columns(
			"id", "client_id", "platform", "account_id", "review_date",
			"total_spent", "current_daily_budget", "ideal_daily_budget",
			"using_custom_budget", "budget_amount", "custom_budget_id", "custom_budget_end_date",
			"remaining_days", "recommendation", "recommendation_action", "recommendation_amount",
			"campaigns",
		).
		Values(
			id,
			snapshot.ClientID,
			string(snapshot.Platform),
			snapshot.AccountID,
			snapshot.ReviewDate.Format(time.DateOnly),
			snapshot.TotalSpent,
			snapshot.CurrentDailyBudget,
			snapshot.IdealDailyBudget,
			snapshot.UsingCustomBudget,
			snapshot.BudgetAmount,
			snapshot.CustomBudgetID,
			customBudgetEndDate,
			snapshot.RemainingDays,
			snapshot.Recommendation,
			string(snapshot.RecommendationAction),
			snapshot.RecommendationAmount,
			campaignsJSON,
		).
		Suffix(`
			ON CONFLICT (client_id, platform, review_date) DO UPDATE SET
				account_id = EXCLUDED.account_id,
				total_spent = EXCLUDED.total_spent,
				current_daily_budget = EXCLUDED.current_daily_budget,
				ideal_daily_budget = EXCLUDED.ideal_daily_budget,
				using_custom_budget = EXCLUDED.using_custom_budget,
				budget_amount = EXCLUDED.budget_amount,
				custom_budget_id = EXCLUDED.custom_budget_id,
				custom_budget_end_date = EXCLUDED.custom_budget_end_date,
				remaining_days = EXCLUDED.remaining_days,
				recommendation = EXCLUDED.recommendation,
				recommendation_action = EXCLUDED.recommendation_action,
				recommendation_amount = EXCLUDED.recommendation_amount,
				campaigns = EXCLUDED.campaigns,
				updated_at = CURRENT_TIMESTAMP
			RETURNING id, created_at, updated_at
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&snapshot.ID, &snapshot.CreatedAt, &snapshot.UpdatedAt)
	if err != nil {
		return database.WrapError("salvar snapshot de revisão", err)
	}

	return nil
}

func (r *reviewSnapshotRepository) Latest(ctx context.Context, clientID string, platform domain.Platform) (*domain.ReviewSnapshot, error) {
	snapshots, err := r.History(ctx, clientID, platform, 1)
	if err != nil {
		return nil, err
	}

	if len(snapshots) == 0 {
		return nil, nil
	}

	return snapshots[0], nil
}

func (r *reviewSnapshotRepository) History(ctx context.Context, clientID string, platform domain.Platform, limit int) ([]*domain.ReviewSnapshot, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	query, args, err := r.conn.Builder().
		Select(reviewSnapshotColumns...).
		From(reviewSnapshotsTable).
		Where(squirrel.Eq{"rs.client_id": clientID, "rs.platform": string(platform)}).
		OrderBy("rs.review_date DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.WrapError("listar histórico de snapshots", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.ReviewSnapshot, 0, limit)
	for rows.Next() {
		snapshot, err := scanReviewSnapshot(rows)
		if err != nil {
			return nil, database.WrapError("escanear snapshot de revisão", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, database.WrapError("iterar snapshots de revisão", err)
	}

	return snapshots, nil
}

func scanReviewSnapshot(row rowScanner) (*domain.ReviewSnapshot, error) {
	var (
		s              domain.ReviewSnapshot
		platform       string
		action         string
		customBudgetID sql.NullString
		customEndDate  sql.NullTime
		campaignsJSON  []byte
	)

	err := row.Scan(
		&s.ID,
		&s.ClientID,
		&platform,
		&s.AccountID,
		&s.ReviewDate,
		&s.TotalSpent,
		&s.CurrentDailyBudget,
		&s.IdealDailyBudget,
		&s.UsingCustomBudget,
		&s.BudgetAmount,
		&customBudgetID,
		&customEndDate,
		&s.RemainingDays,
		&s.Recommendation,
		&action,
		&s.RecommendationAmount,
		&campaignsJSON,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Platform = domain.Platform(platform)
	s.RecommendationAction = domain.RecommendationAction(action)
	s.CustomBudgetID = nullStringPtr(customBudgetID)
	if customEndDate.Valid {
		s.CustomBudgetEndDate = &customEndDate.Time
	}

	if len(campaignsJSON) > 0 {
		if err := json.Unmarshal(campaignsJSON, &s.Campaigns); err != nil {
			return nil, fmt.Errorf("erro ao deserializar campanhas: %w", err)
		}
	}

	return &s, nil
}
