package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/careerone/portfolio/internal/domain/profile"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) Get(ctx context.Context) (*profile.Profile, error) {
	query := `SELECT body, updated_at FROM profiles WHERE id = 1`

	p := &profile.Profile{}
	var body []byte
	err := r.db.QueryRow(ctx, query).Scan(&body, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &profile.Profile{}, nil
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	updatedAt := p.UpdatedAt
	if err := json.Unmarshal(body, p); err != nil {
		r.logger.Warn("Failed to unmarshal profile body", zap.Error(err))
		return &profile.Profile{UpdatedAt: updatedAt}, nil
	}
	p.UpdatedAt = updatedAt
	return p, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	body, err := json.Marshal(p)
	if err != nil {
		return apperror.NewInternal("failed to marshal profile", err)
	}

	query := `
		INSERT INTO profiles (id, body, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.Exec(ctx, query, body, p.UpdatedAt); err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}
