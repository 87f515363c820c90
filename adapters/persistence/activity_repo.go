package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

type postgresActivityRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresActivityRepo(db *pgxpool.Pool, logger logger.Logger) activity.Repository {
	return &postgresActivityRepo{db: db, logger: logger}
}

// Save ignores an activity it has already stored, so a redelivered event
// is harmless.
func (r *postgresActivityRepo) Save(ctx context.Context, a activity.Activity) error {
	sql, args, err := psql.Insert("activities").
		Columns("id", "kind", "title", "description", "occurred_at").
		Values(a.ID, a.Kind, a.Title, a.Description, a.OccurredAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build insert activity query", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperror.NewInternal("failed to save activity", err)
	}
	return nil
}

func (r *postgresActivityRepo) ListRecent(ctx context.Context, limit int) ([]activity.Activity, error) {
	sql, args, err := psql.Select("id", "kind", "title", "description", "occurred_at").
		From("activities").
		OrderBy("occurred_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list activities query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query activities", err)
	}
	defer rows.Close()

	items := make([]activity.Activity, 0)
	for rows.Next() {
		var a activity.Activity
		if err := rows.Scan(&a.ID, &a.Kind, &a.Title, &a.Description, &a.OccurredAt); err != nil {
			return nil, apperror.NewInternal("failed to scan activity row", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating activity rows", err)
	}
	return items, nil
}
