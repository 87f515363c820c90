package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careerone/portfolio/internal/domain/panel"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
)

const uniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// postgresPanelRepo stores every panel in one table, keyed by kind. The
// record itself is kept as JSON; position keeps insertion order.
type postgresPanelRepo[T panel.Record[T]] struct {
	db     *pgxpool.Pool
	kind   string
	logger logger.Logger
}

func NewPostgresPanelRepo[T panel.Record[T]](db *pgxpool.Pool, kind string, log logger.Logger) panel.Repository[T] {
	return &postgresPanelRepo[T]{db: db, kind: kind, logger: log}
}

func (r *postgresPanelRepo[T]) List(ctx context.Context) ([]T, error) {
	sql, args, err := psql.Select("body").
		From("panel_records").
		Where(sq.Eq{"kind": r.kind}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list "+r.kind+" query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query "+r.kind+" records", err)
	}
	defer rows.Close()

	recs := make([]T, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, apperror.NewInternal("failed to scan "+r.kind+" row", err)
		}
		var rec T
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, apperror.NewInternal("failed to decode "+r.kind+" record", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating "+r.kind+" rows", err)
	}
	return recs, nil
}

func (r *postgresPanelRepo[T]) Append(ctx context.Context, rec T) error {
	return r.insert(ctx, r.db, rec)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *postgresPanelRepo[T]) insert(ctx context.Context, db execer, rec T) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return apperror.NewInternal("failed to marshal "+r.kind, err)
	}
	sql, args, err := psql.Insert("panel_records").
		Columns("kind", "id", "body").
		Values(r.kind, rec.Identity(), body).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build insert "+r.kind+" query", err)
	}

	if _, err := db.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.NewConflict(r.kind, "a record with id '"+rec.Identity()+"' already exists")
		}
		return apperror.NewInternal("failed to save "+r.kind, err)
	}
	return nil
}

func (r *postgresPanelRepo[T]) Delete(ctx context.Context, id string) error {
	sql, args, err := psql.Delete("panel_records").
		Where(sq.Eq{"kind": r.kind, "id": id}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build delete "+r.kind+" query", err)
	}
	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewInternal("failed to delete "+r.kind, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound(r.kind, id)
	}
	return nil
}

func (r *postgresPanelRepo[T]) Replace(ctx context.Context, recs []T) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := psql.Delete("panel_records").Where(sq.Eq{"kind": r.kind}).ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build clear "+r.kind+" query", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return apperror.NewInternal("failed to clear "+r.kind+" records", err)
	}
	for _, rec := range recs {
		if err := r.insert(ctx, tx, rec); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit "+r.kind+" replace", err)
	}
	return nil
}
