package activityrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/vanchien2973/MidAssignment-sub000/model"
)

type Repo interface {
	// InsertTx appends an audit record inside the workflow's transaction so
	// the record commits or rolls back with the state change it describes.
	InsertTx(ctx context.Context, tx *sql.Tx, actorID int64, action, detail string, at time.Time) error
	List(ctx context.Context, limit int) ([]model.Activity, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) InsertTx(ctx context.Context, tx *sql.Tx, actorID int64, action, detail string, at time.Time) error {
	const q = `
		INSERT INTO activities (actor_id, action, detail, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := tx.ExecContext(ctx, q, actorID, action, detail, at)
	return err
}

func (r *repo) List(ctx context.Context, limit int) ([]model.Activity, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const q = `
		SELECT id, actor_id, action, detail, created_at
		FROM activities
		ORDER BY created_at DESC, id DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.ActorID, &a.Action, &a.Detail, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
