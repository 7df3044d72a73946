package bookrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vanchien2973/MidAssignment-sub000/model"
)

type Repo interface {
	Create(ctx context.Context, title, author string, categoryID *int64, copies int64) (int64, error)
	Update(ctx context.Context, id int64, title, author string, categoryID *int64) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) (bool, error)
	AddCopies(ctx context.Context, id int64, n int64) (bool, error)
	List(ctx context.Context, search string) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)

	// Inventory ledger. available_copies is never written outside these two;
	// both are guarded conditional updates so concurrent workflows cannot
	// push the counter out of [0, total_copies].
	CountActive(ctx context.Context, tx *sql.Tx, ids []int64) (int64, error)
	DecrementAvailable(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	IncrementAvailable(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, title, author string, categoryID *int64, copies int64) (int64, error) {
	const q = `
		INSERT INTO books (title, author, category_id, total_copies, available_copies, is_active)
		VALUES ($1, $2, $3, $4, $4, TRUE)
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, title, author, categoryID, copies).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) Update(ctx context.Context, id int64, title, author string, categoryID *int64) (bool, error) {
	const q = `
		UPDATE books
		SET title = $2, author = $3, category_id = $4
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, title, author, categoryID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	const q = `
		UPDATE books
		SET is_active = $2
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, active)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

// AddCopies raises total and available together so the ledger invariant holds.
func (r *repo) AddCopies(ctx context.Context, id int64, n int64) (bool, error) {
	if n <= 0 {
		return false, errors.New("n must be > 0")
	}
	const q = `
		UPDATE books
		SET total_copies     = total_copies + $2,
		    available_copies = available_copies + $2
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, n)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) List(ctx context.Context, search string) ([]model.Book, error) {
	const q = `
		SELECT id, title, author, category_id, total_copies, available_copies, is_active, created_at
		FROM books
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%')
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CategoryID,
			&b.TotalCopies, &b.AvailableCopies, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
		SELECT id, title, author, category_id, total_copies, available_copies, is_active, created_at
		FROM books
		WHERE id = $1`
	var b model.Book
	err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.Title, &b.Author, &b.CategoryID,
		&b.TotalCopies, &b.AvailableCopies, &b.IsActive, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) CountActive(ctx context.Context, tx *sql.Tx, ids []int64) (int64, error) {
	const q = `
		SELECT COUNT(*)
		FROM books
		WHERE id = ANY($1)
		AND is_active`
	var n int64
	err := tx.QueryRowContext(ctx, q, ids).Scan(&n)
	return n, err
}

func (r *repo) DecrementAvailable(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	// Guard: never below zero, even under concurrent approvals.
	const q = `
		UPDATE books
		SET available_copies = available_copies - 1
		WHERE id = $1
		AND available_copies > 0`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) IncrementAvailable(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	// Guard: never above total_copies.
	const q = `
		UPDATE books
		SET available_copies = available_copies + 1
		WHERE id = $1
		AND available_copies < total_copies`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
