// repository/request/requestRepository.go
package requestrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vanchien2973/MidAssignment-sub000/model"
)

// RequestRow is the list shape for admin/member request listings.
type RequestRow struct {
	ID            int64               `json:"id"`
	RequestorID   int64               `json:"requestor_id"`
	RequestorName string              `json:"requestor_name"`
	RequestDate   time.Time           `json:"request_date"`
	Status        model.RequestStatus `json:"status"`
	BookCount     int64               `json:"book_count"`
}

// OverdueRow is one past-due line item with enough context to chase it.
type OverdueRow struct {
	DetailID      int64              `json:"detail_id"`
	RequestID     int64              `json:"request_id"`
	BookID        int64              `json:"book_id"`
	BookTitle     string             `json:"book_title"`
	RequestorID   int64              `json:"requestor_id"`
	RequestorName string             `json:"requestor_name"`
	Status        model.DetailStatus `json:"status"`
	DueDate       time.Time          `json:"due_date"`
}

type Repo interface {
	// Creation. One request plus its details, all inside the caller's tx.
	InsertRequest(ctx context.Context, tx *sql.Tx, requestorID int64, notes string, requestDate time.Time) (int64, error)
	InsertDetail(ctx context.Context, tx *sql.Tx, requestID, bookID int64) (int64, error)
	CountRequestsBetween(ctx context.Context, tx *sql.Tx, requestorID int64, from, to time.Time) (int, error)

	// Approval/rejection. The request row is locked for the whole workflow.
	GetRequestForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.BorrowingRequest, error)
	ListDetailsTx(ctx context.Context, tx *sql.Tx, requestID int64) ([]model.BorrowingRequestDetail, error)
	MarkProcessed(ctx context.Context, tx *sql.Tx, id, approverID int64, status model.RequestStatus, approvalDate time.Time, notes string) error
	StampDetailsBorrowing(ctx context.Context, tx *sql.Tx, requestID int64, dueDate time.Time) error

	// Extension and return operate on a single locked detail.
	GetDetailForUpdate(ctx context.Context, tx *sql.Tx, detailID int64) (*model.BorrowingRequestDetail, error)
	MarkExtended(ctx context.Context, tx *sql.Tx, detailID int64, newDueDate, extensionDate time.Time) error
	MarkReturned(ctx context.Context, tx *sql.Tx, detailID int64, returnDate time.Time) error

	// Read paths.
	GetRequest(ctx context.Context, id int64) (*model.BorrowingRequest, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]RequestRow, error)
	List(ctx context.Context, status model.RequestStatus) ([]RequestRow, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]OverdueRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) InsertRequest(ctx context.Context, tx *sql.Tx, requestorID int64, notes string, requestDate time.Time) (int64, error) {
	const q = `
		INSERT INTO borrowing_requests (requestor_id, request_date, status, notes)
		VALUES ($1, $2, 'WAITING', NULLIF($3, ''))
		RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, requestorID, requestDate, notes).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) InsertDetail(ctx context.Context, tx *sql.Tx, requestID, bookID int64) (int64, error) {
	const q = `
		INSERT INTO borrowing_request_details (request_id, book_id, status)
		VALUES ($1, $2, '')
		RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, requestID, bookID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) CountRequestsBetween(ctx context.Context, tx *sql.Tx, requestorID int64, from, to time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM borrowing_requests
		WHERE requestor_id = $1
		AND request_date >= $2
		AND request_date < $3`
	var n int
	err := tx.QueryRowContext(ctx, q, requestorID, from, to).Scan(&n)
	return n, err
}

func (r *repo) GetRequestForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.BorrowingRequest, error) {
	const q = `
		SELECT id, requestor_id, request_date, status, approver_id, approval_date, notes
		FROM borrowing_requests
		WHERE id = $1
		FOR UPDATE`
	var br model.BorrowingRequest
	err := tx.QueryRowContext(ctx, q, id).Scan(&br.ID, &br.RequestorID, &br.RequestDate,
		&br.Status, &br.ApproverID, &br.ApprovalDate, &br.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &br, nil
}

func (r *repo) ListDetailsTx(ctx context.Context, tx *sql.Tx, requestID int64) ([]model.BorrowingRequestDetail, error) {
	rows, err := tx.QueryContext(ctx, detailsQuery, requestID)
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}

const detailsQuery = `
	SELECT id, request_id, book_id, status, due_date, extension_date, return_date
	FROM borrowing_request_details
	WHERE request_id = $1
	ORDER BY id`

func scanDetails(rows *sql.Rows) ([]model.BorrowingRequestDetail, error) {
	defer rows.Close()
	var out []model.BorrowingRequestDetail
	for rows.Next() {
		var d model.BorrowingRequestDetail
		if err := rows.Scan(&d.ID, &d.RequestID, &d.BookID, &d.Status,
			&d.DueDate, &d.ExtensionDate, &d.ReturnDate); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repo) MarkProcessed(ctx context.Context, tx *sql.Tx, id, approverID int64, status model.RequestStatus, approvalDate time.Time, notes string) error {
	const q = `
		UPDATE borrowing_requests
		SET status = $2,
		    approver_id = $3,
		    approval_date = $4,
		    notes = COALESCE(NULLIF($5, ''), notes)
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, status, approverID, approvalDate, notes)
	return err
}

func (r *repo) StampDetailsBorrowing(ctx context.Context, tx *sql.Tx, requestID int64, dueDate time.Time) error {
	const q = `
		UPDATE borrowing_request_details
		SET status = 'BORROWING',
		    due_date = $2
		WHERE request_id = $1`
	_, err := tx.ExecContext(ctx, q, requestID, dueDate)
	return err
}

func (r *repo) GetDetailForUpdate(ctx context.Context, tx *sql.Tx, detailID int64) (*model.BorrowingRequestDetail, error) {
	const q = `
		SELECT id, request_id, book_id, status, due_date, extension_date, return_date
		FROM borrowing_request_details
		WHERE id = $1
		FOR UPDATE`
	var d model.BorrowingRequestDetail
	err := tx.QueryRowContext(ctx, q, detailID).Scan(&d.ID, &d.RequestID, &d.BookID,
		&d.Status, &d.DueDate, &d.ExtensionDate, &d.ReturnDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repo) MarkExtended(ctx context.Context, tx *sql.Tx, detailID int64, newDueDate, extensionDate time.Time) error {
	const q = `
		UPDATE borrowing_request_details
		SET status = 'EXTENDED',
		    due_date = $2,
		    extension_date = $3
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, detailID, newDueDate, extensionDate)
	return err
}

func (r *repo) MarkReturned(ctx context.Context, tx *sql.Tx, detailID int64, returnDate time.Time) error {
	const q = `
		UPDATE borrowing_request_details
		SET status = 'RETURNED',
		    return_date = $2
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, detailID, returnDate)
	return err
}

func (r *repo) GetRequest(ctx context.Context, id int64) (*model.BorrowingRequest, error) {
	const q = `
		SELECT id, requestor_id, request_date, status, approver_id, approval_date, notes
		FROM borrowing_requests
		WHERE id = $1`
	var br model.BorrowingRequest
	err := r.db.QueryRowContext(ctx, q, id).Scan(&br.ID, &br.RequestorID, &br.RequestDate,
		&br.Status, &br.ApproverID, &br.ApprovalDate, &br.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, detailsQuery, id)
	if err != nil {
		return nil, err
	}
	br.Details, err = scanDetails(rows)
	if err != nil {
		return nil, err
	}
	return &br, nil
}

const listQuery = `
	SELECT
		r.id           AS id,
		r.requestor_id AS requestor_id,
		u.first_name || ' ' || u.last_name AS requestor_name,
		r.request_date AS request_date,
		r.status       AS status,
		COUNT(d.*)     AS book_count
	FROM borrowing_requests r
	JOIN users u ON u.id = r.requestor_id
	LEFT JOIN borrowing_request_details d ON d.request_id = r.id
	WHERE ($1 = 0 OR r.requestor_id = $1)
	AND ($2 = '' OR r.status = $2)
	GROUP BY r.id, u.first_name, u.last_name
	ORDER BY r.request_date DESC, r.id DESC`

func (r *repo) ListByRequestor(ctx context.Context, requestorID int64) ([]RequestRow, error) {
	return r.list(ctx, requestorID, "")
}

func (r *repo) List(ctx context.Context, status model.RequestStatus) ([]RequestRow, error) {
	return r.list(ctx, 0, status)
}

func (r *repo) list(ctx context.Context, requestorID int64, status model.RequestStatus) ([]RequestRow, error) {
	rows, err := r.db.QueryContext(ctx, listQuery, requestorID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RequestRow
	for rows.Next() {
		var row RequestRow
		if err := rows.Scan(&row.ID, &row.RequestorID, &row.RequestorName,
			&row.RequestDate, &row.Status, &row.BookCount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repo) ListOverdue(ctx context.Context, asOf time.Time) ([]OverdueRow, error) {
	const q = `
		SELECT
			d.id        AS detail_id,
			d.request_id,
			d.book_id,
			b.title     AS book_title,
			r.requestor_id,
			u.first_name || ' ' || u.last_name AS requestor_name,
			d.status,
			d.due_date
		FROM borrowing_request_details d
		JOIN borrowing_requests r ON r.id = d.request_id
		JOIN users u ON u.id = r.requestor_id
		JOIN books b ON b.id = d.book_id
		WHERE d.status IN ('BORROWING', 'EXTENDED')
		AND d.due_date < $1
		ORDER BY d.due_date`
	rows, err := r.db.QueryContext(ctx, q, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OverdueRow
	for rows.Next() {
		var row OverdueRow
		if err := rows.Scan(&row.DetailID, &row.RequestID, &row.BookID, &row.BookTitle,
			&row.RequestorID, &row.RequestorName, &row.Status, &row.DueDate); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
