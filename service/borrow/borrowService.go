// service/borrow/borrowService.go
package borrowsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vanchien2973/MidAssignment-sub000/model"
	notifierrepo "github.com/vanchien2973/MidAssignment-sub000/repository/notifier"
	requestrepo "github.com/vanchien2973/MidAssignment-sub000/repository/request"
	"github.com/vanchien2973/MidAssignment-sub000/service/policy"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrBookNotFound     ErrCode = "BOOK_NOT_FOUND"
	ErrInvalidStatus    ErrCode = "INVALID_STATUS"
	ErrAlreadyProcessed ErrCode = "ALREADY_PROCESSED"
	ErrNotBorrowing     ErrCode = "NOT_BORROWING"
	ErrAlreadyExtended  ErrCode = "ALREADY_EXTENDED"
	ErrAlreadyReturned  ErrCode = "ALREADY_RETURNED"
	ErrNoDueDate        ErrCode = "NO_DUE_DATE"
	ErrExtensionTooFar  ErrCode = "EXTENSION_TOO_FAR"
	ErrNoStock          ErrCode = "NO_STOCK"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// repository shapes re-exported for controllers
type RequestRow = requestrepo.RequestRow
type OverdueRow = requestrepo.OverdueRow

type RequestRepo interface {
	InsertRequest(ctx context.Context, tx *sql.Tx, requestorID int64, notes string, requestDate time.Time) (int64, error)
	InsertDetail(ctx context.Context, tx *sql.Tx, requestID, bookID int64) (int64, error)
	CountRequestsBetween(ctx context.Context, tx *sql.Tx, requestorID int64, from, to time.Time) (int, error)

	GetRequestForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.BorrowingRequest, error)
	ListDetailsTx(ctx context.Context, tx *sql.Tx, requestID int64) ([]model.BorrowingRequestDetail, error)
	MarkProcessed(ctx context.Context, tx *sql.Tx, id, approverID int64, status model.RequestStatus, approvalDate time.Time, notes string) error
	StampDetailsBorrowing(ctx context.Context, tx *sql.Tx, requestID int64, dueDate time.Time) error

	GetDetailForUpdate(ctx context.Context, tx *sql.Tx, detailID int64) (*model.BorrowingRequestDetail, error)
	MarkExtended(ctx context.Context, tx *sql.Tx, detailID int64, newDueDate, extensionDate time.Time) error
	MarkReturned(ctx context.Context, tx *sql.Tx, detailID int64, returnDate time.Time) error

	GetRequest(ctx context.Context, id int64) (*model.BorrowingRequest, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]RequestRow, error)
	List(ctx context.Context, status model.RequestStatus) ([]RequestRow, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]OverdueRow, error)
}

// InventoryRepo is the ledger slice of the book repository.
type InventoryRepo interface {
	CountActive(ctx context.Context, tx *sql.Tx, ids []int64) (int64, error)
	DecrementAvailable(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	IncrementAvailable(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
}

type AuditRepo interface {
	InsertTx(ctx context.Context, tx *sql.Tx, actorID int64, action, detail string, at time.Time) error
}

type Config struct {
	// DueDays is the default loan length used when approval does not name one.
	DueDays int
	// MaxExtension caps how far a single extension may push the due date.
	MaxExtension time.Duration
	// StrictInventory fails the whole approval when a book has no available
	// copy; when false the decrement is skipped and approval proceeds.
	StrictInventory bool
}

type Service interface {
	// Create: submit a borrowing request for a set of distinct books.
	Create(ctx context.Context, requestorID int64, bookIDs []int64, note string) (int64, error)

	// UpdateStatus: approve or reject a Waiting request. Approval stamps due
	// dates and decrements inventory, all in one transaction.
	UpdateStatus(ctx context.Context, requestID, approverID int64, status model.RequestStatus, notes string, dueDays int) error

	// Extend: one-time due-date postponement for a Borrowing detail.
	Extend(ctx context.Context, detailID, userID int64, newDueDate time.Time) error

	// Return: close out a Borrowing/Extended detail and restore inventory.
	Return(ctx context.Context, detailID, userID int64, note string) error

	Get(ctx context.Context, id int64) (*model.BorrowingRequest, error)
	MyRequests(ctx context.Context, requestorID int64) ([]RequestRow, error)
	List(ctx context.Context, status model.RequestStatus) ([]RequestRow, error)
	Overdue(ctx context.Context) ([]OverdueRow, error)
}

// ----- Service implementation -----

type service struct {
	db  *sql.DB
	rr  RequestRepo
	br  InventoryRepo
	ar  AuditRepo
	nf  notifierrepo.Repo
	pol policy.Evaluator
	cfg Config
}

func New(db *sql.DB, rr RequestRepo, br InventoryRepo, ar AuditRepo, nf notifierrepo.Repo, pol policy.Evaluator, cfg Config) Service {
	if cfg.DueDays <= 0 {
		cfg.DueDays = 14
	}
	if cfg.MaxExtension <= 0 {
		cfg.MaxExtension = 7 * 24 * time.Hour
	}
	if nf == nil {
		nf = notifierrepo.NewNoop()
	}
	return &service{db: db, rr: rr, br: br, ar: ar, nf: nf, pol: pol, cfg: cfg}
}

func (s *service) Create(ctx context.Context, requestorID int64, bookIDs []int64, note string) (_ int64, err error) {
	ids := dedupe(bookIDs)
	if err = s.pol.CheckSelection(len(ids), note); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// The cap is checked under the same transaction that inserts the request,
	// so two concurrent submissions cannot both slip under it.
	n, err := s.rr.CountRequestsBetween(ctx, tx, requestorID, monthStart, nextMonth)
	if err != nil {
		return 0, err
	}
	if err = s.pol.CheckMonthly(n); err != nil {
		return 0, err
	}

	active, err := s.br.CountActive(ctx, tx, ids)
	if err != nil {
		return 0, err
	}
	if active != int64(len(ids)) {
		return 0, makeErr(ErrBookNotFound)
	}

	requestID, err := s.rr.InsertRequest(ctx, tx, requestorID, note, now)
	if err != nil {
		return 0, err
	}
	for _, bookID := range ids {
		if _, err = s.rr.InsertDetail(ctx, tx, requestID, bookID); err != nil {
			return 0, err
		}
	}

	if err = s.ar.InsertTx(ctx, tx, requestorID, "request.create",
		fmt.Sprintf("request %d submitted with %d book(s)", requestID, len(ids)), now); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	s.notify(notifierrepo.Event{
		Action:    "request.create",
		ActorID:   requestorID,
		RequestID: requestID,
		Message:   fmt.Sprintf("borrowing request %d submitted", requestID),
		At:        now,
	})
	return requestID, nil
}

func (s *service) UpdateStatus(ctx context.Context, requestID, approverID int64, status model.RequestStatus, notes string, dueDays int) (err error) {
	if status != model.RequestApproved && status != model.RequestRejected {
		return makeErr(ErrInvalidStatus)
	}
	if dueDays <= 0 {
		dueDays = s.cfg.DueDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	req, err := s.rr.GetRequestForUpdate(ctx, tx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return makeErr(ErrNotFound)
	}
	if !req.Status.CanTransitionTo(status) {
		return makeErr(ErrAlreadyProcessed)
	}

	now := time.Now().UTC()
	if err = s.rr.MarkProcessed(ctx, tx, requestID, approverID, status, now, notes); err != nil {
		return err
	}

	if status == model.RequestApproved {
		due := now.AddDate(0, 0, dueDays)
		if err = s.rr.StampDetailsBorrowing(ctx, tx, requestID, due); err != nil {
			return err
		}

		var details []model.BorrowingRequestDetail
		if details, err = s.rr.ListDetailsTx(ctx, tx, requestID); err != nil {
			return err
		}
		for _, d := range details {
			var ok bool
			if ok, err = s.br.DecrementAvailable(ctx, tx, d.BookID); err != nil {
				return err
			}
			if !ok && s.cfg.StrictInventory {
				// Strict policy: an exhausted (or vanished) book fails the
				// whole approval. Otherwise the decrement is skipped.
				err = makeErr(ErrNoStock)
				return err
			}
		}
	}

	if err = s.ar.InsertTx(ctx, tx, approverID, "request."+actionFor(status),
		fmt.Sprintf("request %d %s", requestID, actionFor(status)), now); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	s.notify(notifierrepo.Event{
		Action:    "request." + actionFor(status),
		ActorID:   approverID,
		RequestID: requestID,
		Message:   fmt.Sprintf("borrowing request %d %s", requestID, actionFor(status)),
		At:        now,
	})
	return nil
}

func (s *service) Extend(ctx context.Context, detailID, userID int64, newDueDate time.Time) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	d, err := s.rr.GetDetailForUpdate(ctx, tx, detailID)
	if err != nil {
		return err
	}
	if d == nil {
		return makeErr(ErrNotFound)
	}
	if !d.Status.CanExtend() {
		switch d.Status {
		case model.DetailExtended:
			return makeErr(ErrAlreadyExtended)
		case model.DetailReturned:
			return makeErr(ErrAlreadyReturned)
		default:
			return makeErr(ErrNotBorrowing)
		}
	}
	if d.DueDate == nil {
		return makeErr(ErrNoDueDate)
	}
	if newDueDate.Sub(*d.DueDate) > s.cfg.MaxExtension {
		return makeErr(ErrExtensionTooFar)
	}

	now := time.Now().UTC()
	if err = s.rr.MarkExtended(ctx, tx, detailID, newDueDate, now); err != nil {
		return err
	}
	if err = s.ar.InsertTx(ctx, tx, userID, "detail.extend",
		fmt.Sprintf("detail %d extended to %s", detailID, newDueDate.Format(time.DateOnly)), now); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Return(ctx context.Context, detailID, userID int64, note string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	d, err := s.rr.GetDetailForUpdate(ctx, tx, detailID)
	if err != nil {
		return err
	}
	if d == nil {
		return makeErr(ErrNotFound)
	}
	if !d.Status.CanReturn() {
		if d.Status == model.DetailReturned {
			return makeErr(ErrAlreadyReturned)
		}
		return makeErr(ErrNotBorrowing)
	}

	now := time.Now().UTC()
	if err = s.rr.MarkReturned(ctx, tx, detailID, now); err != nil {
		return err
	}

	// The loan record is authoritative: a book row that was deleted (or a
	// counter already at total) skips the increment but the return succeeds.
	if _, err = s.br.IncrementAvailable(ctx, tx, d.BookID); err != nil {
		return err
	}

	detail := fmt.Sprintf("detail %d returned", detailID)
	if note != "" {
		detail += ": " + note
	}
	if err = s.ar.InsertTx(ctx, tx, userID, "detail.return", detail, now); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	s.notify(notifierrepo.Event{
		Action:   "detail.return",
		ActorID:  userID,
		DetailID: detailID,
		Message:  fmt.Sprintf("book returned on detail %d", detailID),
		At:       now,
	})
	return nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.BorrowingRequest, error) {
	return s.rr.GetRequest(ctx, id)
}

func (s *service) MyRequests(ctx context.Context, requestorID int64) ([]RequestRow, error) {
	return s.rr.ListByRequestor(ctx, requestorID)
}

func (s *service) List(ctx context.Context, status model.RequestStatus) ([]RequestRow, error) {
	return s.rr.List(ctx, status)
}

func (s *service) Overdue(ctx context.Context) ([]OverdueRow, error) {
	return s.rr.ListOverdue(ctx, time.Now().UTC())
}

// notify pushes to the webhook sink after commit; failures are logged only.
func (s *service) notify(ev notifierrepo.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.nf.Notify(ctx, ev); err != nil {
			slog.Warn("notify failed", "action", ev.Action, "err", err)
		}
	}()
}

func actionFor(status model.RequestStatus) string {
	if status == model.RequestApproved {
		return "approve"
	}
	return "reject"
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
