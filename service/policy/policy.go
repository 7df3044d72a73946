// service/policy/policy.go
package policy

import "errors"

// Eligibility rules for borrowing-request submission. Pure checks, no I/O;
// the borrowing service runs CheckMonthly inside the creation transaction so
// concurrent submissions cannot both slip under the cap.

var (
	ErrNoBooks           = errors.New("at least one book is required")
	ErrTooManyBooks      = errors.New("too many books in one request")
	ErrNoteRequired      = errors.New("a justification note is required")
	ErrMonthlyCapReached = errors.New("monthly request cap reached")
)

type Limits struct {
	MonthlyRequestCap  int
	MaxBooksPerRequest int
}

type Evaluator struct {
	limits Limits
}

func New(l Limits) Evaluator { return Evaluator{limits: l} }

// CheckSelection validates the pending submission itself.
func (e Evaluator) CheckSelection(bookCount int, note string) error {
	if bookCount < 1 {
		return ErrNoBooks
	}
	if bookCount > e.limits.MaxBooksPerRequest {
		return ErrTooManyBooks
	}
	if note == "" {
		return ErrNoteRequired
	}
	return nil
}

// CheckMonthly validates the requestor's request count for the current
// calendar month against the cap.
func (e Evaluator) CheckMonthly(monthlyCount int) error {
	if monthlyCount >= e.limits.MonthlyRequestCap {
		return ErrMonthlyCapReached
	}
	return nil
}
