package policy

import (
	"errors"
	"testing"
)

func defaultEvaluator() Evaluator {
	return New(Limits{MonthlyRequestCap: 3, MaxBooksPerRequest: 5})
}

func TestCheckSelection(t *testing.T) {
	e := defaultEvaluator()

	cases := []struct {
		name      string
		bookCount int
		note      string
		want      error
	}{
		{"one book with note", 1, "thesis work", nil},
		{"cap exactly", 5, "thesis work", nil},
		{"no books", 0, "thesis work", ErrNoBooks},
		{"over cap", 6, "thesis work", ErrTooManyBooks},
		{"missing note", 2, "", ErrNoteRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := e.CheckSelection(tc.bookCount, tc.note)
			if !errors.Is(err, tc.want) {
				t.Fatalf("CheckSelection(%d, %q) = %v; want %v", tc.bookCount, tc.note, err, tc.want)
			}
		})
	}
}

func TestCheckMonthly(t *testing.T) {
	e := defaultEvaluator()

	if err := e.CheckMonthly(2); err != nil {
		t.Fatalf("count below cap should pass, got %v", err)
	}
	if err := e.CheckMonthly(3); !errors.Is(err, ErrMonthlyCapReached) {
		t.Fatalf("count at cap should fail, got %v", err)
	}
	if err := e.CheckMonthly(10); !errors.Is(err, ErrMonthlyCapReached) {
		t.Fatalf("count above cap should fail, got %v", err)
	}
}
