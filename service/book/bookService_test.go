// service/book/bookService_test.go
package booksvc_test

import (
	"context"
	"errors"
	"testing"

	booksvc "github.com/vanchien2973/MidAssignment-sub000/service/book"
)

type repoMock struct {
	createFn    func(ctx context.Context, title, author string, categoryID *int64, copies int64) (int64, error)
	updateFn    func(ctx context.Context, id int64, title, author string, categoryID *int64) (bool, error)
	setActiveFn func(ctx context.Context, id int64, active bool) (bool, error)
	addCopiesFn func(ctx context.Context, id int64, n int64) (bool, error)
	listFn      func(ctx context.Context, search string) ([]booksvc.Book, error)
	detailFn    func(ctx context.Context, id int64) (*booksvc.Book, error)
}

func (m *repoMock) Create(ctx context.Context, title, author string, categoryID *int64, copies int64) (int64, error) {
	return m.createFn(ctx, title, author, categoryID, copies)
}
func (m *repoMock) Update(ctx context.Context, id int64, title, author string, categoryID *int64) (bool, error) {
	return m.updateFn(ctx, id, title, author, categoryID)
}
func (m *repoMock) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	return m.setActiveFn(ctx, id, active)
}
func (m *repoMock) AddCopies(ctx context.Context, id int64, n int64) (bool, error) {
	return m.addCopiesFn(ctx, id, n)
}
func (m *repoMock) List(ctx context.Context, search string) ([]booksvc.Book, error) {
	return m.listFn(ctx, search)
}
func (m *repoMock) Detail(ctx context.Context, id int64) (*booksvc.Book, error) {
	return m.detailFn(ctx, id)
}

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	if _, err := s.Create(context.Background(), "", "Fowler", nil, 1); err == nil {
		t.Fatal("expected error for empty title")
	}
	if _, err := s.Create(context.Background(), "Refactoring", "", nil, 1); err == nil {
		t.Fatal("expected error for empty author")
	}
	if _, err := s.Create(context.Background(), "Refactoring", "Fowler", nil, -1); err == nil {
		t.Fatal("expected error for negative copies")
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, title, author string, categoryID *int64, copies int64) (int64, error) {
			if title != "Clean Code" || author != "Martin" || copies != 3 {
				return 0, errors.New("bad args")
			}
			return 42, nil
		},
	}
	s := booksvc.New(m)
	id, err := s.Create(context.Background(), "Clean Code", "Martin", nil, 3)
	if err != nil || id != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", id, err)
	}
}

func TestAddCopies_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	if _, err := s.AddCopies(context.Background(), 7, 0); err == nil {
		t.Fatal("expected error for zero count")
	}
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		updateFn:    func(ctx context.Context, id int64, title, author string, categoryID *int64) (bool, error) { return true, nil },
		setActiveFn: func(ctx context.Context, id int64, active bool) (bool, error) { return true, nil },
		addCopiesFn: func(ctx context.Context, id int64, n int64) (bool, error) { return true, nil },
		listFn:      func(ctx context.Context, search string) ([]booksvc.Book, error) { return nil, nil },
		detailFn:    func(ctx context.Context, id int64) (*booksvc.Book, error) { return &booksvc.Book{}, nil },
	}
	s := booksvc.New(m)

	if ok, err := s.Update(context.Background(), 7, "t", "a", nil); err != nil || !ok {
		t.Fatalf("Update got %v %v; want true nil", ok, err)
	}
	if ok, err := s.SetActive(context.Background(), 7, false); err != nil || !ok {
		t.Fatalf("SetActive got %v %v; want true nil", ok, err)
	}
	if ok, err := s.AddCopies(context.Background(), 7, 3); err != nil || !ok {
		t.Fatalf("AddCopies got %v %v; want true nil", ok, err)
	}
	if _, err := s.List(context.Background(), ""); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if _, err := s.Detail(context.Background(), 99); err != nil {
		t.Fatalf("Detail error: %v", err)
	}
}
