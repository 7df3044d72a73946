package booksvc

import (
	"context"
	"errors"

	"github.com/vanchien2973/MidAssignment-sub000/model"
)

type Book = model.Book

type Repo interface {
	Create(ctx context.Context, title, author string, categoryID *int64, copies int64) (int64, error)
	Update(ctx context.Context, id int64, title, author string, categoryID *int64) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) (bool, error)
	AddCopies(ctx context.Context, id int64, n int64) (bool, error)
	List(ctx context.Context, search string) ([]Book, error)
	Detail(ctx context.Context, id int64) (*Book, error)
}

type Service interface {
	Create(ctx context.Context, title, author string, categoryID *int64, copies int64) (int64, error)
	Update(ctx context.Context, id int64, title, author string, categoryID *int64) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) (bool, error)
	AddCopies(ctx context.Context, id int64, n int64) (bool, error)
	List(ctx context.Context, search string) ([]Book, error)
	Detail(ctx context.Context, id int64) (*Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, title, author string, categoryID *int64, copies int64) (int64, error) {
	if title == "" || author == "" || copies < 0 {
		return 0, errors.New("invalid payload")
	}
	return s.r.Create(ctx, title, author, categoryID, copies)
}

func (s *service) Update(ctx context.Context, id int64, title, author string, categoryID *int64) (bool, error) {
	if title == "" || author == "" {
		return false, errors.New("invalid payload")
	}
	return s.r.Update(ctx, id, title, author, categoryID)
}

func (s *service) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	return s.r.SetActive(ctx, id, active)
}

func (s *service) AddCopies(ctx context.Context, id int64, n int64) (bool, error) {
	if n <= 0 {
		return false, errors.New("invalid payload")
	}
	return s.r.AddCopies(ctx, id, n)
}

func (s *service) List(ctx context.Context, search string) ([]Book, error) {
	return s.r.List(ctx, search)
}

func (s *service) Detail(ctx context.Context, id int64) (*Book, error) {
	return s.r.Detail(ctx, id)
}
