package categorysvc

import (
	"context"
	"errors"
	"strings"

	"github.com/vanchien2973/MidAssignment-sub000/model"
)

type Repo interface {
	Create(ctx context.Context, name string) (int64, error)
	List(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, name string) (int64, error)
	List(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("invalid payload")
	}
	return s.r.Create(ctx, name)
}

func (s *service) List(ctx context.Context) ([]model.Category, error) { return s.r.List(ctx) }

func (s *service) Delete(ctx context.Context, id int64) (bool, error) { return s.r.Delete(ctx, id) }
