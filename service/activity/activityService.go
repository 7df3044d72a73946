package activitysvc

import (
	"context"

	"github.com/vanchien2973/MidAssignment-sub000/model"
)

type Repo interface {
	List(ctx context.Context, limit int) ([]model.Activity, error)
}

type Service interface {
	List(ctx context.Context, limit int) ([]model.Activity, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, limit int) ([]model.Activity, error) {
	return s.r.List(ctx, limit)
}
