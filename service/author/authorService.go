package authorsvc

import (
	"context"

	"webbooks/model"
	"webbooks/util/apperr"
)

type Repo interface {
	List(ctx context.Context, page model.PageReq) ([]model.Author, int64, error)
	All(ctx context.Context) ([]model.Author, error)
	Get(ctx context.Context, id int64) (*model.Author, error)
	Create(ctx context.Context, a *model.Author) error
	Update(ctx context.Context, a *model.Author) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	List(ctx context.Context, page model.PageReq) (model.Page[model.Author], error)
	All(ctx context.Context) ([]model.Author, error)
	Get(ctx context.Context, id int64) (*model.Author, error)
	Create(ctx context.Context, a *model.Author) error
	Update(ctx context.Context, a *model.Author) error
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, page model.PageReq) (model.Page[model.Author], error) {
	if page.Number < 1 {
		return model.Page[model.Author]{}, apperr.New(apperr.ErrInvalid, "invalid page")
	}
	rows, total, err := s.r.List(ctx, page)
	if err != nil {
		return model.Page[model.Author]{}, err
	}
	if page.Beyond(total) {
		return model.Page[model.Author]{}, apperr.New(apperr.ErrNotFound, "page not found")
	}
	return model.NewPage(rows, page, total), nil
}

func (s *service) All(ctx context.Context) ([]model.Author, error) { return s.r.All(ctx) }

func (s *service) Get(ctx context.Context, id int64) (*model.Author, error) {
	a, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "author")
	}
	return a, nil
}

func (s *service) Create(ctx context.Context, a *model.Author) error {
	if err := check(a); err != nil {
		return err
	}
	return apperr.FromDB(s.r.Create(ctx, a), "author")
}

func (s *service) Update(ctx context.Context, a *model.Author) error {
	if err := check(a); err != nil {
		return err
	}
	return apperr.FromDB(s.r.Update(ctx, a), "author")
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return apperr.FromDB(s.r.Delete(ctx, id), "author")
}

func check(a *model.Author) error {
	if a.FirstName == "" || a.LastName == "" {
		return apperr.New(apperr.ErrInvalid, "first and last name are required")
	}
	if a.DateOfBirth != nil && a.DateOfDeath != nil && a.DateOfDeath.Before(*a.DateOfBirth) {
		return apperr.New(apperr.ErrInvalid, "date_of_death precedes date_of_birth")
	}
	return nil
}
