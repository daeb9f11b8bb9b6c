package lookupsvc

import (
	"context"
	"strings"
	"unicode/utf8"

	"webbooks/model"
	"webbooks/util/apperr"
	"webbooks/util/database"
)

type Repo interface {
	List(ctx context.Context) ([]model.Named, error)
	Get(ctx context.Context, id int64) (*model.Named, error)
	ByName(ctx context.Context, name string) (*model.Named, error)
	Create(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	List(ctx context.Context) ([]model.Named, error)
	Get(ctx context.Context, id int64) (*model.Named, error)
	Create(ctx context.Context, name string) (*model.Named, error)
	Update(ctx context.Context, id int64, name string) (*model.Named, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	r      Repo
	what   string
	maxLen int
}

// New serves one lookup table. what names its rows in errors ("genre"),
// maxLen bounds the name in characters.
func New(r Repo, what string, maxLen int) Service {
	return &service{r: r, what: what, maxLen: maxLen}
}

func (s *service) List(ctx context.Context) ([]model.Named, error) { return s.r.List(ctx) }

func (s *service) Get(ctx context.Context, id int64) (*model.Named, error) {
	n, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, s.what)
	}
	return n, nil
}

func (s *service) Create(ctx context.Context, name string) (*model.Named, error) {
	name, err := s.clean(name)
	if err != nil {
		return nil, err
	}
	if err := s.unique(ctx, 0, name); err != nil {
		return nil, err
	}
	id, err := s.r.Create(ctx, name)
	if err != nil {
		return nil, apperr.FromDB(err, s.what)
	}
	return &model.Named{ID: id, Name: name}, nil
}

func (s *service) Update(ctx context.Context, id int64, name string) (*model.Named, error) {
	name, err := s.clean(name)
	if err != nil {
		return nil, err
	}
	if err := s.unique(ctx, id, name); err != nil {
		return nil, err
	}
	if err := s.r.Update(ctx, id, name); err != nil {
		return nil, apperr.FromDB(err, s.what)
	}
	return &model.Named{ID: id, Name: name}, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return apperr.FromDB(s.r.Delete(ctx, id), s.what)
}

// unique rejects a name already held by another row, ignoring case.
func (s *service) unique(ctx context.Context, id int64, name string) error {
	n, err := s.r.ByName(ctx, name)
	switch {
	case database.IsNoRows(err):
		return nil
	case err != nil:
		return apperr.FromDB(err, s.what)
	case n.ID != id:
		return apperr.New(apperr.ErrConflict, s.what+" "+n.Name+" already exists")
	}
	return nil
}

func (s *service) clean(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.New(apperr.ErrInvalid, s.what+" name is required")
	}
	if s.maxLen > 0 && utf8.RuneCountInString(name) > s.maxLen {
		return "", apperr.New(apperr.ErrInvalid, s.what+" name is too long")
	}
	return name, nil
}
