package authorsvc_test

import (
	"context"
	"math"
	"testing"
	"time"

	"webbooks/model"
	authorsvc "webbooks/service/author"
	"webbooks/util/apperr"
	"webbooks/util/database"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	listFn   func(ctx context.Context, page model.PageReq) ([]model.Author, int64, error)
	allFn    func(ctx context.Context) ([]model.Author, error)
	getFn    func(ctx context.Context, id int64) (*model.Author, error)
	createFn func(ctx context.Context, a *model.Author) error
	updateFn func(ctx context.Context, a *model.Author) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *repoMock) List(ctx context.Context, page model.PageReq) ([]model.Author, int64, error) {
	return m.listFn(ctx, page)
}
func (m *repoMock) All(ctx context.Context) ([]model.Author, error) { return m.allFn(ctx) }
func (m *repoMock) Get(ctx context.Context, id int64) (*model.Author, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) Create(ctx context.Context, a *model.Author) error { return m.createFn(ctx, a) }
func (m *repoMock) Update(ctx context.Context, a *model.Author) error { return m.updateFn(ctx, a) }
func (m *repoMock) Delete(ctx context.Context, id int64) error         { return m.deleteFn(ctx, id) }

func date(y int, mo time.Month, d int) *model.Date {
	v := model.NewDate(y, mo, d)
	return &v
}

func TestCreate_DeathBeforeBirth(t *testing.T) {
	s := authorsvc.New(&repoMock{})
	err := s.Create(context.Background(), &model.Author{
		FirstName: "A", LastName: "B",
		DateOfBirth: date(1950, time.May, 1), DateOfDeath: date(1949, time.May, 1),
	})
	require.Equal(t, apperr.ErrInvalid, apperr.Code(err))
}

func TestCreate_Success(t *testing.T) {
	s := authorsvc.New(&repoMock{
		createFn: func(ctx context.Context, a *model.Author) error {
			a.ID = 11
			return nil
		},
	})
	a := &model.Author{FirstName: "Ursula", LastName: "Le Guin", DateOfBirth: date(1929, time.October, 21)}
	require.NoError(t, s.Create(context.Background(), a))
	require.EqualValues(t, 11, a.ID)
}

func TestUpdate_Missing(t *testing.T) {
	s := authorsvc.New(&repoMock{
		updateFn: func(ctx context.Context, a *model.Author) error { return database.ErrNoRows },
	})
	err := s.Update(context.Background(), &model.Author{ID: 3, FirstName: "A", LastName: "B"})
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestList_Paging(t *testing.T) {
	s := authorsvc.New(&repoMock{
		listFn: func(ctx context.Context, page model.PageReq) ([]model.Author, int64, error) {
			if page.Number == 1 {
				return []model.Author{{ID: 1, LastName: "Lem"}}, 1, nil
			}
			return nil, 1, nil
		},
	})

	p, err := s.List(context.Background(), model.PageReq{Number: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, p.Data, 1)
	require.False(t, p.HasNext)

	_, err = s.List(context.Background(), model.PageReq{Number: 2, Size: 10})
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))

	_, err = s.List(context.Background(), model.PageReq{Number: math.MaxInt, Size: 10})
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))

	_, err = s.List(context.Background(), model.PageReq{Number: 0, Size: 10})
	require.Equal(t, apperr.ErrInvalid, apperr.Code(err))
}
