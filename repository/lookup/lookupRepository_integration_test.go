//go:build integration

package lookuprepo

import (
	"context"
	"testing"

	"webbooks/model"
	"webbooks/util/database"
	"webbooks/util/database/dbtest"

	"github.com/stretchr/testify/require"
)

func TestSeededStatuses(t *testing.T) {
	db := dbtest.Start(t)
	r := New(db, Statuses)

	n, err := r.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 4, n)

	s, err := r.ByName(context.Background(), "on LOAN")
	require.NoError(t, err)
	require.Equal(t, model.StatusOnLoan, s.Name)
}

func TestGenreRoundTrip(t *testing.T) {
	db := dbtest.Start(t)
	ctx := context.Background()
	r := New(db, Genres)

	id, err := r.Create(ctx, "Poetry")
	require.NoError(t, err)
	require.NoError(t, r.Update(ctx, id, "Epic poetry"))

	g, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Epic poetry", g.Name)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Named{{ID: id, Name: "Epic poetry"}}, list)

	require.NoError(t, r.Delete(ctx, id))
	_, err = r.Get(ctx, id)
	require.True(t, database.IsNoRows(err))
}
