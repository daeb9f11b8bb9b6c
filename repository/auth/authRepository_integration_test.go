//go:build integration

package authrepo

import (
	"context"
	"testing"

	"webbooks/model"
	"webbooks/util/database"
	"webbooks/util/database/dbtest"

	"github.com/stretchr/testify/require"
)

func TestUserRoundTrip(t *testing.T) {
	db := dbtest.Start(t)
	ctx := context.Background()
	r := New(db)

	u := &model.User{Username: "Reader1", Email: "reader1@example.com", Role: model.RoleReader, PasswordHash: "hash"}
	require.NoError(t, r.Create(ctx, u))
	require.NotZero(t, u.ID)
	require.False(t, u.CreatedAt.IsZero())

	got, err := r.ByUsername(ctx, "reader1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "hash", got.PasswordHash)

	dup := &model.User{Username: "READER1", Email: "other@example.com", Role: model.RoleReader, PasswordHash: "h"}
	constraint, ok := database.UniqueViolation(r.Create(ctx, dup))
	require.True(t, ok)
	require.Equal(t, "users_username_key", constraint)

	_, err = r.ByID(ctx, 999)
	require.True(t, database.IsNoRows(err))

	require.NoError(t, r.UpdatePassword(ctx, u.ID, "new-hash"))
	got, err = r.ByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)
	require.True(t, database.IsNoRows(r.UpdatePassword(ctx, 999, "x")))

	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "Reader1", users[0].Username)
}
