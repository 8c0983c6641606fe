package inmemory

import (
	"context"
	"testing"

	"blogapi/internal/model"
	"blogapi/internal/service"

	"github.com/stretchr/testify/require"
)

func TestUserStorage(t *testing.T) {
	t.Parallel()

	st := NewUserStorage()
	ctx := context.Background()

	u, err := st.CreateUser(ctx, model.User{Username: "a", Email: "A@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)

	_, err = st.CreateUser(ctx, model.User{Username: "b", Email: "a@example.com", PasswordHash: "h"})
	require.ErrorIs(t, err, service.ErrConflict)

	got, err := st.GetUserByEmail(ctx, "a@EXAMPLE.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = st.GetUserByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, service.ErrNotFound)
}
