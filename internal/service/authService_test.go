package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspot/studyspot/internal/database"
)

func newAuthTestService(t *testing.T) (AuthService, database.StateStore) {
	t.Helper()

	store := database.NewMemoryStateStore()
	sessions, err := database.NewSessionRepository(context.Background(), store)
	require.NoError(t, err)

	return NewAuthService(sessions, NewToastService(5*time.Second, nil)), store
}

func TestLogin(t *testing.T) {
	auth, _ := newAuthTestService(t)
	ctx := context.Background()

	assert.False(t, auth.Session(ctx).IsLoggedIn)

	session, err := auth.Login(ctx, "  Alice  ")
	require.NoError(t, err)
	assert.True(t, session.IsLoggedIn)
	assert.Equal(t, "Alice", session.UserName)

	assert.True(t, auth.Session(ctx).IsLoggedIn)
}

func TestLoginEmptyName(t *testing.T) {
	auth, _ := newAuthTestService(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := auth.Login(context.Background(), name)
		assert.Error(t, err)
	}
}

func TestLogout(t *testing.T) {
	auth, _ := newAuthTestService(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, "Alice")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx))

	session := auth.Session(ctx)
	assert.False(t, session.IsLoggedIn)
	assert.Empty(t, session.UserName)
}

// Сессия переживает пересоздание репозитория поверх того же хранилища.
func TestSessionSurvivesRehydration(t *testing.T) {
	auth, store := newAuthTestService(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, "Alice")
	require.NoError(t, err)

	sessions, err := database.NewSessionRepository(ctx, store)
	require.NoError(t, err)

	session := sessions.Get(ctx)
	assert.True(t, session.IsLoggedIn)
	assert.Equal(t, "Alice", session.UserName)
}
