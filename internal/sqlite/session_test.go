package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/teamboard/internal/domain/user"
	"github.com/rpggio/teamboard/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	db := NewTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, newTestUser("u1", "Mike", "mike@example.com", user.RoleTeamMember)))

	created := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, sessions.Create(ctx, "hash-1", "u1", created))

	userID, err := sessions.GetUserID(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, "u1", userID)

	_, err = sessions.GetUserID(ctx, "hash-unknown")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, sessions.Delete(ctx, "hash-1"))
	_, err = sessions.GetUserID(ctx, "hash-1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, sessions.Delete(ctx, "hash-1"), repository.ErrNotFound)
}

func TestSessionRepository_CascadeOnUserDelete(t *testing.T) {
	db := NewTestDB(t)
	users := NewUserRepository(db)
	sessions := NewSessionRepository(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, newTestUser("u1", "Mike", "mike@example.com", user.RoleTeamMember)))
	require.NoError(t, sessions.Create(ctx, "hash-1", "u1", time.Now()))

	require.NoError(t, users.Delete(ctx, "u1"))

	_, err := sessions.GetUserID(ctx, "hash-1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
