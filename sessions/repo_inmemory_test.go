package sessions_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	autherrors "guildgate/internal/errors"
	"guildgate/sessions"
)

const (
	testUserID   = "228194828534288384"
	testUsername = "ann"
)

func TestInMemorySessionRepo_Create(t *testing.T) {
	repo := sessions.NewInMemorySessionRepo(time.Minute)
	defer repo.Close()

	t.Run("created session is retrievable", func(t *testing.T) {
		created, err := repo.Create(testUserID, testUsername)
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		require.False(t, created.CreatedAt.IsZero())

		got, err := repo.Get(created.ID)
		require.NoError(t, err)
		require.Equal(t, created, got)
		require.Equal(t, testUserID, got.UserID)
		require.Equal(t, testUsername, got.Username)
	})

	t.Run("ids are long and distinct", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			s, err := repo.Create(testUserID, testUsername)
			require.NoError(t, err)
			// 32 bytes base64url encode to 43 characters
			require.Len(t, s.ID, 43)
			require.False(t, seen[s.ID])
			seen[s.ID] = true
		}
	})

	t.Run("concurrent creates yield distinct ids", func(t *testing.T) {
		const n = 32
		ids := make([]string, n)

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				s, err := repo.Create(testUserID, testUsername)
				require.NoError(t, err)
				ids[i] = s.ID
			}(i)
		}
		wg.Wait()

		seen := map[string]bool{}
		for _, id := range ids {
			require.False(t, seen[id])
			seen[id] = true
		}
	})
}

func TestInMemorySessionRepo_Get(t *testing.T) {
	repo := sessions.NewInMemorySessionRepo(time.Minute)
	defer repo.Close()

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Get("no-such-session")
		require.ErrorIs(t, err, autherrors.ErrSessionNotFound)
	})

	t.Run("expired session is gone", func(t *testing.T) {
		short := sessions.NewInMemorySessionRepo(30 * time.Millisecond)
		defer short.Close()

		created, err := short.Create(testUserID, testUsername)
		require.NoError(t, err)

		time.Sleep(80 * time.Millisecond)

		_, err = short.Get(created.ID)
		require.ErrorIs(t, err, autherrors.ErrSessionNotFound)
	})
}

func TestInMemorySessionRepo_Delete(t *testing.T) {
	repo := sessions.NewInMemorySessionRepo(time.Minute)
	defer repo.Close()

	t.Run("deleted session no longer resolves", func(t *testing.T) {
		created, err := repo.Create(testUserID, testUsername)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(created.ID))

		_, err = repo.Get(created.ID)
		require.ErrorIs(t, err, autherrors.ErrSessionNotFound)
	})

	t.Run("deleting an unknown id is a no-op", func(t *testing.T) {
		require.NoError(t, repo.Delete("never-existed"))
		require.NoError(t, repo.Delete("never-existed"))
	})
}
