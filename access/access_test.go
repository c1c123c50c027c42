package access_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guildgate/access"
)

const (
	basicRoleID = "1090000000000000101"
	proRoleID   = "1090000000000000102"
	testUserID  = "228194828534288384"
)

type fakeRoleFetcher struct {
	roles []string
	err   error
	calls int
}

func (f *fakeRoleFetcher) FetchMemberRoles(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.roles, f.err
}

func testConfig() access.Config {
	return access.Config{
		GuildID:     "1090000000000000001",
		BotToken:    "bot-credential",
		BasicRoleID: basicRoleID,
		ProRoleID:   proRoleID,
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("no roles", func(t *testing.T) {
		resolver := access.NewResolver(testConfig(), &fakeRoleFetcher{})

		rights, err := resolver.Resolve(context.Background(), testUserID)
		require.NoError(t, err)
		assert.False(t, rights.HasBasic)
		assert.False(t, rights.HasPro)
	})

	t.Run("basic role only", func(t *testing.T) {
		resolver := access.NewResolver(testConfig(), &fakeRoleFetcher{roles: []string{basicRoleID, "999"}})

		rights, err := resolver.Resolve(context.Background(), testUserID)
		require.NoError(t, err)
		assert.True(t, rights.HasBasic)
		assert.False(t, rights.HasPro)
	})

	t.Run("pro role grants basic", func(t *testing.T) {
		resolver := access.NewResolver(testConfig(), &fakeRoleFetcher{roles: []string{proRoleID}})

		rights, err := resolver.Resolve(context.Background(), testUserID)
		require.NoError(t, err)
		assert.True(t, rights.HasBasic)
		assert.True(t, rights.HasPro)
	})

	t.Run("both roles", func(t *testing.T) {
		resolver := access.NewResolver(testConfig(), &fakeRoleFetcher{roles: []string{basicRoleID, proRoleID}})

		rights, err := resolver.Resolve(context.Background(), testUserID)
		require.NoError(t, err)
		assert.True(t, rights.HasBasic)
		assert.True(t, rights.HasPro)
	})

	t.Run("unrelated roles", func(t *testing.T) {
		resolver := access.NewResolver(testConfig(), &fakeRoleFetcher{roles: []string{"999", "888"}})

		rights, err := resolver.Resolve(context.Background(), testUserID)
		require.NoError(t, err)
		assert.False(t, rights.HasBasic)
		assert.False(t, rights.HasPro)
	})

	t.Run("lookup failure is terminal", func(t *testing.T) {
		resolver := access.NewResolver(testConfig(), &fakeRoleFetcher{err: errors.New("discord is down")})

		_, err := resolver.Resolve(context.Background(), testUserID)
		require.Error(t, err)
		require.Contains(t, err.Error(), "discord is down")
	})

	t.Run("recomputed on every call", func(t *testing.T) {
		fetcher := &fakeRoleFetcher{roles: []string{proRoleID}}
		resolver := access.NewResolver(testConfig(), fetcher)

		for i := 0; i < 3; i++ {
			_, err := resolver.Resolve(context.Background(), testUserID)
			require.NoError(t, err)
		}
		assert.Equal(t, 3, fetcher.calls)
	})
}

func TestResolver_FailsClosedWithoutConfig(t *testing.T) {
	incomplete := map[string]access.Config{
		"missing guild id":      {BotToken: "t", BasicRoleID: basicRoleID, ProRoleID: proRoleID},
		"missing bot token":     {GuildID: "g", BasicRoleID: basicRoleID, ProRoleID: proRoleID},
		"missing basic role id": {GuildID: "g", BotToken: "t", ProRoleID: proRoleID},
		"missing pro role id":   {GuildID: "g", BotToken: "t", BasicRoleID: basicRoleID},
		"missing everything":    {},
	}

	for name, cfg := range incomplete {
		t.Run(name, func(t *testing.T) {
			fetcher := &fakeRoleFetcher{roles: []string{basicRoleID, proRoleID}}
			resolver := access.NewResolver(cfg, fetcher)

			rights, err := resolver.Resolve(context.Background(), testUserID)
			require.NoError(t, err)
			assert.False(t, rights.HasBasic)
			assert.False(t, rights.HasPro)
			assert.Zero(t, fetcher.calls, "provider must not be called when lookup is unconfigured")
		})
	}
}
