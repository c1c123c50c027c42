// Package access resolves which download tiers a logged-in user may reach.
// Entitlements derive from the user's guild roles and are recomputed on
// every check. Nothing here is cached: revoking a role takes effect on the
// next request.
package access

import (
	"context"

	"github.com/rs/zerolog/log"
)

// RoleFetcher looks up the role ids a user holds in the configured guild.
// A user who is not a member yields no roles and no error.
type RoleFetcher interface {
	FetchMemberRoles(ctx context.Context, userID string) ([]string, error)
}

// Rights are the download entitlements derived from guild roles. Pro
// subsumes Basic.
type Rights struct {
	HasBasic bool
	HasPro   bool
}

// Config carries the guild lookup settings. If any field is empty the
// resolver fails closed and reports no entitlements rather than erroring.
type Config struct {
	GuildID     string
	BotToken    string
	BasicRoleID string
	ProRoleID   string
}

// Resolver derives Rights from a user's guild roles.
type Resolver struct {
	cfg     Config
	fetcher RoleFetcher
}

// NewResolver creates a Resolver that reads roles through the given fetcher.
func NewResolver(cfg Config, fetcher RoleFetcher) *Resolver {
	return &Resolver{cfg: cfg, fetcher: fetcher}
}

// Resolve returns the user's current entitlements. Lookup failures other
// than not-a-member are terminal so callers never mistake an outage for a
// revoked role.
func (r *Resolver) Resolve(ctx context.Context, userID string) (Rights, error) {
	roles, err := r.fetchRoles(ctx, userID)
	if err != nil {
		return Rights{}, err
	}

	hasPro := containsRole(roles, r.cfg.ProRoleID)
	return Rights{
		HasPro:   hasPro,
		HasBasic: hasPro || containsRole(roles, r.cfg.BasicRoleID),
	}, nil
}

func (r *Resolver) fetchRoles(ctx context.Context, userID string) ([]string, error) {
	if !r.configured() {
		log.Debug().Msg("guild lookup not configured, treating user as having no roles")
		return nil, nil
	}
	return r.fetcher.FetchMemberRoles(ctx, userID)
}

func (r *Resolver) configured() bool {
	return r.cfg.GuildID != "" && r.cfg.BotToken != "" && r.cfg.BasicRoleID != "" && r.cfg.ProRoleID != ""
}

func containsRole(roles []string, roleID string) bool {
	for _, role := range roles {
		if role == roleID {
			return true
		}
	}
	return false
}
