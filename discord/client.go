// Package discord is a minimal client for the two Discord surfaces the
// portal depends on: the OAuth2 authorization-code flow and the guild member
// lookup used to resolve role entitlements.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	autherrors "guildgate/internal/errors"
)

// APIBaseURL is the versioned Discord REST base.
const APIBaseURL = "https://discord.com/api/v10"

// ScopeIdentify grants read access to the authorizing user's id and username.
const ScopeIdentify = "identify"

// DefaultTimeout bounds every outbound call to Discord.
const DefaultTimeout = 10 * time.Second

// Config carries the provider settings. Fields may be left empty; callers
// gate each operation on the settings it needs.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	GuildID      string
	BotToken     string
	Timeout      time.Duration

	// APIBaseURL and Endpoint override the real Discord endpoints in tests.
	APIBaseURL string
	Endpoint   oauth2.Endpoint
}

// User is the subset of Discord's user object the portal needs.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
}

// guildMember is the subset of the guild member object the portal reads.
type guildMember struct {
	Roles []string `json:"roles"`
}

// Client talks to Discord with a bounded timeout on every call.
type Client struct {
	cfg        Config
	apiBaseURL string
	endpoint   oauth2.Endpoint
	httpClient *http.Client
}

// NewClient creates a Discord client from the given settings, applying the
// real Discord endpoints and the default timeout where unset.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = APIBaseURL
	}

	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" && endpoint.TokenURL == "" {
		endpoint = endpoints.Discord
	}

	return &Client{
		cfg:        cfg,
		apiBaseURL: baseURL,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// OAuth2Config returns the oauth2.Config for the authorization-code flow.
func (c *Client) OAuth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  c.cfg.RedirectURI,
		Scopes:       []string{ScopeIdentify},
		Endpoint:     c.endpoint,
	}
}

// AuthCodeURL builds the authorization URL the user is redirected to,
// carrying state for CSRF protection.
func (c *Client) AuthCodeURL(state string) string {
	return c.OAuth2Config().AuthCodeURL(state)
}

// ExchangeCode swaps an authorization code for a token. Exactly one attempt
// is made; any non-success response is terminal and carries the provider's
// error body.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.OAuth2Config().Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if autherrors.As(err, &retrieveErr) {
			return nil, autherrors.Wrapf(autherrors.ErrUpstream,
				"discord: token exchange failed: status %d, body: %s",
				retrieveErr.Response.StatusCode, string(retrieveErr.Body))
		}
		return nil, autherrors.Wrapf(autherrors.ErrUpstream, "discord: token exchange failed: %v", err)
	}
	return token, nil
}

// FetchUser retrieves the authorizing user's identity with the access token.
func (c *Client) FetchUser(ctx context.Context, token *oauth2.Token) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/users/@me", nil)
	if err != nil {
		return User{}, autherrors.Wrapf(autherrors.ErrUpstream, "discord: failed to build identity request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return User{}, autherrors.Wrapf(autherrors.ErrUpstream, "discord: failed to fetch identity: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return User{}, autherrors.Wrapf(autherrors.ErrUpstream,
			"discord: failed to fetch identity: status %d, body: %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, autherrors.Wrapf(autherrors.ErrUpstream, "discord: failed to decode identity: %v", err)
	}
	if user.ID == "" {
		return User{}, autherrors.Wrapf(autherrors.ErrUpstream, "discord: identity payload has no user id")
	}
	return user, nil
}

// FetchMemberRoles returns the role ids the user holds in the configured
// guild. A user who is not a member resolves to no roles, not an error.
func (c *Client) FetchMemberRoles(ctx context.Context, userID string) ([]string, error) {
	url := fmt.Sprintf("%s/guilds/%s/members/%s", c.apiBaseURL, c.cfg.GuildID, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, autherrors.Wrapf(autherrors.ErrUpstream, "discord: failed to build member request: %v", err)
	}
	req.Header.Set("Authorization", "Bot "+c.cfg.BotToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, autherrors.Wrapf(autherrors.ErrUpstream, "discord: failed to fetch guild member: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, autherrors.Wrapf(autherrors.ErrUpstream,
			"discord: failed to fetch guild member: status %d, body: %s", resp.StatusCode, string(body))
	}

	var member guildMember
	if err := json.NewDecoder(resp.Body).Decode(&member); err != nil {
		return nil, autherrors.Wrapf(autherrors.ErrUpstream, "discord: failed to decode guild member: %v", err)
	}
	return member.Roles, nil
}
