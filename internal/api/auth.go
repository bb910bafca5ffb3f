package api

import (
	"context"
	"net/http"

	"storefront/internal/model"
)

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the account-creation payload.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role"`
}

// loginResponse mirrors the backend's authentication response: the
// user summary, the bearer token, and the role list (the first entry
// is the effective role).
type loginResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
	Roles []string   `json:"roles"`
}

// Login authenticates and installs the resulting user into the
// session, persisting it for the next process start.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*model.User, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", nil, req, &resp); err != nil {
		return nil, err
	}

	user := resp.User
	if len(resp.Roles) > 0 {
		user.Role = model.Role(resp.Roles[0])
	}

	if err := c.session.SetUser(user, resp.Token); err != nil {
		return nil, err
	}

	c.logger.Info().Int("user_id", user.ID).Str("role", user.Role.String()).Msg("signed in")
	return &user, nil
}

// Register creates an account. The caller signs in separately.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/register", nil, req, nil)
}

// Logout revokes the token server-side, then tears the session down
// regardless of whether the revocation call succeeded.
func (c *Client) Logout(ctx context.Context) {
	if err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil, nil); err != nil {
		c.logger.Warn().Err(err).Msg("logout call failed, clearing session anyway")
	}
	if c.session.Authenticated() {
		c.session.Teardown()
	}
}
