package service

import (
	"context"

	"showtime-tix-cli/model"
)

// Credentials is the login payload. The backend accepts a username or an
// email in the same field.
type Credentials struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// Registration is the sign-up payload.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Me returns the current session identity. The backend answers with an
// anonymous pseudo-user rather than a 401 when no session exists; callers
// should check User.Authenticated.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	if err := c.getJSON(ctx, "/auth/me", nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Login establishes a server session. The session cookie lands in the
// client's jar; the returned snapshot carries the normalized role set.
func (c *Client) Login(ctx context.Context, creds Credentials) (model.User, error) {
	if err := checkRequest(creds); err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := c.writeJSON(ctx, "POST", "/auth/login", creds, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Register creates an account. It does not log the new user in.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	if err := checkRequest(reg); err != nil {
		return err
	}
	return c.writeJSON(ctx, "POST", "/auth/register", reg, nil)
}

// Logout invalidates the server session.
func (c *Client) Logout(ctx context.Context) error {
	return c.writeJSON(ctx, "POST", "/auth/logout", nil, nil)
}
