package api

import (
	"context"
	"errors"
)

// authResponse is the bare {token} body returned by the auth endpoints
type authResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token and stores it
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.Post(ctx, "/auth/login", body, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return errors.New("login succeeded but no token was returned")
	}

	return c.tokens.Set(resp.Token)
}

// Register creates an account and stores the returned token
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp authResponse
	if err := c.Post(ctx, "/auth/register", body, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return errors.New("registration succeeded but no token was returned")
	}

	return c.tokens.Set(resp.Token)
}

// Logout clears the stored session token. Mutations already in flight
// complete with the old credential and surface ErrUnauthorized.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}
