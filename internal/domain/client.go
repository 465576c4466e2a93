package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Client is a billable customer. The ID is assigned by the backend and
// opaque to this program; invoices reference clients by ID only.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewClient creates a new client draft with required fields
func NewClient(name, email string) *Client {
	return &Client{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name", "client name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return invalid("email", "client email is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return invalid("email", "not a valid email address")
	}
	return nil
}
