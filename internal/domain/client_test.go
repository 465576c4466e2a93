package domain

import (
	"errors"
	"testing"
)

func TestClientValidate(t *testing.T) {
	c := NewClient("ACME Corp", "billing@acme.test")
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name   string
		client *Client
		field  string
	}{
		{"missing name", NewClient("", "billing@acme.test"), "name"},
		{"missing email", NewClient("ACME", ""), "email"},
		{"bad email", NewClient("ACME", "not-an-email"), "email"},
	}
	for _, c := range cases {
		err := c.client.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", c.name, err)
			continue
		}
		if verr.Field != c.field {
			t.Errorf("%s: expected field %q, got %q", c.name, c.field, verr.Field)
		}
	}
}

func TestNewClientTrimsWhitespace(t *testing.T) {
	c := NewClient("  ACME  ", " billing@acme.test ")
	if c.Name != "ACME" {
		t.Fatalf("expected trimmed name, got %q", c.Name)
	}
	if c.Email != "billing@acme.test" {
		t.Fatalf("expected trimmed email, got %q", c.Email)
	}
}
