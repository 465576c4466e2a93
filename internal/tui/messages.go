package tui

import (
	"errors"

	"github.com/andy/invoicepro/internal/api"
	tea "github.com/charmbracelet/bubbletea"
)

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// SessionExpiredMsg tells the root model the backend rejected the
// session token; it clears the token and returns to the login screen.
type SessionExpiredMsg struct{}

// LoggedInMsg signals a successful login or registration
type LoggedInMsg struct{}

// sessionExpired turns a rejected-token error into a SessionExpiredMsg
// command. Screens call it first when a fetch or mutation fails.
func sessionExpired(err error) tea.Cmd {
	if errors.Is(err, api.ErrUnauthorized) {
		return func() tea.Msg { return SessionExpiredMsg{} }
	}
	return nil
}
