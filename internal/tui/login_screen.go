package tui

import (
	"context"
	"fmt"

	"github.com/andy/invoicepro/internal/app"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// login form field indices
const (
	loginFieldName = iota // register mode only
	loginFieldEmail
	loginFieldPassword
	loginFieldCount
)

// LoginModel collects credentials and exchanges them for a session
// token. Tab toggles between sign in and create account.
type LoginModel struct {
	app        *app.App
	fields     []textinput.Model
	fieldFocus int
	register   bool
	submitting bool
	err        error
}

type loginDoneMsg struct {
	err error
}

// NewLoginModel creates a new login screen model
func NewLoginModel(a *app.App) tea.Model {
	m := &LoginModel{app: a}
	m.initForm()
	return m
}

// IsCapturingInput returns true; the login form always owns the keyboard
func (m *LoginModel) IsCapturingInput() bool {
	return true
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) initForm() {
	m.fields = make([]textinput.Model, loginFieldCount)

	m.fields[loginFieldName] = textinput.New()
	m.fields[loginFieldName].Placeholder = "Your name"
	m.fields[loginFieldName].CharLimit = 100
	m.fields[loginFieldName].Width = 40

	m.fields[loginFieldEmail] = textinput.New()
	m.fields[loginFieldEmail].Placeholder = "email@example.com"
	m.fields[loginFieldEmail].CharLimit = 100
	m.fields[loginFieldEmail].Width = 40

	m.fields[loginFieldPassword] = textinput.New()
	m.fields[loginFieldPassword].Placeholder = "password"
	m.fields[loginFieldPassword].CharLimit = 100
	m.fields[loginFieldPassword].Width = 40
	m.fields[loginFieldPassword].EchoMode = textinput.EchoPassword
	m.fields[loginFieldPassword].EchoCharacter = '•'

	m.fieldFocus = m.firstField()
	m.fields[m.fieldFocus].Focus()
}

// firstField returns the first visible field for the current mode
func (m *LoginModel) firstField() int {
	if m.register {
		return loginFieldName
	}
	return loginFieldEmail
}

func (m *LoginModel) submit() tea.Cmd {
	name := m.fields[loginFieldName].Value()
	email := m.fields[loginFieldEmail].Value()
	password := m.fields[loginFieldPassword].Value()
	register := m.register

	return func() tea.Msg {
		ctx := context.Background()

		if email == "" || password == "" {
			return loginDoneMsg{err: fmt.Errorf("email and password are required")}
		}

		if register {
			if name == "" {
				return loginDoneMsg{err: fmt.Errorf("name is required")}
			}
			return loginDoneMsg{err: m.app.API.Register(ctx, name, email, password)}
		}
		return loginDoneMsg{err: m.app.API.Login(ctx, email, password)}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, func() tea.Msg { return LoggedInMsg{} }

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "tab":
			// Toggle between sign in and create account
			m.fields[m.fieldFocus].Blur()
			m.register = !m.register
			m.err = nil
			m.fieldFocus = m.firstField()
			return m, m.fields[m.fieldFocus].Focus()

		case "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			if m.fieldFocus >= loginFieldCount {
				m.fieldFocus = m.firstField()
			}
			return m, m.fields[m.fieldFocus].Focus()

		case "up", "shift+tab":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus--
			if m.fieldFocus < m.firstField() {
				m.fieldFocus = loginFieldCount - 1
			}
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus < loginFieldPassword {
				m.fields[m.fieldFocus].Blur()
				m.fieldFocus++
				return m, m.fields[m.fieldFocus].Focus()
			}
			m.submitting = true
			m.err = nil
			return m, m.submit()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	var s string

	if m.register {
		s += titleStyle.Render("Create Account") + "\n\n"
	} else {
		s += titleStyle.Render("Sign In") + "\n\n"
	}

	labels := []string{"Name:", "Email:", "Password:"}
	for i := m.firstField(); i < loginFieldCount; i++ {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(labels[i]), m.fields[i].View())
	}

	if m.submitting {
		s += subtitleStyle.Render("  Signing in...") + "\n\n"
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if m.register {
		s += helpStyle.Render("  enter: create account  tab: sign in instead")
	} else {
		s += helpStyle.Render("  enter: sign in  tab: create an account")
	}

	return s
}
