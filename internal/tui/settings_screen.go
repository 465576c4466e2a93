package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/invoicepro/internal/api"
	"github.com/andy/invoicepro/internal/app"
	"github.com/andy/invoicepro/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// company form field indices
const (
	companyFieldName = iota
	companyFieldAddress
	companyFieldPhone
	companyFieldLogo
	companyFieldCount
)

// SettingsModel shows and edits the company profile that appears on
// rendered invoices, plus the local client configuration.
type SettingsModel struct {
	app     *app.App
	profile *domain.CompanyProfile

	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int

	fetches   loader
	loading   bool
	err       error
	statusMsg string
}

type companyDataMsg struct {
	gen     int
	profile *domain.CompanyProfile
	err     error
}

type companySavedMsg struct {
	profile *domain.CompanyProfile
	err     error
}

// NewSettingsModel creates a new settings screen model
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return m.loadProfile()
}

func (m *SettingsModel) loadProfile() tea.Cmd {
	gen := m.fetches.next()
	return func() tea.Msg {
		profile, err := m.app.CompanyRepo.Get(context.Background())
		if errors.Is(err, api.ErrNotFound) {
			// Nothing saved yet; the first save creates the profile
			return companyDataMsg{gen: gen, profile: &domain.CompanyProfile{}}
		}
		if err != nil {
			return companyDataMsg{gen: gen, err: err}
		}
		return companyDataMsg{gen: gen, profile: profile}
	}
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, companyFieldCount)

	m.fields[companyFieldName] = textinput.New()
	m.fields[companyFieldName].Placeholder = "Business name"
	m.fields[companyFieldName].CharLimit = 100
	m.fields[companyFieldName].Width = 40

	m.fields[companyFieldAddress] = textinput.New()
	m.fields[companyFieldAddress].Placeholder = "Street, city, country"
	m.fields[companyFieldAddress].CharLimit = 200
	m.fields[companyFieldAddress].Width = 50

	m.fields[companyFieldPhone] = textinput.New()
	m.fields[companyFieldPhone].Placeholder = "555-0100"
	m.fields[companyFieldPhone].CharLimit = 30
	m.fields[companyFieldPhone].Width = 20

	m.fields[companyFieldLogo] = textinput.New()
	m.fields[companyFieldLogo].Placeholder = "https://example.com/logo.png"
	m.fields[companyFieldLogo].CharLimit = 300
	m.fields[companyFieldLogo].Width = 50

	if m.profile != nil {
		m.fields[companyFieldName].SetValue(m.profile.BusinessName)
		m.fields[companyFieldAddress].SetValue(m.profile.Address)
		m.fields[companyFieldPhone].SetValue(m.profile.Phone)
		m.fields[companyFieldLogo].SetValue(m.profile.Logo)
	}

	m.fieldFocus = companyFieldName
	m.fields[companyFieldName].Focus()
}

func (m *SettingsModel) saveProfile() tea.Cmd {
	profile := &domain.CompanyProfile{
		BusinessName: m.fields[companyFieldName].Value(),
		Address:      m.fields[companyFieldAddress].Value(),
		Phone:        m.fields[companyFieldPhone].Value(),
		Logo:         m.fields[companyFieldLogo].Value(),
	}

	return func() tea.Msg {
		saved, err := m.app.CompanyRepo.Save(context.Background(), profile)
		return companySavedMsg{profile: saved, err: err}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadProfile()

	case companyDataMsg:
		if !m.fetches.current(msg.gen) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			if cmd := sessionExpired(msg.err); cmd != nil {
				return m, cmd
			}
			return m, nil
		}
		m.profile = msg.profile
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Select), key.Matches(msg, DefaultKeyMap.Edit):
			m.mode = settingsModeEdit
			m.initForm()
			return m, textinput.Blink
		case msg.String() == "o":
			// Log out; the root model clears the token and shows login
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case companySavedMsg:
		if msg.err != nil {
			if cmd := sessionExpired(msg.err); cmd != nil {
				return m, cmd
			}
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.err = nil
		m.profile = msg.profile
		m.statusMsg = "Company profile saved"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % companyFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + companyFieldCount) % companyFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == companyFieldCount-1 {
				return m, m.saveProfile()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveProfile()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.loading {
		return "Loading settings..."
	}

	if m.mode == settingsModeEdit {
		return m.viewForm()
	}

	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += subtitleStyle.Render("  Company Profile (shown on invoices)") + "\n"
	if m.profile == nil || m.profile.BusinessName == "" {
		s += "    Not set up yet. Press enter to add your company details.\n"
	} else {
		s += fmt.Sprintf("    Business:  %s\n", m.profile.BusinessName)
		if m.profile.Address != "" {
			s += fmt.Sprintf("    Address:   %s\n", m.profile.Address)
		}
		if m.profile.Phone != "" {
			s += fmt.Sprintf("    Phone:     %s\n", m.profile.Phone)
		}
		if m.profile.Logo != "" {
			s += fmt.Sprintf("    Logo:      %s\n", truncateStr(m.profile.Logo, 50))
		}
	}

	s += "\n" + subtitleStyle.Render("  Local Configuration") + "\n"
	s += fmt.Sprintf("    API:       %s\n", m.app.Config.API.BaseURL)
	s += fmt.Sprintf("    PDF dir:   %s\n", m.app.Config.Invoice.OutputDir)
	s += fmt.Sprintf("    Due days:  %d\n", m.app.Config.Invoice.DefaultDueDays)

	s += "\n" + helpStyle.Render("  enter: edit company profile  o: log out")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Company Profile") + "\n\n"

	labels := []string{"Business name:", "Address:", "Phone:", "Logo URL:"}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
