package tui

import (
	"context"
	"fmt"

	"github.com/andy/invoicepro/internal/app"
	"github.com/andy/invoicepro/internal/domain"
	"github.com/andy/invoicepro/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeNew
	clientModeEdit
	clientModeConfirmDelete
)

// form field indices
const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldAddress
	fieldCount
)

// ClientsModel displays a searchable list of clients with create/edit forms
type ClientsModel struct {
	app     *app.App
	clients []*domain.Client
	cursor  int

	searchInput textinput.Model
	searching   bool

	// Form state
	mode       clientMode
	fields     []textinput.Model
	fieldFocus int
	editingID  string // "" for new client

	fetches   loader
	loading   bool
	err       error
	statusMsg string
}

type clientsDataMsg struct {
	gen     int
	clients []*domain.Client
	err     error
}

type clientSavedMsg struct {
	name string
	err  error
}

type clientDeletedMsg struct {
	id  string
	err error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	m := &ClientsModel{
		app:     a,
		loading: true,
	}
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "name or email"
	m.searchInput.CharLimit = 100
	m.searchInput.Width = 30
	return m
}

// IsCapturingInput returns true when the form or search box is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.searching || m.mode == clientModeNew || m.mode == clientModeEdit
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	gen := m.fetches.next()
	return func() tea.Msg {
		clients, err := m.app.ClientRepo.List(context.Background())
		if err != nil {
			return clientsDataMsg{gen: gen, err: err}
		}
		return clientsDataMsg{gen: gen, clients: clients}
	}
}

// visible applies the active search term
func (m *ClientsModel) visible() []*domain.Client {
	return service.ApplyClientFilter(m.clients, m.searchInput.Value())
}

func (m *ClientsModel) selected() *domain.Client {
	vis := m.visible()
	if len(vis) == 0 || m.cursor >= len(vis) {
		return nil
	}
	return vis[m.cursor]
}

func (m *ClientsModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m *ClientsModel) initForm(editing *domain.Client) {
	m.fields = make([]textinput.Model, fieldCount)

	// Name field
	m.fields[fieldName] = textinput.New()
	m.fields[fieldName].Placeholder = "Client name"
	m.fields[fieldName].CharLimit = 100
	m.fields[fieldName].Width = 40

	// Email field
	m.fields[fieldEmail] = textinput.New()
	m.fields[fieldEmail].Placeholder = "email@example.com"
	m.fields[fieldEmail].CharLimit = 100
	m.fields[fieldEmail].Width = 40

	// Phone field
	m.fields[fieldPhone] = textinput.New()
	m.fields[fieldPhone].Placeholder = "555-0100"
	m.fields[fieldPhone].CharLimit = 30
	m.fields[fieldPhone].Width = 20

	// Address field
	m.fields[fieldAddress] = textinput.New()
	m.fields[fieldAddress].Placeholder = "Street, city, country"
	m.fields[fieldAddress].CharLimit = 200
	m.fields[fieldAddress].Width = 50

	// Pre-fill for editing
	if editing != nil {
		m.fields[fieldName].SetValue(editing.Name)
		m.fields[fieldEmail].SetValue(editing.Email)
		m.fields[fieldPhone].SetValue(editing.Phone)
		m.fields[fieldAddress].SetValue(editing.Address)
		m.editingID = editing.ID
	} else {
		m.editingID = ""
	}

	m.fieldFocus = fieldName
	m.fields[fieldName].Focus()
}

func (m *ClientsModel) saveClient() tea.Cmd {
	client := domain.NewClient(m.fields[fieldName].Value(), m.fields[fieldEmail].Value())
	client.Phone = m.fields[fieldPhone].Value()
	client.Address = m.fields[fieldAddress].Value()
	editingID := m.editingID

	return func() tea.Msg {
		ctx := context.Background()

		if editingID != "" {
			saved, err := m.app.ClientRepo.Update(ctx, editingID, client)
			if err != nil {
				return clientSavedMsg{err: err}
			}
			return clientSavedMsg{name: saved.Name}
		}

		saved, err := m.app.ClientRepo.Create(ctx, client)
		if err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: saved.Name}
	}
}

func (m *ClientsModel) deleteClient(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.app.ClientRepo.Delete(context.Background(), id)
		return clientDeletedMsg{id: id, err: err}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle form mode
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadClients()

	case clientsDataMsg:
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
		m.clients = msg.clients
		m.clampCursor()
		return m, nil

	case clientDeletedMsg:
		m.mode = clientModeList
		if msg.err != nil {
			if cmd := sessionExpired(msg.err); cmd != nil {
				return m, cmd
			}
			m.err = msg.err
			return m, nil
		}
		// Remove locally only after the backend confirmed the delete
		for i, c := range m.clients {
			if c.ID == msg.id {
				m.clients = append(m.clients[:i], m.clients[i+1:]...)
				break
			}
		}
		m.clampCursor()
		m.statusMsg = "Client deleted"
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		if m.searching {
			return m.updateSearch(msg)
		}

		if m.mode == clientModeConfirmDelete {
			return m.updateConfirmDelete(msg)
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Search):
			m.searching = true
			return m, m.searchInput.Focus()
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = clientModeNew
			m.initForm(nil)
			return m, textinput.Blink
		case key.Matches(msg, DefaultKeyMap.Select):
			// Enter key opens edit form for selected client
			if c := m.selected(); c != nil {
				m.mode = clientModeEdit
				m.initForm(c)
				return m, textinput.Blink
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if m.selected() != nil {
				m.mode = clientModeConfirmDelete
			}
		}
	}

	return m, nil
}

func (m *ClientsModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.clampCursor()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.clampCursor()
	return m, cmd
}

func (m *ClientsModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if c := m.selected(); c != nil {
			return m, m.deleteClient(c.ID)
		}
		m.mode = clientModeList
	case "n", "esc":
		m.mode = clientModeList
	}
	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		if msg.err != nil {
			if cmd := sessionExpired(msg.err); cmd != nil {
				return m, cmd
			}
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.err = nil
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel form
			m.mode = clientModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			// Next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			// Previous field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + fieldCount) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			// If on last field, save; otherwise advance
			if m.fieldFocus == fieldCount-1 {
				return m, m.saveClient()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			// Save from any field
			return m, m.saveClient()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s string

	if m.mode == clientModeNew {
		s += titleStyle.Render("New Client") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Client") + "\n\n"
	}

	labels := []string{"Name:", "Email:", "Phone:", "Address:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
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

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	var s string

	// Header
	s += titleStyle.Render("Clients")
	if m.searching {
		s += "   Search: " + m.searchInput.View()
	} else if m.searchInput.Value() != "" {
		s += subtitleStyle.Render(fmt.Sprintf("   Search: %q", m.searchInput.Value()))
	}
	s += "\n\n"

	// Status message
	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	vis := m.visible()
	if len(vis) == 0 {
		if len(m.clients) == 0 {
			s += subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n"
		} else {
			s += subtitleStyle.Render("  No clients match the search.") + "\n"
		}
		return s
	}

	for i, client := range vis {
		s += m.renderClient(i, client) + "\n"
	}

	if m.mode == clientModeConfirmDelete {
		if c := m.selected(); c != nil {
			s += "\n" + lipgloss.NewStyle().Foreground(warningColor).
				Render(fmt.Sprintf("  Delete %s? Their invoices keep a dangling reference. (y/n)", c.Name)) + "\n"
		}
	} else {
		s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  x: delete  /: search")
	}

	return s
}

func (m *ClientsModel) renderClient(index int, client *domain.Client) string {
	selected := index == m.cursor && !m.searching

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line1 := fmt.Sprintf("%s%s", indicator, client.Name)

	contact := client.Email
	if client.Phone != "" {
		contact += "  |  " + client.Phone
	}
	line2 := fmt.Sprintf("    %s", contact)

	var line3 string
	if client.Address != "" {
		line3 = fmt.Sprintf("    %s", truncateStr(client.Address, 60))
	}

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	result := nameStyle.Render(line1) + "\n" + subtitleStyle.Render(line2)
	if line3 != "" {
		result += "\n" + subtitleStyle.Render(line3)
	}

	return result
}
