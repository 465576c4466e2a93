package tui

import (
	"context"
	"fmt"

	"github.com/andy/invoicepro/internal/app"
	"github.com/andy/invoicepro/internal/domain"
	"github.com/andy/invoicepro/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const recentLimit = 5

type dashboardMode int

const (
	dashboardModeView dashboardMode = iota
	dashboardModeStatus
	dashboardModeConfirmDelete
)

// DashboardModel shows summary stats and the most recent invoices.
// Stats are computed locally from the invoice list, not fetched.
type DashboardModel struct {
	app *app.App

	stats  service.DashboardStats
	recent []*domain.Invoice
	cursor int

	mode         dashboardMode
	statusCursor int

	fetches   loader
	loading   bool
	err       error
	statusMsg string
}

type dashboardDataMsg struct {
	gen      int
	invoices []*domain.Invoice
	err      error
}

type dashboardStatusMsg struct {
	invoice *domain.Invoice
	err     error
}

type dashboardDeletedMsg struct {
	id  string
	err error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:     a,
		loading: true,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	gen := m.fetches.next()
	return func() tea.Msg {
		invoices, err := m.app.InvoiceService.ListInvoices(context.Background())
		if err != nil {
			return dashboardDataMsg{gen: gen, err: err}
		}
		return dashboardDataMsg{gen: gen, invoices: invoices}
	}
}

func (m *DashboardModel) changeStatus(inv *domain.Invoice, status domain.InvoiceStatus) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.app.InvoiceService.RequestStatusChange(context.Background(), inv, status)
		return dashboardStatusMsg{invoice: updated, err: err}
	}
}

func (m *DashboardModel) deleteInvoice(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.app.InvoiceService.DeleteInvoice(context.Background(), id)
		return dashboardDeletedMsg{id: id, err: err}
	}
}

func (m *DashboardModel) selected() *domain.Invoice {
	if len(m.recent) == 0 || m.cursor >= len(m.recent) {
		return nil
	}
	return m.recent[m.cursor]
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()

	case dashboardDataMsg:
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
		m.stats = service.ComputeStats(msg.invoices)
		m.recent = service.RecentInvoices(msg.invoices, recentLimit)
		if m.cursor >= len(m.recent) {
			m.cursor = max(0, len(m.recent)-1)
		}
		return m, nil

	case dashboardStatusMsg:
		if msg.err != nil {
			if cmd := sessionExpired(msg.err); cmd != nil {
				return m, cmd
			}
			m.err = msg.err
			m.mode = dashboardModeView
			return m, nil
		}
		// Patch the row in place; counts need the full list again
		for i, inv := range m.recent {
			if inv.ID == msg.invoice.ID {
				m.recent[i] = msg.invoice
			}
		}
		m.mode = dashboardModeView
		m.statusMsg = fmt.Sprintf("Invoice %s marked %s", msg.invoice.InvoiceNumber, msg.invoice.Status)
		m.loading = true
		return m, m.loadData()

	case dashboardDeletedMsg:
		m.mode = dashboardModeView
		if msg.err != nil {
			if cmd := sessionExpired(msg.err); cmd != nil {
				return m, cmd
			}
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = "Invoice deleted"
		m.loading = true
		return m, m.loadData()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch m.mode {
		case dashboardModeStatus:
			return m.updateStatusPicker(msg)
		case dashboardModeConfirmDelete:
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
			if m.cursor < len(m.recent)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Status):
			if m.selected() != nil {
				m.mode = dashboardModeStatus
				m.statusCursor = 0
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if m.selected() != nil {
				m.mode = dashboardModeConfirmDelete
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			// Full list lives on the invoices screen
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenInvoices} }
		}
	}

	return m, nil
}

// statusChoices is the order statuses appear in pickers
var statusChoices = []domain.InvoiceStatus{
	domain.StatusPaid,
	domain.StatusPending,
	domain.StatusOverdue,
}

func (m *DashboardModel) updateStatusPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.mode = dashboardModeView
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.statusCursor > 0 {
			m.statusCursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.statusCursor < len(statusChoices)-1 {
			m.statusCursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if inv := m.selected(); inv != nil {
			return m, m.changeStatus(inv, statusChoices[m.statusCursor])
		}
	}
	return m, nil
}

func (m *DashboardModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if inv := m.selected(); inv != nil {
			return m, m.deleteInvoice(inv.ID)
		}
		m.mode = dashboardModeView
	case "n", "esc":
		m.mode = dashboardModeView
	}
	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil && len(m.recent) == 0 {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	s += m.renderStatCards() + "\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n"
	}
	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + m.renderRecent()

	switch m.mode {
	case dashboardModeStatus:
		s += "\n" + m.renderStatusPicker()
	case dashboardModeConfirmDelete:
		if inv := m.selected(); inv != nil {
			s += "\n" + lipgloss.NewStyle().Foreground(warningColor).
				Render(fmt.Sprintf("  Delete invoice %s? (y/n)", inv.InvoiceNumber)) + "\n"
		}
	default:
		s += "\n" + helpStyle.Render("  j/k: navigate  s: change status  x: delete  enter: all invoices")
	}

	return s
}

func (m *DashboardModel) renderStatCards() string {
	revenue := cardStyle.Render(fmt.Sprintf("Revenue\n%s", totalValueStyle.Render(formatMoney(m.stats.TotalRevenue))))
	total := cardStyle.Render(fmt.Sprintf("Invoices\n%d", m.stats.TotalInvoices))
	paid := cardStyle.Render(fmt.Sprintf("Paid\n%d", m.stats.PaidInvoices))
	pending := cardStyle.Render(fmt.Sprintf("Pending\n%d", m.stats.PendingInvoices))
	overdue := cardStyle.Render(fmt.Sprintf("Overdue\n%d", m.stats.OverdueInvoices))

	return lipgloss.JoinHorizontal(lipgloss.Top, revenue, " ", total, " ", paid, " ", pending, " ", overdue)
}

func (m *DashboardModel) renderRecent() string {
	s := subtitleStyle.Render("  Recent Invoices") + "\n"

	if len(m.recent) == 0 {
		return s + subtitleStyle.Render("  No invoices yet") + "\n"
	}

	s += subtitleStyle.Render(fmt.Sprintf(
		"  %-14s  %-20s  %-12s  %10s  %s",
		"Number", "Client", "Due", "Total", "Status",
	)) + "\n"

	for i, inv := range m.recent {
		line := fmt.Sprintf("  %-14s  %-20s  %-12s  %10s  %s",
			inv.InvoiceNumber,
			truncateStr(inv.ClientName(), 20),
			formatDate(inv.DueDate),
			formatMoney(inv.Total),
			statusBadge(inv.Status),
		)
		if i == m.cursor {
			s += selectedStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	return s
}

func (m *DashboardModel) renderStatusPicker() string {
	inv := m.selected()
	if inv == nil {
		return ""
	}

	s := lipgloss.NewStyle().Bold(true).Foreground(primaryColor).
		Render(fmt.Sprintf("  Set status for %s:", inv.InvoiceNumber)) + "\n"

	for i, status := range statusChoices {
		indicator := "  "
		if i == m.statusCursor {
			indicator = "> "
		}
		line := fmt.Sprintf("  %s%s", indicator, statusBadge(status))
		if status == inv.Status {
			line += subtitleStyle.Render("  (current)")
		}
		s += line + "\n"
	}

	s += helpStyle.Render("  j/k: navigate  enter: apply  esc: cancel")
	return s
}
