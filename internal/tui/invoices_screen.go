package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/invoicepro/internal/app"
	"github.com/andy/invoicepro/internal/domain"
	"github.com/andy/invoicepro/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type invoiceViewMode int

const (
	invoiceViewList          invoiceViewMode = iota
	invoiceViewDetail                        // Viewing a single invoice
	invoiceViewPickClient                    // New invoice step 1: pick client
	invoiceViewForm                          // Create or edit form
	invoiceViewStatus                        // Status picker overlay
	invoiceViewConfirmDelete                 // Delete confirmation
)

const dueDateLayout = "2006-01-02"

// inputs per line item row: name, quantity, price
const itemFieldCount = 3

// statusFilters is the cycle order for the 'f' key
var statusFilters = []string{
	service.StatusFilterAll,
	string(domain.StatusPaid),
	string(domain.StatusPending),
	string(domain.StatusOverdue),
}

// InvoicesModel displays invoices with search, status filter, and full
// create/edit forms. The list is fetched whole and filtered locally.
type InvoicesModel struct {
	app      *app.App
	mode     invoiceViewMode
	invoices []*domain.Invoice
	cursor   int
	selected *domain.Invoice

	// Filter state
	searchInput  textinput.Model
	searching    bool
	statusFilter int // index into statusFilters

	// Form state
	editingID   string // "" when creating
	pickClients []*domain.Client
	pickCursor  int
	formClient  *domain.Client
	itemInputs  [][]textinput.Model
	taxInput    textinput.Model
	discInput   textinput.Model
	dueInput    textinput.Model
	notesInput  textinput.Model
	formFocus   int

	// Status picker
	statusCursor int

	fetches   loader
	loading   bool
	err       error
	statusMsg string
}

type invoicesDataMsg struct {
	gen      int
	invoices []*domain.Invoice
	err      error
}

type pickClientsMsg struct {
	clients []*domain.Client
	err     error
}

type invoiceSavedMsg struct {
	invoice *domain.Invoice
	err     error
}

type statusChangedMsg struct {
	invoice *domain.Invoice
	err     error
}

type invoiceDeletedMsg struct {
	id  string
	err error
}

type pdfDoneMsg struct {
	path string
	err  error
}

// NewInvoicesModel creates a new invoices screen model
func NewInvoicesModel(a *app.App) tea.Model {
	m := &InvoicesModel{
		app:     a,
		mode:    invoiceViewList,
		loading: true,
	}
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "invoice number or client"
	m.searchInput.CharLimit = 100
	m.searchInput.Width = 36
	return m
}

// IsCapturingInput returns true while a text form or the search box is active
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.searching || m.mode == invoiceViewForm
}

func (m *InvoicesModel) Init() tea.Cmd {
	return m.loadInvoices()
}

func (m *InvoicesModel) loadInvoices() tea.Cmd {
	gen := m.fetches.next()
	return func() tea.Msg {
		invoices, err := m.app.InvoiceService.ListInvoices(context.Background())
		if err != nil {
			return invoicesDataMsg{gen: gen, err: err}
		}
		return invoicesDataMsg{gen: gen, invoices: invoices}
	}
}

func (m *InvoicesModel) loadPickClients() tea.Cmd {
	return func() tea.Msg {
		clients, err := m.app.ClientRepo.List(context.Background())
		return pickClientsMsg{clients: clients, err: err}
	}
}

// visible applies the active search and status filter
func (m *InvoicesModel) visible() []*domain.Invoice {
	return service.ApplyFilters(m.invoices, service.InvoiceFilters{
		Status: statusFilters[m.statusFilter],
		Search: m.searchInput.Value(),
	})
}

func (m *InvoicesModel) selectedInvoice() *domain.Invoice {
	vis := m.visible()
	if len(vis) == 0 || m.cursor >= len(vis) {
		return nil
	}
	return vis[m.cursor]
}

// clampCursor keeps the cursor inside the filtered list
func (m *InvoicesModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m *InvoicesModel) initForm(editing *domain.Invoice) {
	m.itemInputs = nil
	if editing != nil {
		m.editingID = editing.ID
		m.formClient = editing.Client
		for _, item := range editing.Items {
			row := m.newItemRow()
			row[0].SetValue(item.Name)
			row[1].SetValue(fmt.Sprintf("%d", item.Quantity))
			row[2].SetValue(fmt.Sprintf("%.2f", item.Price))
			m.itemInputs = append(m.itemInputs, row)
		}
	} else {
		m.editingID = ""
	}
	if len(m.itemInputs) == 0 {
		m.itemInputs = append(m.itemInputs, m.newItemRow())
	}

	m.taxInput = textinput.New()
	m.taxInput.Placeholder = "0.00"
	m.taxInput.CharLimit = 12
	m.taxInput.Width = 12

	m.discInput = textinput.New()
	m.discInput.Placeholder = "0.00"
	m.discInput.CharLimit = 12
	m.discInput.Width = 12

	m.dueInput = textinput.New()
	m.dueInput.Placeholder = dueDateLayout
	m.dueInput.CharLimit = 10
	m.dueInput.Width = 12

	m.notesInput = textinput.New()
	m.notesInput.Placeholder = "Optional notes"
	m.notesInput.CharLimit = 500
	m.notesInput.Width = 50

	if editing != nil {
		m.taxInput.SetValue(fmt.Sprintf("%.2f", editing.Tax))
		m.discInput.SetValue(fmt.Sprintf("%.2f", editing.Discount))
		m.dueInput.SetValue(editing.DueDate.Format(dueDateLayout))
		m.notesInput.SetValue(editing.Notes)
	} else {
		dueDays := m.app.Config.Invoice.DefaultDueDays
		if dueDays <= 0 {
			dueDays = 30
		}
		m.dueInput.SetValue(time.Now().AddDate(0, 0, dueDays).Format(dueDateLayout))
	}

	m.formFocus = 0
	m.focusField(0)
}

func (m *InvoicesModel) newItemRow() []textinput.Model {
	name := textinput.New()
	name.Placeholder = "Item description"
	name.CharLimit = 200
	name.Width = 30

	qty := textinput.New()
	qty.Placeholder = "1"
	qty.CharLimit = 6
	qty.Width = 6

	price := textinput.New()
	price.Placeholder = "0.00"
	price.CharLimit = 12
	price.Width = 10

	return []textinput.Model{name, qty, price}
}

// fieldCount is the number of focusable form fields: the item grid
// plus tax, discount, due date, and notes.
func (m *InvoicesModel) fieldCount() int {
	return len(m.itemInputs)*itemFieldCount + 4
}

// fieldAt maps a flattened focus index to its text input
func (m *InvoicesModel) fieldAt(i int) *textinput.Model {
	grid := len(m.itemInputs) * itemFieldCount
	if i < grid {
		return &m.itemInputs[i/itemFieldCount][i%itemFieldCount]
	}
	switch i - grid {
	case 0:
		return &m.taxInput
	case 1:
		return &m.discInput
	case 2:
		return &m.dueInput
	default:
		return &m.notesInput
	}
}

func (m *InvoicesModel) focusField(i int) tea.Cmd {
	m.fieldAt(m.formFocus).Blur()
	m.formFocus = i
	return m.fieldAt(i).Focus()
}

// formItems reads the item grid, coercing unparseable numbers to zero
func (m *InvoicesModel) formItems() []domain.LineItem {
	items := make([]domain.LineItem, 0, len(m.itemInputs))
	for _, row := range m.itemInputs {
		items = append(items, domain.LineItem{
			Name:     row[0].Value(),
			Quantity: parseQuantity(row[1].Value()),
			Price:    parseAmount(row[2].Value()),
		})
	}
	return items
}

func (m *InvoicesModel) saveInvoice() tea.Cmd {
	dueStr := m.dueInput.Value()
	draft := &domain.InvoiceDraft{
		Items:    m.formItems(),
		Tax:      parseAmount(m.taxInput.Value()),
		Discount: parseAmount(m.discInput.Value()),
		Notes:    m.notesInput.Value(),
	}
	if m.formClient != nil {
		draft.ClientID = m.formClient.ID
	}
	editingID := m.editingID

	return func() tea.Msg {
		due, err := time.Parse(dueDateLayout, dueStr)
		if err != nil {
			return invoiceSavedMsg{err: fmt.Errorf("due date must be %s", dueDateLayout)}
		}
		draft.DueDate = due

		ctx := context.Background()
		if editingID != "" {
			inv, err := m.app.InvoiceService.UpdateInvoice(ctx, editingID, draft)
			return invoiceSavedMsg{invoice: inv, err: err}
		}
		inv, err := m.app.InvoiceService.CreateInvoice(ctx, draft)
		return invoiceSavedMsg{invoice: inv, err: err}
	}
}

func (m *InvoicesModel) changeStatus(inv *domain.Invoice, status domain.InvoiceStatus) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.app.InvoiceService.RequestStatusChange(context.Background(), inv, status)
		return statusChangedMsg{invoice: updated, err: err}
	}
}

func (m *InvoicesModel) deleteInvoice(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.app.InvoiceService.DeleteInvoice(context.Background(), id)
		return invoiceDeletedMsg{id: id, err: err}
	}
}

func (m *InvoicesModel) downloadPDF(inv *domain.Invoice) tea.Cmd {
	return func() tea.Msg {
		path, err := m.app.InvoiceService.ExportPDF(context.Background(), inv)
		return pdfDoneMsg{path: path, err: err}
	}
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadInvoices()

	case invoicesDataMsg:
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
		m.invoices = msg.invoices
		m.clampCursor()
		return m, nil

	case pickClientsMsg:
		m.loading = false
		if msg.err != nil {
			if cmd := sessionExpired(msg.err); cmd != nil {
				return m, cmd
			}
			m.err = msg.err
			m.mode = invoiceViewList
			return m, nil
		}
		if len(msg.clients) == 0 {
			m.err = fmt.Errorf("no clients yet; add one on the clients screen")
			m.mode = invoiceViewList
			return m, nil
		}
		m.pickClients = msg.clients
		m.pickCursor = 0
		m.mode = invoiceViewPickClient
		return m, nil

	case invoiceSavedMsg:
		if msg.err != nil {
			if cmd := sessionExpired(msg.err); cmd != nil {
				return m, cmd
			}
			m.err = msg.err
			return m, nil
		}
		m.mode = invoiceViewList
		m.err = nil
		m.statusMsg = fmt.Sprintf("Saved invoice %s", msg.invoice.InvoiceNumber)
		m.loading = true
		return m, m.loadInvoices()

	case statusChangedMsg:
		if msg.err != nil {
			if cmd := sessionExpired(msg.err); cmd != nil {
				return m, cmd
			}
			m.err = msg.err
			m.mode = invoiceViewList
			return m, nil
		}
		// Patch the row in place instead of refetching the whole list
		for i, inv := range m.invoices {
			if inv.ID == msg.invoice.ID {
				m.invoices[i] = msg.invoice
			}
		}
		if m.selected != nil && m.selected.ID == msg.invoice.ID {
			m.selected = msg.invoice
		}
		if m.mode == invoiceViewStatus {
			m.mode = invoiceViewList
		}
		m.statusMsg = fmt.Sprintf("Invoice %s marked %s", msg.invoice.InvoiceNumber, msg.invoice.Status)
		return m, nil

	case invoiceDeletedMsg:
		m.mode = invoiceViewList
		if msg.err != nil {
			if cmd := sessionExpired(msg.err); cmd != nil {
				return m, cmd
			}
			m.err = msg.err
			return m, nil
		}
		// Remove locally only after the backend confirmed the delete
		for i, inv := range m.invoices {
			if inv.ID == msg.id {
				m.invoices = append(m.invoices[:i], m.invoices[i+1:]...)
				break
			}
		}
		m.clampCursor()
		m.statusMsg = "Invoice deleted"
		return m, nil

	case pdfDoneMsg:
		if msg.err != nil {
			if cmd := sessionExpired(msg.err); cmd != nil {
				return m, cmd
			}
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("PDF saved -> %s", msg.path)
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		if m.searching {
			return m.updateSearch(msg)
		}

		switch m.mode {
		case invoiceViewList:
			return m.updateList(msg)
		case invoiceViewDetail:
			return m.updateDetail(msg)
		case invoiceViewPickClient:
			return m.updatePickClient(msg)
		case invoiceViewForm:
			return m.updateForm(msg)
		case invoiceViewStatus:
			return m.updateStatusPicker(msg)
		case invoiceViewConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
	}

	// Forward non-key messages to the focused input (cursor blink, etc.)
	if m.mode == invoiceViewForm {
		var cmd tea.Cmd
		field := m.fieldAt(m.formFocus)
		*field, cmd = field.Update(msg)
		return m, cmd
	}
	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *InvoicesModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (m *InvoicesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.statusMsg = ""

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
	case key.Matches(msg, DefaultKeyMap.Filter):
		m.statusFilter = (m.statusFilter + 1) % len(statusFilters)
		m.clampCursor()
	case key.Matches(msg, DefaultKeyMap.New):
		m.loading = true
		return m, m.loadPickClients()
	case key.Matches(msg, DefaultKeyMap.Edit):
		if inv := m.selectedInvoice(); inv != nil {
			m.mode = invoiceViewForm
			m.initForm(inv)
			return m, textinput.Blink
		}
	case key.Matches(msg, DefaultKeyMap.Status):
		if m.selectedInvoice() != nil {
			m.mode = invoiceViewStatus
			m.statusCursor = 0
		}
	case key.Matches(msg, DefaultKeyMap.Delete):
		if m.selectedInvoice() != nil {
			m.mode = invoiceViewConfirmDelete
		}
	case key.Matches(msg, DefaultKeyMap.PDF):
		if inv := m.selectedInvoice(); inv != nil {
			return m, m.downloadPDF(inv)
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if inv := m.selectedInvoice(); inv != nil {
			m.selected = inv
			m.mode = invoiceViewDetail
		}
	}

	return m, nil
}

func (m *InvoicesModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.mode = invoiceViewList
		m.selected = nil
	case key.Matches(msg, DefaultKeyMap.PDF):
		if m.selected != nil {
			return m, m.downloadPDF(m.selected)
		}
	case key.Matches(msg, DefaultKeyMap.Edit):
		if m.selected != nil {
			m.mode = invoiceViewForm
			m.initForm(m.selected)
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m *InvoicesModel) updatePickClient(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.mode = invoiceViewList
		m.pickClients = nil
		return m, nil
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.pickCursor > 0 {
			m.pickCursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.pickCursor < len(m.pickClients)-1 {
			m.pickCursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if len(m.pickClients) > 0 {
			m.formClient = m.pickClients[m.pickCursor]
			m.mode = invoiceViewForm
			m.initForm(nil)
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m *InvoicesModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = invoiceViewList
		m.err = nil
		return m, nil

	case "tab", "down":
		return m, m.focusField((m.formFocus + 1) % m.fieldCount())

	case "shift+tab", "up":
		return m, m.focusField((m.formFocus - 1 + m.fieldCount()) % m.fieldCount())

	case "enter":
		if m.formFocus == m.fieldCount()-1 {
			return m, m.saveInvoice()
		}
		return m, m.focusField(m.formFocus + 1)

	case "ctrl+a":
		// Append an item row and focus its name field
		m.itemInputs = append(m.itemInputs, m.newItemRow())
		return m, m.focusField((len(m.itemInputs) - 1) * itemFieldCount)

	case "ctrl+d":
		// Remove the item row under focus, keeping at least one
		if row := m.formFocus / itemFieldCount; row < len(m.itemInputs) && len(m.itemInputs) > 1 {
			m.fieldAt(m.formFocus).Blur()
			m.itemInputs = append(m.itemInputs[:row], m.itemInputs[row+1:]...)
			focus := row * itemFieldCount
			if focus >= m.fieldCount() {
				focus = m.fieldCount() - 1
			}
			m.formFocus = focus
			return m, m.fieldAt(focus).Focus()
		}
		return m, nil

	case "ctrl+s":
		return m, m.saveInvoice()
	}

	// Update the focused text input
	var cmd tea.Cmd
	field := m.fieldAt(m.formFocus)
	*field, cmd = field.Update(msg)
	return m, cmd
}

func (m *InvoicesModel) updateStatusPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.mode = invoiceViewList
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.statusCursor > 0 {
			m.statusCursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.statusCursor < len(statusChoices)-1 {
			m.statusCursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if inv := m.selectedInvoice(); inv != nil {
			return m, m.changeStatus(inv, statusChoices[m.statusCursor])
		}
	}
	return m, nil
}

func (m *InvoicesModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if inv := m.selectedInvoice(); inv != nil {
			return m, m.deleteInvoice(inv.ID)
		}
		m.mode = invoiceViewList
	case "n", "esc":
		m.mode = invoiceViewList
	}
	return m, nil
}

func (m *InvoicesModel) View() string {
	if m.loading {
		return "Loading..."
	}

	switch m.mode {
	case invoiceViewDetail:
		return m.viewDetail()
	case invoiceViewPickClient:
		return m.viewPickClient()
	case invoiceViewForm:
		return m.viewForm()
	default:
		return m.viewList()
	}
}

func (m *InvoicesModel) viewList() string {
	var s string
	s += titleStyle.Render("Invoices") + "\n"

	// Filter bar
	filterLabel := statusFilters[m.statusFilter]
	s += subtitleStyle.Render(fmt.Sprintf("  Status: %s", filterLabel))
	if m.searching {
		s += "   Search: " + m.searchInput.View()
	} else if m.searchInput.Value() != "" {
		s += subtitleStyle.Render(fmt.Sprintf("   Search: %q", m.searchInput.Value()))
	}
	s += "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	vis := m.visible()
	if len(vis) == 0 && m.err == nil {
		if len(m.invoices) == 0 {
			s += subtitleStyle.Render("  No invoices yet. Press 'n' to create one.")
		} else {
			s += subtitleStyle.Render("  No invoices match the current filters.")
		}
		s += "\n\n" + helpStyle.Render("  n: new  /: search  f: filter status")
		return s
	}

	// Header
	s += subtitleStyle.Render(fmt.Sprintf(
		"  %-14s  %-20s  %-12s  %10s  %s",
		"Number", "Client", "Due", "Total", "Status",
	)) + "\n"

	for i, inv := range vis {
		line := fmt.Sprintf("  %-14s  %-20s  %-12s  %10s  %s",
			inv.InvoiceNumber,
			truncateStr(inv.ClientName(), 20),
			formatDate(inv.DueDate),
			formatMoney(inv.Total),
			statusBadge(inv.Status),
		)

		if i == m.cursor && !m.searching {
			s += selectedStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	switch m.mode {
	case invoiceViewStatus:
		s += "\n" + m.viewStatusPicker()
	case invoiceViewConfirmDelete:
		if inv := m.selectedInvoice(); inv != nil {
			s += "\n" + lipgloss.NewStyle().Foreground(warningColor).
				Render(fmt.Sprintf("  Delete invoice %s? This cannot be undone. (y/n)", inv.InvoiceNumber)) + "\n"
		}
	default:
		s += "\n" + helpStyle.Render("  j/k: navigate  enter: view  n: new  e: edit  s: status  p: pdf  x: delete  /: search  f: filter")
	}

	return s
}

func (m *InvoicesModel) viewStatusPicker() string {
	inv := m.selectedInvoice()
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

func (m *InvoicesModel) viewDetail() string {
	inv := m.selected
	if inv == nil {
		return "No invoice selected"
	}

	var s string

	s += titleStyle.Render(fmt.Sprintf("Invoice %s", inv.InvoiceNumber)) + "\n\n"
	s += fmt.Sprintf("  Client:   %s\n", inv.ClientName())
	s += fmt.Sprintf("  Date:     %s\n", formatDate(inv.InvoiceDate))
	s += fmt.Sprintf("  Due:      %s\n", formatDate(inv.DueDate))
	s += fmt.Sprintf("  Status:   %s\n", statusBadge(inv.Status))
	if inv.Notes != "" {
		s += fmt.Sprintf("  Notes:    %s\n", truncateStr(inv.Notes, 60))
	}
	s += "\n"

	// Line items
	if len(inv.Items) == 0 {
		s += subtitleStyle.Render("  No line items") + "\n"
	} else {
		s += subtitleStyle.Render(fmt.Sprintf(
			"  %-35s  %6s  %10s  %10s",
			"Item", "Qty", "Price", "Amount",
		)) + "\n"

		for _, item := range inv.Items {
			s += fmt.Sprintf("  %-35s  %6d  %10s  %10s\n",
				truncateStr(item.Name, 35),
				item.Quantity,
				formatMoney(item.Price),
				formatMoney(item.Amount()),
			)
		}
	}

	s += "\n"
	s += fmt.Sprintf("  Subtotal:  %10s\n", formatMoney(domain.Subtotal(inv.Items)))
	s += fmt.Sprintf("  Tax:       %10s\n", formatMoney(inv.Tax))
	s += fmt.Sprintf("  Discount:  %10s\n", formatMoney(-inv.Discount))
	s += totalValueStyle.Render(
		fmt.Sprintf("  Total:     %10s", formatMoney(inv.Total)),
	) + "\n"

	if m.statusMsg != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(successColor).Render("  "+m.statusMsg) + "\n"
	}
	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  e: edit  p: download pdf  esc: back to list")

	return s
}

func (m *InvoicesModel) viewPickClient() string {
	var s string
	s += titleStyle.Render("New Invoice - Select Client") + "\n\n"

	for i, client := range m.pickClients {
		indicator := "  "
		if i == m.pickCursor {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%-25s  %s", indicator, truncateStr(client.Name, 25), subtitleStyle.Render(client.Email))

		if i == m.pickCursor {
			s += lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: select  esc: cancel")

	return s
}

func (m *InvoicesModel) viewForm() string {
	var s string

	if m.editingID == "" {
		s += titleStyle.Render("New Invoice") + "\n"
	} else {
		s += titleStyle.Render("Edit Invoice") + "\n"
	}
	if m.formClient != nil {
		s += subtitleStyle.Render(fmt.Sprintf("  Client: %s", m.formClient.Name)) + "\n"
	}
	s += "\n"

	// Item grid
	s += subtitleStyle.Render(fmt.Sprintf("  %-32s  %-8s  %-12s", "Item", "Qty", "Price")) + "\n"
	for i, row := range m.itemInputs {
		rowStart := i * itemFieldCount
		indicator := "  "
		if m.formFocus >= rowStart && m.formFocus < rowStart+itemFieldCount {
			indicator = "> "
		}
		s += fmt.Sprintf("%s%s  %s  %s\n", indicator, row[0].View(), row[1].View(), row[2].View())
	}
	s += "\n"

	// Scalar fields
	grid := len(m.itemInputs) * itemFieldCount
	labels := []string{"Tax ($):", "Discount ($):", "Due date:", "Notes:"}
	views := []string{m.taxInput.View(), m.discInput.View(), m.dueInput.View(), m.notesInput.View()}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if m.formFocus == grid+i {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%-14s %s\n", indicator, labelStyle.Render(label), views[i])
	}

	// Live total from whatever is currently typed
	total := domain.Total(m.formItems(), parseAmount(m.taxInput.Value()), parseAmount(m.discInput.Value()))
	s += "\n  " + totalValueStyle.Render(fmt.Sprintf("Total: %s", formatMoney(total))) + "\n"

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  tab: next field  ctrl+a: add item  ctrl+d: remove item  ctrl+s: save  esc: cancel")

	return s
}
