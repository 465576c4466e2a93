package domain

import (
	"fmt"
	"strings"
	"time"
)

type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "Pending"
	StatusPaid    InvoiceStatus = "Paid"
	StatusOverdue InvoiceStatus = "Overdue"
)

// ParseStatus converts a wire string into a status, rejecting anything
// outside the closed set.
func ParseStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(s) {
	case StatusPending, StatusPaid, StatusOverdue:
		return InvoiceStatus(s), nil
	}
	return "", fmt.Errorf("unknown invoice status %q", s)
}

// Valid reports whether the status is one of the closed set
func (s InvoiceStatus) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// LineItem is one billable entry on an invoice. It has no lifecycle of
// its own; it lives and dies with its parent invoice.
type LineItem struct {
	Name     string
	Quantity int
	Price    float64
}

// IsBlank reports whether the item is an untouched form row. Blank
// rows are dropped from submissions without error.
func (li LineItem) IsBlank() bool {
	return strings.TrimSpace(li.Name) == "" && li.Quantity <= 0 && li.Price <= 0
}

// Validate returns an error if a non-blank item is unsubmittable
func (li LineItem) Validate() error {
	if strings.TrimSpace(li.Name) == "" {
		return invalid("items", "item name is required")
	}
	if li.Quantity <= 0 {
		return invalid("items", "item quantity must be positive")
	}
	if li.Price < 0 {
		return invalid("items", "item price cannot be negative")
	}
	return nil
}

// Amount returns the line total (quantity x unit price)
func (li LineItem) Amount() float64 {
	return float64(li.Quantity) * li.Price
}

// Invoice mirrors the backend's invoice record. InvoiceNumber is
// assigned server-side and never written by this program. Total is
// derived; Subtotal/Total are the source of truth for anything shown
// while editing, and the server re-derives on write.
type Invoice struct {
	ID            string
	InvoiceNumber string
	ClientID      string
	Client        *Client // populated on list/detail reads
	Items         []LineItem
	Tax           float64 // absolute currency amount
	Discount      float64 // absolute currency amount
	Total         float64
	Status        InvoiceStatus
	InvoiceDate   time.Time
	DueDate       time.Time
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClientName returns the resolved client name, or a placeholder when
// the reference is dangling (client deleted by another session).
func (i *Invoice) ClientName() string {
	if i.Client != nil && i.Client.Name != "" {
		return i.Client.Name
	}
	return "N/A"
}

// Subtotal sums quantity x price over all line items.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, li := range items {
		sum += li.Amount()
	}
	return sum
}

// Total computes subtotal + tax - discount. Tax and discount are
// absolute amounts. The result is not clamped: a discount larger than
// subtotal+tax yields a negative total, which callers reject at
// validation rather than hide here.
func Total(items []LineItem, tax, discount float64) float64 {
	return Subtotal(items) + tax - discount
}

// PrepareItems filters a draft's line items for submission: blank rows
// are dropped silently (an untouched form row is not an error), the
// survivors are validated, and ErrEmptyInvoice is returned when
// nothing submittable remains.
func PrepareItems(items []LineItem) ([]LineItem, error) {
	kept := make([]LineItem, 0, len(items))
	for _, li := range items {
		if li.IsBlank() {
			continue
		}
		if err := li.Validate(); err != nil {
			return nil, err
		}
		kept = append(kept, li)
	}
	if len(kept) == 0 {
		return nil, ErrEmptyInvoice
	}
	return kept, nil
}

// InvoiceDraft is user-entered invoice state pending validation and
// submission.
type InvoiceDraft struct {
	ClientID string
	Items    []LineItem
	Tax      float64
	Discount float64
	DueDate  time.Time
	Notes    string
}

// Validate checks a draft for creation
func (d *InvoiceDraft) Validate() error {
	if strings.TrimSpace(d.ClientID) == "" {
		return invalid("clientId", "a client must be selected")
	}
	return d.ValidateUpdate()
}

// ValidateUpdate checks the fields an edit can change. The client
// reference is immutable after creation and not checked here.
func (d *InvoiceDraft) ValidateUpdate() error {
	if d.DueDate.IsZero() {
		return invalid("dueDate", "a due date is required")
	}
	if d.Tax < 0 {
		return invalid("tax", "tax cannot be negative")
	}
	if d.Discount < 0 {
		return invalid("discount", "discount cannot be negative")
	}
	return nil
}

// PrepareItems filters the draft's line items and then rejects the
// draft if the discount pushes the total below zero. Total itself
// never clamps, so the guard lives here on the submission path.
func (d *InvoiceDraft) PrepareItems() ([]LineItem, error) {
	items, err := PrepareItems(d.Items)
	if err != nil {
		return nil, err
	}
	if Total(items, d.Tax, d.Discount) < 0 {
		return nil, invalid("discount", "discount exceeds subtotal plus tax")
	}
	return items, nil
}
