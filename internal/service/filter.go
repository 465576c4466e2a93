package service

import (
	"strings"

	"github.com/andy/invoicepro/internal/domain"
)

// StatusFilterAll is the pass-through status filter
const StatusFilterAll = "All"

// InvoiceFilters combines the status filter and the search box. Both
// predicates apply conjunctively; zero values pass everything through.
type InvoiceFilters struct {
	Status string // StatusFilterAll or a concrete status value
	Search string // matched against invoice number and client name
}

// ApplyFilters returns the invoices matching the filters, preserving
// the original order. The result is never nil.
func ApplyFilters(invoices []*domain.Invoice, f InvoiceFilters) []*domain.Invoice {
	filtered := make([]*domain.Invoice, 0, len(invoices))
	term := strings.ToLower(strings.TrimSpace(f.Search))

	for _, inv := range invoices {
		if f.Status != "" && f.Status != StatusFilterAll && string(inv.Status) != f.Status {
			continue
		}
		if term != "" && !invoiceMatches(inv, term) {
			continue
		}
		filtered = append(filtered, inv)
	}
	return filtered
}

func invoiceMatches(inv *domain.Invoice, term string) bool {
	if strings.Contains(strings.ToLower(inv.InvoiceNumber), term) {
		return true
	}
	if inv.Client != nil && strings.Contains(strings.ToLower(inv.Client.Name), term) {
		return true
	}
	return false
}

// ApplyClientFilter returns the clients whose name or email contains
// the term, case-insensitively, preserving order. Never nil.
func ApplyClientFilter(clients []*domain.Client, term string) []*domain.Client {
	filtered := make([]*domain.Client, 0, len(clients))
	needle := strings.ToLower(strings.TrimSpace(term))

	for _, c := range clients {
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Email), needle) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}
