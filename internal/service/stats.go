package service

import "github.com/andy/invoicepro/internal/domain"

// DashboardStats summarizes the invoice collection for the stat cards
type DashboardStats struct {
	TotalInvoices   int
	PaidInvoices    int
	PendingInvoices int
	OverdueInvoices int
	TotalRevenue    float64 // sum of totals over paid invoices
}

// ComputeStats derives dashboard stats from an invoice list. Pure;
// callers reuse the same fetch that feeds the recent-invoices widget.
func ComputeStats(invoices []*domain.Invoice) DashboardStats {
	var stats DashboardStats
	stats.TotalInvoices = len(invoices)

	for _, inv := range invoices {
		switch inv.Status {
		case domain.StatusPaid:
			stats.PaidInvoices++
			stats.TotalRevenue += inv.Total
		case domain.StatusPending:
			stats.PendingInvoices++
		case domain.StatusOverdue:
			stats.OverdueInvoices++
		}
	}
	return stats
}

// RecentInvoices returns the first n invoices in server order
func RecentInvoices(invoices []*domain.Invoice, n int) []*domain.Invoice {
	if len(invoices) <= n {
		return invoices
	}
	return invoices[:n]
}
