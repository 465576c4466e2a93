package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andy/invoicepro/internal/domain"
	"github.com/andy/invoicepro/internal/repository"
)

var (
	// ErrNoOpTransition means the requested status equals the current
	// one. Rejected before any network call to avoid redundant writes.
	ErrNoOpTransition = errors.New("invoice already has that status")
)

// InvoiceService manages the invoice lifecycle on top of the backend
type InvoiceService interface {
	// ListInvoices retrieves all invoices in server order
	ListInvoices(ctx context.Context) ([]*domain.Invoice, error)

	// CreateInvoice submits a validated draft; blank line items are
	// dropped and an all-blank draft fails with ErrEmptyInvoice
	CreateInvoice(ctx context.Context, draft *domain.InvoiceDraft) (*domain.Invoice, error)

	// UpdateInvoice submits edits to an existing invoice
	UpdateInvoice(ctx context.Context, id string, draft *domain.InvoiceDraft) (*domain.Invoice, error)

	// RequestStatusChange moves an invoice to a new status. Any status
	// may move to any other; requesting the current status fails with
	// ErrNoOpTransition without touching the network.
	RequestStatusChange(ctx context.Context, invoice *domain.Invoice, newStatus domain.InvoiceStatus) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice. Callers confirm with the user
	// first and drop the row from local state only on success.
	DeleteInvoice(ctx context.Context, id string) error

	// ExportPDF downloads the rendered document into the output
	// directory and returns the saved file path
	ExportPDF(ctx context.Context, invoice *domain.Invoice) (string, error)
}

type invoiceService struct {
	invoices  repository.InvoiceRepository
	outputDir string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoices repository.InvoiceRepository, outputDir string) InvoiceService {
	return &invoiceService{
		invoices:  invoices,
		outputDir: outputDir,
	}
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]*domain.Invoice, error) {
	return s.invoices.List(ctx)
}

func (s *invoiceService) CreateInvoice(ctx context.Context, draft *domain.InvoiceDraft) (*domain.Invoice, error) {
	return s.invoices.Create(ctx, draft)
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, draft *domain.InvoiceDraft) (*domain.Invoice, error) {
	return s.invoices.Update(ctx, id, draft)
}

func (s *invoiceService) RequestStatusChange(ctx context.Context, invoice *domain.Invoice, newStatus domain.InvoiceStatus) (*domain.Invoice, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("invalid status %q", newStatus)
	}
	if newStatus == invoice.Status {
		return nil, ErrNoOpTransition
	}

	return s.invoices.UpdateStatus(ctx, invoice.ID, newStatus)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	return s.invoices.Delete(ctx, id)
}

func (s *invoiceService) ExportPDF(ctx context.Context, invoice *domain.Invoice) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := invoice.InvoiceNumber
	if name == "" {
		name = invoice.ID
	}
	filePath := filepath.Join(s.outputDir, fmt.Sprintf("invoice-%s.pdf", name))

	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("create pdf file: %w", err)
	}
	defer f.Close()

	if err := s.invoices.DownloadPDF(ctx, invoice.ID, f); err != nil {
		// Don't leave a partial file behind
		os.Remove(filePath)
		return "", err
	}

	return filePath, nil
}
