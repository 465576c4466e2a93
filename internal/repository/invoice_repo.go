package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/andy/invoicepro/internal/api"
	"github.com/andy/invoicepro/internal/domain"
)

// InvoiceRepo is a REST implementation of InvoiceRepository
type InvoiceRepo struct {
	api *api.Client
}

// NewInvoiceRepo creates a new InvoiceRepo
func NewInvoiceRepo(apiClient *api.Client) *InvoiceRepo {
	return &InvoiceRepo{api: apiClient}
}

// List retrieves all invoices in server order
func (r *InvoiceRepo) List(ctx context.Context) ([]*domain.Invoice, error) {
	var dtos []invoiceDTO
	if err := r.api.Get(ctx, "/invoices", &dtos); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*domain.Invoice, len(dtos))
	for i := range dtos {
		inv, err := dtos[i].toDomain()
		if err != nil {
			return nil, err
		}
		invoices[i] = inv
	}
	return invoices, nil
}

// Create validates the draft, drops blank line items, and submits.
// ValidationError and ErrEmptyInvoice are raised before any network
// traffic.
func (r *InvoiceRepo) Create(ctx context.Context, draft *domain.InvoiceDraft) (*domain.Invoice, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	items, err := draft.PrepareItems()
	if err != nil {
		return nil, err
	}

	var dto invoiceDTO
	payload := invoicePayloadFrom(draft, items, true)
	if err := r.api.Post(ctx, "/invoices", payload, &dto); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return dto.toDomain()
}

// Update submits edited items/tax/discount/due date/notes. The client
// reference and invoice number are immutable after creation.
func (r *InvoiceRepo) Update(ctx context.Context, id string, draft *domain.InvoiceDraft) (*domain.Invoice, error) {
	if err := draft.ValidateUpdate(); err != nil {
		return nil, err
	}
	items, err := draft.PrepareItems()
	if err != nil {
		return nil, err
	}

	var dto invoiceDTO
	payload := invoicePayloadFrom(draft, items, false)
	if err := r.api.Put(ctx, "/invoices/"+id, payload, &dto); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return dto.toDomain()
}

// UpdateStatus patches just the status field
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	var dto invoiceDTO
	body := map[string]string{"status": string(status)}
	if err := r.api.Patch(ctx, "/invoices/"+id+"/status", body, &dto); err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}
	return dto.toDomain()
}

// Delete removes an invoice
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, "/invoices/"+id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

// DownloadPDF streams the rendered invoice document into w
func (r *InvoiceRepo) DownloadPDF(ctx context.Context, id string, w io.Writer) error {
	if err := r.api.Download(ctx, "/invoices/"+id+"/pdf", w); err != nil {
		return fmt.Errorf("failed to download invoice pdf: %w", err)
	}
	return nil
}
