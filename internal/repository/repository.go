package repository

import (
	"context"
	"io"

	"github.com/andy/invoicepro/internal/domain"
)

// ClientRepository manages clients through the backend API
type ClientRepository interface {
	List(ctx context.Context) ([]*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, id string, client *domain.Client) (*domain.Client, error)
	// Delete requires prior user confirmation; callers remove the
	// client from local collections only after this returns nil.
	Delete(ctx context.Context, id string) error
}

// InvoiceRepository manages invoices through the backend API
type InvoiceRepository interface {
	List(ctx context.Context) ([]*domain.Invoice, error)
	Create(ctx context.Context, draft *domain.InvoiceDraft) (*domain.Invoice, error)
	Update(ctx context.Context, id string, draft *domain.InvoiceDraft) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error)
	Delete(ctx context.Context, id string) error
	// DownloadPDF streams the rendered invoice document into w.
	// Rendering happens server-side; the bytes are opaque here.
	DownloadPDF(ctx context.Context, id string, w io.Writer) error
}

// CompanyRepository manages the singleton company profile
type CompanyRepository interface {
	Get(ctx context.Context) (*domain.CompanyProfile, error)
	// Save upserts: the profile is created implicitly on first save
	Save(ctx context.Context, profile *domain.CompanyProfile) (*domain.CompanyProfile, error)
}
