package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/invoicepro/internal/domain"
)

// mock implementation counting backend calls
type mockInvoiceRepo struct {
	listResult    []*domain.Invoice
	created       *domain.InvoiceDraft
	statusCalls   int
	statusID      string
	statusValue   domain.InvoiceStatus
	deleteCalls   int
	downloadErr   error
	downloadBytes []byte
}

func (m *mockInvoiceRepo) List(ctx context.Context) ([]*domain.Invoice, error) {
	return m.listResult, nil
}
func (m *mockInvoiceRepo) Create(ctx context.Context, draft *domain.InvoiceDraft) (*domain.Invoice, error) {
	m.created = draft
	return &domain.Invoice{ID: "new", InvoiceNumber: "INV-0001"}, nil
}
func (m *mockInvoiceRepo) Update(ctx context.Context, id string, draft *domain.InvoiceDraft) (*domain.Invoice, error) {
	return &domain.Invoice{ID: id}, nil
}
func (m *mockInvoiceRepo) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	m.statusCalls++
	m.statusID = id
	m.statusValue = status
	return &domain.Invoice{ID: id, Status: status}, nil
}
func (m *mockInvoiceRepo) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	return nil
}
func (m *mockInvoiceRepo) DownloadPDF(ctx context.Context, id string, w io.Writer) error {
	if m.downloadErr != nil {
		return m.downloadErr
	}
	_, err := w.Write(m.downloadBytes)
	return err
}

func TestRequestStatusChange(t *testing.T) {
	ctx := context.Background()
	repo := &mockInvoiceRepo{}
	svc := NewInvoiceService(repo, t.TempDir())

	inv := &domain.Invoice{ID: "inv1", Status: domain.StatusPending}

	updated, err := svc.RequestStatusChange(ctx, inv, domain.StatusPaid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusPaid {
		t.Fatalf("expected Paid, got %s", updated.Status)
	}
	if repo.statusCalls != 1 || repo.statusID != "inv1" {
		t.Fatalf("expected one backend call for inv1, got %d for %q", repo.statusCalls, repo.statusID)
	}
}

func TestRequestStatusChange_NoOp(t *testing.T) {
	ctx := context.Background()
	repo := &mockInvoiceRepo{}
	svc := NewInvoiceService(repo, t.TempDir())

	inv := &domain.Invoice{ID: "inv1", Status: domain.StatusPaid}

	_, err := svc.RequestStatusChange(ctx, inv, domain.StatusPaid)
	if !errors.Is(err, ErrNoOpTransition) {
		t.Fatalf("expected ErrNoOpTransition, got %v", err)
	}
	// The redundant write must never reach the backend
	if repo.statusCalls != 0 {
		t.Fatalf("expected no backend calls, got %d", repo.statusCalls)
	}
}

func TestRequestStatusChange_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	repo := &mockInvoiceRepo{}
	svc := NewInvoiceService(repo, t.TempDir())

	inv := &domain.Invoice{ID: "inv1", Status: domain.StatusPending}

	_, err := svc.RequestStatusChange(ctx, inv, domain.InvoiceStatus("Draft"))
	if err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if repo.statusCalls != 0 {
		t.Fatalf("expected no backend calls, got %d", repo.statusCalls)
	}
}

func TestExportPDF(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := &mockInvoiceRepo{downloadBytes: []byte("%PDF-1.4 fake")}
	svc := NewInvoiceService(repo, dir)

	inv := &domain.Invoice{ID: "inv1", InvoiceNumber: "INV-0042"}

	path, err := svc.ExportPDF(ctx, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "invoice-INV-0042.pdf" {
		t.Fatalf("unexpected file name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Fatalf("unexpected file contents: %q", data)
	}
}

func TestExportPDF_RemovesPartialFileOnFailure(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := &mockInvoiceRepo{downloadErr: errors.New("stream interrupted")}
	svc := NewInvoiceService(repo, dir)

	inv := &domain.Invoice{ID: "inv1", InvoiceNumber: "INV-0042"}

	if _, err := svc.ExportPDF(ctx, inv); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(filepath.Join(dir, "invoice-INV-0042.pdf")); !os.IsNotExist(err) {
		t.Fatalf("expected partial file to be removed, stat err: %v", err)
	}
}

func TestExportPDF_FallsBackToID(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := &mockInvoiceRepo{downloadBytes: []byte("x")}
	svc := NewInvoiceService(repo, dir)

	// Invoice without a number yet
	inv := &domain.Invoice{ID: "abc123"}

	path, err := svc.ExportPDF(ctx, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "invoice-abc123.pdf" {
		t.Fatalf("unexpected file name: %s", path)
	}
}

func TestCreateInvoicePassesDraftThrough(t *testing.T) {
	ctx := context.Background()
	repo := &mockInvoiceRepo{}
	svc := NewInvoiceService(repo, t.TempDir())

	draft := &domain.InvoiceDraft{
		ClientID: "c1",
		Items:    []domain.LineItem{{Name: "Design", Quantity: 1, Price: 100}},
		DueDate:  time.Now().AddDate(0, 0, 30),
	}

	if _, err := svc.CreateInvoice(ctx, draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created != draft {
		t.Fatalf("expected draft to reach the repository unchanged")
	}
}
