package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andy/invoicepro/internal/api"
	"github.com/andy/invoicepro/internal/crypto"
	"github.com/andy/invoicepro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, api.NewTokenStore(crypto.NewKeyring()))
}

func validDraft() *domain.InvoiceDraft {
	return &domain.InvoiceDraft{
		ClientID: "c1",
		Items: []domain.LineItem{
			{Name: "Design", Quantity: 2, Price: 10},
			{}, // blank form row
		},
		Tax:      3,
		Discount: 2,
		DueDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Notes:    "net 30",
	}
}

const invoiceJSON = `{
	"_id": "inv1",
	"invoiceNumber": "INV-0001",
	"clientId": {"_id": "c1", "name": "ACME Corp", "email": "billing@acme.test"},
	"items": [{"name": "Design", "quantity": 2, "price": 10}],
	"tax": 3,
	"discount": 2,
	"total": 21,
	"status": "Pending",
	"dueDate": "2026-10-01T00:00:00Z"
}`

func TestInvoiceList(t *testing.T) {
	repo := NewInvoiceRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/invoices", r.URL.Path)
		w.Write([]byte(`{"data": [` + invoiceJSON + `]}`))
	})))

	invoices, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	assert.Equal(t, "inv1", inv.ID)
	assert.Equal(t, "INV-0001", inv.InvoiceNumber)
	assert.Equal(t, domain.StatusPending, inv.Status)
	assert.Equal(t, 21.0, inv.Total)
	// Expanded client reference resolves both id and object
	assert.Equal(t, "c1", inv.ClientID)
	require.NotNil(t, inv.Client)
	assert.Equal(t, "ACME Corp", inv.Client.Name)
	assert.Equal(t, "ACME Corp", inv.ClientName())
}

func TestInvoiceList_DeletedClient(t *testing.T) {
	repo := NewInvoiceRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{
			"_id": "inv2", "invoiceNumber": "INV-0002", "clientId": null,
			"items": [], "status": "Paid"
		}]}`))
	})))

	invoices, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Nil(t, invoices[0].Client)
	assert.Equal(t, "N/A", invoices[0].ClientName())
}

func TestInvoiceList_UnknownStatus(t *testing.T) {
	repo := NewInvoiceRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"_id": "x", "invoiceNumber": "INV-9", "clientId": "c1", "status": "Draft"}]}`))
	})))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Draft")
}

func TestInvoiceCreate(t *testing.T) {
	var gotBody map[string]any
	repo := NewInvoiceRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invoices", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": ` + invoiceJSON + `}`))
	})))

	inv, err := repo.Create(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", inv.InvoiceNumber)

	// The blank row is dropped before submission
	items := gotBody["items"].([]any)
	assert.Len(t, items, 1)
	assert.Equal(t, "c1", gotBody["clientId"])
	assert.Equal(t, "2026-10-01", gotBody["dueDate"])
	// Totals are backend-derived, never submitted
	_, hasTotal := gotBody["total"]
	assert.False(t, hasTotal)
}

func TestInvoiceCreate_ValidationBeforeNetwork(t *testing.T) {
	calls := 0
	repo := NewInvoiceRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})))

	// Missing client
	draft := validDraft()
	draft.ClientID = ""
	_, err := repo.Create(context.Background(), draft)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	// All line items blank
	draft = validDraft()
	draft.Items = []domain.LineItem{{}, {}}
	_, err = repo.Create(context.Background(), draft)
	assert.True(t, errors.Is(err, domain.ErrEmptyInvoice))

	assert.Zero(t, calls, "invalid drafts must not reach the backend")
}

func TestInvoiceCreate_RejectsNegativeTotal(t *testing.T) {
	calls := 0
	repo := NewInvoiceRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})))

	// Subtotal 20 + tax 3, discount far past it
	draft := validDraft()
	draft.Discount = 100
	_, err := repo.Create(context.Background(), draft)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "discount", verr.Field)
	assert.Zero(t, calls)
}

func TestInvoiceUpdate_SameValidationAsCreate(t *testing.T) {
	calls := 0
	repo := NewInvoiceRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})))

	var verr *domain.ValidationError

	draft := validDraft()
	draft.Tax = -1
	_, err := repo.Update(context.Background(), "inv1", draft)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tax", verr.Field)

	draft = validDraft()
	draft.Discount = 100
	_, err = repo.Update(context.Background(), "inv1", draft)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "discount", verr.Field)

	assert.Zero(t, calls)
}

func TestInvoiceUpdate_OmitsClientID(t *testing.T) {
	var gotBody map[string]any
	repo := NewInvoiceRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/invoices/inv1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"data": ` + invoiceJSON + `}`))
	})))

	_, err := repo.Update(context.Background(), "inv1", validDraft())
	require.NoError(t, err)

	// The client reference is immutable after creation
	_, hasClient := gotBody["clientId"]
	assert.False(t, hasClient)
}

func TestInvoiceUpdateStatus(t *testing.T) {
	var gotBody map[string]string
	repo := NewInvoiceRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/invoices/inv1/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"data": ` + invoiceJSON + `}`))
	})))

	_, err := repo.UpdateStatus(context.Background(), "inv1", domain.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "Paid"}, gotBody)
}

func TestInvoiceUpdateStatus_RejectsUnknown(t *testing.T) {
	calls := 0
	repo := NewInvoiceRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})))

	_, err := repo.UpdateStatus(context.Background(), "inv1", domain.InvoiceStatus("Draft"))
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Zero(t, calls)
}

func TestInvoiceDelete(t *testing.T) {
	repo := NewInvoiceRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/invoices/inv1", r.URL.Path)
		w.Write([]byte(`{"data": {"message": "Invoice deleted"}}`))
	})))

	require.NoError(t, repo.Delete(context.Background(), "inv1"))
}

func TestClientRefUnmarshal(t *testing.T) {
	var ref clientRef

	// Bare id string
	require.NoError(t, json.Unmarshal([]byte(`"c1"`), &ref))
	assert.Equal(t, "c1", ref.ID)
	assert.Nil(t, ref.Client)

	// Expanded object
	require.NoError(t, json.Unmarshal([]byte(`{"_id": "c2", "name": "Globex"}`), &ref))
	assert.Equal(t, "c2", ref.ID)
	require.NotNil(t, ref.Client)
	assert.Equal(t, "Globex", ref.Client.Name)

	// Null for a deleted client
	require.NoError(t, json.Unmarshal([]byte(`null`), &ref))
	assert.Empty(t, ref.ID)
	assert.Nil(t, ref.Client)
}
