package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/andy/invoicepro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientList(t *testing.T) {
	repo := NewClientRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/clients", r.URL.Path)
		w.Write([]byte(`{"data": [
			{"_id": "c1", "name": "ACME Corp", "email": "billing@acme.test", "phone": "555-0100"},
			{"_id": "c2", "name": "Globex", "email": "ap@globex.test"}
		]}`))
	})))

	clients, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "c1", clients[0].ID)
	assert.Equal(t, "ACME Corp", clients[0].Name)
	assert.Equal(t, "555-0100", clients[0].Phone)
}

func TestClientCreate(t *testing.T) {
	var gotBody map[string]any
	repo := NewClientRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/clients", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"_id": "c9", "name": "ACME Corp", "email": "billing@acme.test"}}`))
	})))

	client := domain.NewClient("ACME Corp", "billing@acme.test")
	created, err := repo.Create(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "c9", created.ID)

	// Ids and timestamps are backend-owned, never submitted
	_, hasID := gotBody["_id"]
	assert.False(t, hasID)
}

func TestClientCreate_ValidationBeforeNetwork(t *testing.T) {
	calls := 0
	repo := NewClientRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})))

	_, err := repo.Create(context.Background(), domain.NewClient("", "billing@acme.test"))
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Zero(t, calls)
}

func TestClientUpdate(t *testing.T) {
	repo := NewClientRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/clients/c1", r.URL.Path)
		w.Write([]byte(`{"data": {"_id": "c1", "name": "ACME Renamed", "email": "billing@acme.test"}}`))
	})))

	updated, err := repo.Update(context.Background(), "c1", domain.NewClient("ACME Renamed", "billing@acme.test"))
	require.NoError(t, err)
	assert.Equal(t, "ACME Renamed", updated.Name)
}

func TestClientDelete(t *testing.T) {
	repo := NewClientRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/clients/c1", r.URL.Path)
		w.Write([]byte(`{"data": {"message": "Client deleted"}}`))
	})))

	require.NoError(t, repo.Delete(context.Background(), "c1"))
}

func TestCompanyRoundTrip(t *testing.T) {
	repo := NewCompanyRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"data": {"businessName": "My Studio", "phone": "555-0199"}}`))
		case http.MethodPut:
			assert.Equal(t, "/company", r.URL.Path)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "My Studio", body["businessName"])
			w.Write([]byte(`{"data": {"businessName": "My Studio", "phone": "555-0199"}}`))
		}
	})))

	profile, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "My Studio", profile.BusinessName)

	saved, err := repo.Save(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, "555-0199", saved.Phone)
}

func TestCompanySave_RequiresBusinessName(t *testing.T) {
	calls := 0
	repo := NewCompanyRepo(newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})))

	_, err := repo.Save(context.Background(), &domain.CompanyProfile{Phone: "555-0100"})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Zero(t, calls)
}
