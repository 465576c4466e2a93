package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memKeyring keeps the token in memory for tests
type memKeyring struct {
	token string
	ok    bool
}

func (k *memKeyring) GetToken() (string, error) {
	if !k.ok {
		return "", errors.New("no token stored")
	}
	return k.token, nil
}
func (k *memKeyring) SetToken(token string) error {
	k.token = token
	k.ok = true
	return nil
}
func (k *memKeyring) DeleteToken() error {
	k.token = ""
	k.ok = false
	return nil
}
func (k *memKeyring) IsAvailable() bool { return true }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *TokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := NewTokenStore(&memKeyring{})
	return New(srv.URL, tokens), tokens
}

func TestGet_UnwrapsEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/clients", r.URL.Path)
		w.Write([]byte(`{"data": [{"name": "ACME"}]}`))
	})

	var out []struct {
		Name string `json:"name"`
	}
	err := c.Get(context.Background(), "/clients", &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ACME", out[0].Name)
}

func TestGet_BareBodyWithoutEnvelope(t *testing.T) {
	// Auth endpoints respond without the data wrapper
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "abc"}`))
	})

	var out struct {
		Token string `json:"token"`
	}
	err := c.Get(context.Background(), "/auth/whoami", &out)
	require.NoError(t, err)
	assert.Equal(t, "abc", out.Token)
}

func TestSend_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data": {}}`))
	})

	// No token yet: no header
	require.NoError(t, c.Get(context.Background(), "/invoices", nil))
	assert.Empty(t, gotAuth)

	require.NoError(t, tokens.Set("secret-token"))
	require.NoError(t, c.Get(context.Background(), "/invoices", nil))
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestPost_SendsJSONContentType(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {}}`))
	})

	err := c.Post(context.Background(), "/clients", map[string]string{"name": "ACME"}, nil)
	require.NoError(t, err)
}

func TestCheckStatus_Unauthorized(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "token expired"}`))
	})

	err := c.Get(context.Background(), "/invoices", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCheckStatus_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "invoice not found"}`))
	})

	err := c.Get(context.Background(), "/invoices/missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "invoice not found")
}

func TestCheckStatus_ServerError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "something broke"}`))
	})

	err := c.Get(context.Background(), "/invoices", nil)
	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
	assert.Equal(t, "something broke", serr.Message)
}

func TestSend_NetworkError(t *testing.T) {
	tokens := NewTokenStore(&memKeyring{})
	c := New("http://127.0.0.1:1", tokens) // nothing listens here

	err := c.Get(context.Background(), "/invoices", nil)
	var nerr *NetworkError
	assert.ErrorAs(t, err, &nerr)
}

func TestDownload(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoices/inv1/pdf", r.URL.Path)
		w.Write([]byte("%PDF-1.4 fake"))
	})

	var buf bytes.Buffer
	err := c.Download(context.Background(), "/invoices/inv1/pdf", &buf)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", buf.String())
}

func TestDownload_ErrorBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no such invoice"}`))
	})

	var buf bytes.Buffer
	err := c.Download(context.Background(), "/invoices/bad/pdf", &buf)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, buf.Len())
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data": {}}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL+"/", NewTokenStore(&memKeyring{}))
	require.NoError(t, c.Get(context.Background(), "/clients", nil))
	assert.Equal(t, "/clients", gotPath)
}

func TestLoginStoresToken(t *testing.T) {
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"token": "session-abc"}`))
	})

	err := c.Login(context.Background(), "me@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "session-abc", tokens.Token())
	assert.True(t, tokens.HasToken())
}

func TestLoginFailureLeavesTokenEmpty(t *testing.T) {
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid credentials"}`))
	})

	err := c.Login(context.Background(), "me@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, tokens.HasToken())
}

func TestLogoutClearsToken(t *testing.T) {
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "session-abc"}`))
	})

	require.NoError(t, c.Login(context.Background(), "me@example.com", "hunter2"))
	require.NoError(t, c.Logout())
	assert.False(t, tokens.HasToken())
}

func TestTokenStoreLoad(t *testing.T) {
	ring := &memKeyring{}
	require.NoError(t, ring.SetToken("persisted"))

	tokens := NewTokenStore(ring)
	assert.False(t, tokens.HasToken())

	tokens.Load()
	assert.Equal(t, "persisted", tokens.Token())
}
