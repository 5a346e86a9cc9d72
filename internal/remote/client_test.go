package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nothingelse-storefront/internal/localstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, path string) (*Client, localstore.Store, *StaticNavigator) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := localstore.NewMemoryStore()
	nav := NewStaticNavigator(path)
	client, err := New(server.URL, store, nav, 5*time.Second)
	require.NoError(t, err)
	return client, store, nav
}

func TestClient_InjectsBearerFromStore(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	client, store, _ := newTestClient(t, handler, "/")
	require.NoError(t, store.Set(localstore.KeyToken, "stored-token"))

	require.NoError(t, client.Get(context.Background(), "/auth/me", nil))
	assert.Equal(t, "Bearer stored-token", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	client, _, _ := newTestClient(t, handler, "/")
	require.NoError(t, client.Get(context.Background(), "/products", nil))
	assert.Empty(t, gotAuth)
}

func TestClient_CookieTokenWinsOverStoredCopy(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	client, store, _ := newTestClient(t, handler, "/")
	require.NoError(t, store.Set(localstore.KeyToken, "stored-token"))
	client.SetSessionCookie("cookie-token")

	require.NoError(t, client.Get(context.Background(), "/auth/me", nil))
	assert.Equal(t, "Bearer cookie-token", gotAuth)
}

func TestClient_UnauthorizedClearsCredentialsAndRedirects(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"token expired"}`, http.StatusUnauthorized)
	})

	tests := []struct {
		name         string
		path         string
		wantRedirect string
	}{
		{"admin route bounces to admin login", "/admin/orders", "/admin/login"},
		{"member route bounces to login", "/member/orders", "/login"},
		{"public route stays put", "/products", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, store, nav := newTestClient(t, handler, tt.path)
			require.NoError(t, store.Set(localstore.KeyToken, "stale"))
			require.NoError(t, store.Set(localstore.KeyIsAdmin, "true"))

			err := client.Get(context.Background(), "/admin/orders", nil)
			require.Error(t, err)

			apiErr, ok := err.(*APIError)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
			assert.Equal(t, "token expired", apiErr.Message)

			_, hasToken := store.Get(localstore.KeyToken)
			assert.False(t, hasToken, "401 must clear the stored token")
			_, hasAdmin := store.Get(localstore.KeyIsAdmin)
			assert.False(t, hasAdmin, "401 must clear the admin flag")
			assert.Equal(t, tt.wantRedirect, nav.LastRedirect())
		})
	}
}

func TestClient_ErrorMessagePropagation(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", http.StatusBadRequest, `{"error":"Missing email or password"}`, "Missing email or password"},
		{"message field", http.StatusConflict, `{"message":"User already exists"}`, "User already exists"},
		{"no body falls back to status text", http.StatusInternalServerError, ``, "Internal Server Error"},
		{"non-json falls back to status text", http.StatusBadGateway, `upstream died`, "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			client, _, _ := newTestClient(t, handler, "/")

			err := client.Get(context.Background(), "/whatever", nil)
			require.Error(t, err)
			apiErr, ok := err.(*APIError)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestClient_DecodesResponseBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"token":"t1","user":{"name":"Ada","email":"ada@example.com","is_admin":false}}`))
	})
	client, _, _ := newTestClient(t, handler, "/")

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	body := map[string]string{"email": "ada@example.com", "password": "pw"}
	require.NoError(t, client.Post(context.Background(), "/auth/login", body, &resp))
	assert.Equal(t, "t1", resp.Token)
	assert.Equal(t, "Ada", resp.User.Name)
}

func TestClient_CustomHeaders(t *testing.T) {
	var gotKey string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.Write([]byte(`{}`))
	})
	client, _, _ := newTestClient(t, handler, "/")

	opts := &RequestOptions{Headers: map[string]string{"Idempotency-Key": "key-1"}}
	require.NoError(t, client.Do(context.Background(), http.MethodPost, "/orders", map[string]int{"x": 1}, nil, opts))
	assert.Equal(t, "key-1", gotKey)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{Status: http.StatusNotFound}))
	assert.False(t, IsNotFound(&APIError{Status: http.StatusBadRequest}))
	assert.False(t, IsNotFound(context.Canceled))
}
