package web3forms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"nothingelse-storefront/internal/domain"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() domain.ContactMessage {
	return domain.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Order question",
		Message: "Where is my poster?",
	}
}

func TestSubmit_Success(t *testing.T) {
	var payload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"success":true,"message":"Email sent"}`))
	}))
	defer server.Close()

	client := NewClient("key-123", "owner@example.com", server.URL)
	require.NoError(t, client.Submit(context.Background(), testMessage()))

	assert.Equal(t, "key-123", payload["access_key"])
	assert.Equal(t, "ada@example.com", payload["email"])
	assert.Equal(t, "owner@example.com", payload["to_email"])
	assert.Equal(t, "Where is my poster?", payload["message"])
}

func TestSubmit_ServiceRejection(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"success false with error", http.StatusOK, `{"success":false,"error":"invalid access key"}`, "invalid access key"},
		{"success false with message only", http.StatusOK, `{"success":false,"message":"rate limited"}`, "rate limited"},
		{"http error", http.StatusBadGateway, `{"success":false}`, "status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient("key-123", "", server.URL)
			err := client.Submit(context.Background(), testMessage())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSubmit_NilClient(t *testing.T) {
	client := NewClient("", "owner@example.com", "")
	require.Nil(t, client)

	err := client.Submit(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
