package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentIDFromSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		want    string
		wantErr bool
	}{
		{"well formed", "pi_3ABC_secret_xyz", "pi_3ABC", false},
		{"extra underscores in id", "pi_a_b_secret_xyz", "pi_a_b", false},
		{"no secret marker", "pi_3ABC", "", true},
		{"marker at start", "_secret_xyz", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntentIDFromSecret(tt.secret)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClient_EmptyKey(t *testing.T) {
	client := NewClient("")
	assert.Nil(t, client)

	// A nil client must fail cleanly, not panic.
	_, err := client.ConfirmCardPayment(context.Background(), "pi_1_secret_2", Card{}, BillingDetails{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestConfirmCardPayment(t *testing.T) {
	t.Run("succeeded intent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/payment_intents/pi_1/confirm", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "pk_test_key", r.PostForm.Get("key"))
			assert.Equal(t, "4242424242424242", r.PostForm.Get("payment_method_data[card][number]"))
			assert.Equal(t, "Ada Lovelace", r.PostForm.Get("payment_method_data[billing_details][name]"))
			w.Write([]byte(`{"id":"pi_1","status":"succeeded"}`))
		}))
		defer server.Close()

		client := NewClient("pk_test_key")
		client.SetBaseURL(server.URL)

		intent, err := client.ConfirmCardPayment(context.Background(), "pi_1_secret_x",
			Card{Number: "4242424242424242", ExpMonth: "12", ExpYear: "2030", CVC: "123"},
			BillingDetails{Name: "Ada Lovelace"})
		require.NoError(t, err)
		assert.Equal(t, "pi_1", intent.ID)
		assert.Equal(t, "succeeded", intent.Status)
	})

	t.Run("decline surfaces the message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
		}))
		defer server.Close()

		client := NewClient("pk_test_key")
		client.SetBaseURL(server.URL)

		_, err := client.ConfirmCardPayment(context.Background(), "pi_1_secret_x", Card{}, BillingDetails{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Your card was declined.")
	})

	t.Run("opaque error falls back to status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient("pk_test_key")
		client.SetBaseURL(server.URL)

		_, err := client.ConfirmCardPayment(context.Background(), "pi_1_secret_x", Card{}, BillingDetails{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("malformed secret never leaves the client", func(t *testing.T) {
		hit := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hit = true
		}))
		defer server.Close()

		client := NewClient("pk_test_key")
		client.SetBaseURL(server.URL)

		_, err := client.ConfirmCardPayment(context.Background(), "garbage", Card{}, BillingDetails{})
		require.Error(t, err)
		assert.False(t, hit)
	})
}
