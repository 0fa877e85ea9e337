package notify_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platano/internal/notify"
)

func TestWebhookDelivererPostsJSON(t *testing.T) {
	var got notify.Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := notify.NewWebhookDeliverer(srv.URL)
	err := d.Deliver(notify.Event{RequesterID: 7, Term: "yeezy", At: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "yeezy", got.Term)
	assert.EqualValues(t, 7, got.RequesterID)
}

func TestWebhookDelivererReportsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := notify.NewWebhookDeliverer(srv.URL).Deliver(notify.Event{Term: "x"})
	assert.Error(t, err)
}
