package metrics

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHooks_PostsEvent(t *testing.T) {
	professionalID := uuid.New()

	var gotPath string
	var gotPayload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotPayload))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	hooks := &HTTPHooks{BaseURL: server.URL, client: &http.Client{Timeout: time.Second}}

	require.NoError(t, hooks.OnBookingCompleted(professionalID))
	assert.Equal(t, "/v1/events", gotPath)
	assert.Equal(t, "booking.completed", gotPayload["event"])
	assert.Equal(t, professionalID.String(), gotPayload["professional_id"])

	require.NoError(t, hooks.OnBookingCancelled(professionalID))
	assert.Equal(t, "booking.cancelled", gotPayload["event"])
}

func TestHTTPHooks_NonSuccessStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	hooks := &HTTPHooks{BaseURL: server.URL, client: &http.Client{Timeout: time.Second}}
	assert.Error(t, hooks.OnBookingCompleted(uuid.New()))
}

func TestHTTPHooks_UnreachableServiceIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	hooks := &HTTPHooks{BaseURL: server.URL, client: &http.Client{Timeout: time.Second}}
	assert.Error(t, hooks.OnBookingCancelled(uuid.New()))
}

func TestNoopHooks_AlwaysSucceed(t *testing.T) {
	hooks := NoopHooks{}
	assert.NoError(t, hooks.OnBookingCompleted(uuid.New()))
	assert.NoError(t, hooks.OnBookingCancelled(uuid.New()))
}
