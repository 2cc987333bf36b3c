package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(baseURL string) *HTTPGeocoder {
	return &HTTPGeocoder{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 500 * time.Millisecond},
	}
}

func TestGeocode_BestMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "Nairobi, Kenya", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"lat":"-1.286389","lon":"36.817223"}]`))
	}))
	defer server.Close()

	coord, err := newTestGeocoder(server.URL).Geocode(context.Background(), "Nairobi, Kenya")
	require.NoError(t, err)
	require.NotNil(t, coord)
	assert.InDelta(t, -1.286389, coord.Lat, 1e-9)
	assert.InDelta(t, 36.817223, coord.Lng, 1e-9)
}

func TestGeocode_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	coord, err := newTestGeocoder(server.URL).Geocode(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.Nil(t, coord)
}

func TestGeocode_EmptyQuery(t *testing.T) {
	coord, err := newTestGeocoder("http://unused").Geocode(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, coord)
}

func TestGeocode_ProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	coord, err := newTestGeocoder(server.URL).Geocode(context.Background(), "Nairobi")
	assert.Error(t, err)
	assert.Nil(t, coord)
}

func TestGeocode_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	coord, err := newTestGeocoder(server.URL).Geocode(context.Background(), "Nairobi")
	assert.Error(t, err)
	assert.Nil(t, coord)
}

func TestGeocode_OutOfRangeCoordinateRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"123.45","lon":"36.81"}]`))
	}))
	defer server.Close()

	coord, err := newTestGeocoder(server.URL).Geocode(context.Background(), "Nairobi")
	assert.Error(t, err)
	assert.Nil(t, coord)
}

func TestGeocode_InvalidCoordinatePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"36.81"}]`))
	}))
	defer server.Close()

	coord, err := newTestGeocoder(server.URL).Geocode(context.Background(), "Nairobi")
	assert.Error(t, err)
	assert.Nil(t, coord)
}
