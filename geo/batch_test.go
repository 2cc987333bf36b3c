package geo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	mu       sync.Mutex
	inFlight int
	calls    []string
	results  map[string]*Coordinate
	errs     map[string]error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (*Coordinate, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > 1 {
		f.mu.Unlock()
		return nil, errors.New("batch geocoding must never run in parallel")
	}
	f.calls = append(f.calls, query)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.results[query], nil
}

func TestBatchGeocode_SequentialResults(t *testing.T) {
	old := BatchInterval
	BatchInterval = time.Millisecond
	defer func() { BatchInterval = old }()

	fake := &fakeGeocoder{
		results: map[string]*Coordinate{
			"Nairobi": {Lat: -1.28, Lng: 36.81},
			"Mombasa": {Lat: -4.04, Lng: 39.66},
		},
		errs: map[string]error{"Atlantis": errors.New("provider down")},
	}

	results := BatchGeocode(context.Background(), fake, []string{"Nairobi", "Atlantis", "Mombasa"})

	require.Len(t, results, 3)
	require.NotNil(t, results[0])
	assert.InDelta(t, -1.28, results[0].Lat, 1e-9)
	assert.Nil(t, results[1])
	require.NotNil(t, results[2])
	assert.InDelta(t, -4.04, results[2].Lat, 1e-9)

	assert.Equal(t, []string{"Nairobi", "Atlantis", "Mombasa"}, fake.calls)
}

func TestBatchGeocode_StopsOnCancel(t *testing.T) {
	old := BatchInterval
	BatchInterval = 50 * time.Millisecond
	defer func() { BatchInterval = old }()

	fake := &fakeGeocoder{
		results: map[string]*Coordinate{"Nairobi": {Lat: -1.28, Lng: 36.81}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := BatchGeocode(ctx, fake, []string{"Nairobi", "Mombasa", "Kisumu"})

	require.Len(t, results, 3)
	// The first call runs before the interval check; the rest are skipped.
	assert.Equal(t, []string{"Nairobi"}, fake.calls)
	assert.Nil(t, results[1])
	assert.Nil(t, results[2])
}
