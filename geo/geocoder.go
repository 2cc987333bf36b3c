package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	config "github.com/wanjiru84/pro_marketplace/configs"
)

// Geocoder resolves a free-text location to a coordinate pair. A nil
// coordinate with a nil error means the provider had no match; callers
// treat both nil results and errors as "unresolved".
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Coordinate, error)
}

type HTTPGeocoder struct {
	BaseURL string
	client  *http.Client
}

func NewHTTPGeocoder() *HTTPGeocoder {
	baseURL := config.Config("GEOCODER_BASE_URL")
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	return &HTTPGeocoder{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type geocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode asks the provider for the single best match of query.
func (g *HTTPGeocoder) Geocode(ctx context.Context, query string) (*Coordinate, error) {
	if query == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "pro-marketplace/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %s", resp.Status)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder returned invalid latitude: %s", results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder returned invalid longitude: %s", results[0].Lon)
	}

	coord := Coordinate{Lat: lat, Lng: lng}
	if !coord.Valid() {
		return nil, fmt.Errorf("geocoder returned out-of-range coordinate: %f,%f", lat, lng)
	}
	return &coord, nil
}
