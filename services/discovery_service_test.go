package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanjiru84/pro_marketplace/geo"
)

type fakeGeocoder struct {
	coords map[string]geo.Coordinate
	errs   map[string]error
	calls  []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, query string) (*geo.Coordinate, error) {
	f.calls = append(f.calls, query)
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	if coord, ok := f.coords[query]; ok {
		return &coord, nil
	}
	return nil, nil
}

func professionalRows(locations ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "location", "rating", "is_active", "is_deleted"})
	for i, loc := range locations {
		rows.AddRow(uuid.NewString(), uuid.NewString(), loc, 4.0+float64(i)*0.1, true, false)
	}
	return rows
}

func expectSearchPage(mock sqlmock.Sqlmock, total int64, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT count\(\*\) FROM "professionals"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(total))
	mock.ExpectQuery(`SELECT \* FROM "professionals" WHERE professionals\.is_active =`).
		WillReturnRows(rows)
	// Preloads fire in key order: Categories, then User.
	mock.ExpectQuery(`SELECT .* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

func TestSearch_CountBasedPagination(t *testing.T) {
	db, mock := newTestDB(t)
	geocoder := &fakeGeocoder{}
	svc := NewDiscoveryService(db, geocoder)

	expectSearchPage(mock, 23, professionalRows("Nairobi", "Mombasa"))

	results, meta, err := svc.Search(context.Background(), SearchFilters{},
		Pagination{Page: 2, Limit: 10}, Sort{Field: "rating"}, nil)
	require.NoError(t, err)

	assert.Len(t, results, 2)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, int64(23), meta.TotalItems)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 10, meta.Limit)

	// No geo query means no geocoding at all.
	assert.Empty(t, geocoder.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_NearMeFiltersAndSortsPage(t *testing.T) {
	db, mock := newTestDB(t)
	// 0.045° of longitude at the equator is about 5 km; 0.45° about 50 km.
	geocoder := &fakeGeocoder{coords: map[string]geo.Coordinate{
		"Thika":       {Lat: 0, Lng: 0.45},
		"Nairobi CBD": {Lat: 0, Lng: 0.045},
	}}
	svc := NewDiscoveryService(db, geocoder)

	expectSearchPage(mock, 2, professionalRows("Thika", "Nairobi CBD"))

	results, meta, err := svc.Search(context.Background(), SearchFilters{},
		Pagination{Page: 1, Limit: 10}, Sort{Field: "rating"},
		&GeoQuery{NearMe: true, UserLat: 0, UserLng: 0, RadiusKm: 10})
	require.NoError(t, err)

	// Only the profile within the radius survives.
	require.Len(t, results, 1)
	assert.Equal(t, "Nairobi CBD", results[0].Location)
	require.NotNil(t, results[0].DistanceKm)
	assert.Equal(t, 5.0, *results[0].DistanceKm)
	require.NotNil(t, results[0].Coordinates)

	// Meta reflects the surviving subset, not the database count.
	assert.Equal(t, int64(1), meta.TotalItems)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestSearch_NearMeOrdersByDistanceAscending(t *testing.T) {
	db, mock := newTestDB(t)
	geocoder := &fakeGeocoder{coords: map[string]geo.Coordinate{
		"Thika":       {Lat: 0, Lng: 0.45},
		"Nairobi CBD": {Lat: 0, Lng: 0.045},
		"Westlands":   {Lat: 0, Lng: 0.09},
	}}
	svc := NewDiscoveryService(db, geocoder)

	// The database page arrives rating-sorted, farthest first.
	expectSearchPage(mock, 3, professionalRows("Thika", "Westlands", "Nairobi CBD"))

	results, _, err := svc.Search(context.Background(), SearchFilters{},
		Pagination{Page: 1, Limit: 10}, Sort{Field: "rating"},
		&GeoQuery{NearMe: true, UserLat: 0, UserLng: 0, RadiusKm: 60})
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "Nairobi CBD", results[0].Location)
	assert.Equal(t, "Westlands", results[1].Location)
	assert.Equal(t, "Thika", results[2].Location)
}

func TestSearch_GeocoderFailureDegradesResult(t *testing.T) {
	db, mock := newTestDB(t)
	geocoder := &fakeGeocoder{
		coords: map[string]geo.Coordinate{"Nairobi CBD": {Lat: 0, Lng: 0.045}},
		errs:   map[string]error{"Thika": fmt.Errorf("geocoder: status 503")},
	}
	svc := NewDiscoveryService(db, geocoder)

	expectSearchPage(mock, 2, professionalRows("Thika", "Nairobi CBD"))

	results, _, err := svc.Search(context.Background(), SearchFilters{},
		Pagination{Page: 1, Limit: 10}, Sort{Field: "rating"},
		&GeoQuery{NearMe: true, UserLat: 0, UserLng: 0, RadiusKm: 100})

	// The search itself never fails on a geocoding error; the profile
	// just drops out of the distance-filtered page.
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Nairobi CBD", results[0].Location)
}

func TestSearch_NearMeSkipsBlankLocations(t *testing.T) {
	db, mock := newTestDB(t)
	geocoder := &fakeGeocoder{coords: map[string]geo.Coordinate{
		"Nairobi CBD": {Lat: 0, Lng: 0.045},
	}}
	svc := NewDiscoveryService(db, geocoder)

	expectSearchPage(mock, 2, professionalRows("", "Nairobi CBD"))

	results, _, err := svc.Search(context.Background(), SearchFilters{},
		Pagination{Page: 1, Limit: 10}, Sort{Field: "rating"},
		&GeoQuery{NearMe: true, UserLat: 0, UserLng: 0, RadiusKm: 100})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, []string{"Nairobi CBD"}, geocoder.calls)
}

func TestSearch_UnresolvedLocationIsDropped(t *testing.T) {
	db, mock := newTestDB(t)
	// Geocoder finds nothing for either query.
	geocoder := &fakeGeocoder{}
	svc := NewDiscoveryService(db, geocoder)

	expectSearchPage(mock, 1, professionalRows("Atlantis"))

	results, meta, err := svc.Search(context.Background(), SearchFilters{},
		Pagination{Page: 1, Limit: 10}, Sort{Field: "rating"},
		&GeoQuery{NearMe: true, UserLat: 0, UserLng: 0, RadiusKm: 100})
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Equal(t, int64(0), meta.TotalItems)
}
