package services

import (
	"context"
	"log"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/wanjiru84/pro_marketplace/geo"
	"github.com/wanjiru84/pro_marketplace/models"
	"gorm.io/gorm"
)

type SearchFilters struct {
	Name        string
	Location    string
	MinRating   float64
	CategoryIDs []uuid.UUID
}

type Pagination struct {
	Page  int
	Limit int
}

type Sort struct {
	Field     string
	Direction string
}

type GeoQuery struct {
	NearMe   bool
	UserLat  float64
	UserLng  float64
	RadiusKm float64
}

type SearchResult struct {
	models.Professional
	Coordinates *geo.Coordinate `json:"coordinates"`
	DistanceKm  *float64        `json:"distance"`
}

type PageInfo struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

var searchSortColumns = map[string]string{
	"rating":     "professionals.rating",
	"created_at": "professionals.created_at",
	"location":   "professionals.location",
}

type DiscoveryService struct {
	db       *gorm.DB
	geocoder geo.Geocoder
}

func NewDiscoveryService(db *gorm.DB, geocoder geo.Geocoder) *DiscoveryService {
	return &DiscoveryService{db: db, geocoder: geocoder}
}

func (s *DiscoveryService) baseQuery(ctx context.Context, filters SearchFilters) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Professional{}).
		Where("professionals.is_active = ? AND professionals.is_deleted = ?", true, false)

	if filters.Location != "" {
		query = query.Where("professionals.location ILIKE ?", "%"+filters.Location+"%")
	}
	if filters.MinRating > 0 {
		query = query.Where("professionals.rating >= ?", filters.MinRating)
	}
	if len(filters.CategoryIDs) > 0 {
		// Inner join: profiles without a matching category drop out.
		query = query.
			Joins("JOIN professional_categories ON professional_categories.professional_id = professionals.id").
			Where("professional_categories.category_id IN ?", filters.CategoryIDs).
			Distinct("professionals.*")
	}
	if filters.Name != "" {
		// A name filter makes the user join mandatory.
		query = query.
			Joins("JOIN users ON users.id = professionals.user_id").
			Where("users.full_name ILIKE ? OR users.handle ILIKE ?",
				"%"+filters.Name+"%", "%"+filters.Name+"%")
	}
	return query
}

func sortClause(s Sort) string {
	column, ok := searchSortColumns[s.Field]
	if !ok {
		column = "professionals.rating"
	}
	direction := "desc"
	if s.Direction == "asc" {
		direction = "asc"
	}
	return column + " " + direction
}

// Search runs the filtered, paginated professional lookup. In nearMe
// mode the distance filter and re-sort apply only to the page already
// fetched, not the full candidate set — a deliberate trade of
// completeness for a bounded number of geocoding calls per request.
// Page metadata is count-based on the default path and recomputed from
// the surviving subset in nearMe mode.
func (s *DiscoveryService) Search(ctx context.Context, filters SearchFilters, pagination Pagination, sortBy Sort, geoQuery *GeoQuery) ([]SearchResult, *PageInfo, error) {
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	offset := (pagination.Page - 1) * pagination.Limit

	var total int64
	if err := s.baseQuery(ctx, filters).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var professionals []models.Professional
	err := s.baseQuery(ctx, filters).
		Order(sortClause(sortBy)).
		Offset(offset).
		Limit(pagination.Limit).
		Preload("User").
		Preload("Categories").
		Find(&professionals).Error
	if err != nil {
		return nil, nil, err
	}

	results := make([]SearchResult, 0, len(professionals))
	for _, p := range professionals {
		results = append(results, SearchResult{Professional: p})
	}

	pageInfo := &PageInfo{
		CurrentPage: pagination.Page,
		TotalPages:  int(math.Ceil(float64(total) / float64(pagination.Limit))),
		TotalItems:  total,
		Limit:       pagination.Limit,
	}

	if geoQuery == nil || !geoQuery.NearMe {
		return results, pageInfo, nil
	}

	userCoord := geo.Coordinate{Lat: geoQuery.UserLat, Lng: geoQuery.UserLng}
	for i := range results {
		if results[i].Location == "" {
			continue
		}
		coord, err := s.geocoder.Geocode(ctx, results[i].Location)
		if err != nil {
			log.Printf("geocoding failed for professional %s (%q): %v", results[i].ID, results[i].Location, err)
			continue
		}
		if coord == nil {
			continue
		}
		results[i].Coordinates = coord
		distance := geo.RoundKm(geo.Distance(userCoord, *coord))
		results[i].DistanceKm = &distance
	}

	nearby := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if r.DistanceKm == nil || *r.DistanceKm > geoQuery.RadiusKm {
			continue
		}
		nearby = append(nearby, r)
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		if nearby[i].DistanceKm == nil {
			return false
		}
		if nearby[j].DistanceKm == nil {
			return true
		}
		return *nearby[i].DistanceKm < *nearby[j].DistanceKm
	})

	pageInfo.TotalItems = int64(len(nearby))
	pageInfo.TotalPages = int(math.Ceil(float64(len(nearby)) / float64(pagination.Limit)))

	return nearby, pageInfo, nil
}
