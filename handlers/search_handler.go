package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wanjiru84/pro_marketplace/services"
)

const defaultSearchRadiusKm = 50.0

// SearchProfessionals is the public discovery endpoint. Geocoding
// failures never fail the request; affected profiles simply carry no
// coordinates.
func SearchProfessionals(c *fiber.Ctx) error {
	filters := services.SearchFilters{
		Name:     c.Query("name"),
		Location: c.Query("location"),
	}
	if raw := c.Query("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid min_rating"})
		}
		filters.MinRating = minRating
	}
	if raw := c.Query("category_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category id: " + part})
			}
			filters.CategoryIDs = append(filters.CategoryIDs, id)
		}
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	pagination := services.Pagination{Page: page, Limit: limit}

	sortBy := services.Sort{
		Field:     c.Query("sort_by", "rating"),
		Direction: c.Query("sort_dir", "desc"),
	}

	var geoQuery *services.GeoQuery
	if c.Query("near_me") == "true" {
		userLat, errLat := strconv.ParseFloat(c.Query("user_lat"), 64)
		userLng, errLng := strconv.ParseFloat(c.Query("user_lng"), 64)
		if errLat != nil || errLng != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "near_me search requires user_lat and user_lng"})
		}
		radius := defaultSearchRadiusKm
		if raw := c.Query("radius_km"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || parsed <= 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid radius_km"})
			}
			radius = parsed
		}
		geoQuery = &services.GeoQuery{
			NearMe:   true,
			UserLat:  userLat,
			UserLng:  userLng,
			RadiusKm: radius,
		}
	}

	results, pageInfo, err := discoveryService.Search(c.UserContext(), filters, pagination, sortBy, geoQuery)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Search failed"})
	}

	return c.JSON(fiber.Map{
		"data": results,
		"meta": pageInfo,
	})
}
