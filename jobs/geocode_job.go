package jobs

import (
	"context"
	"log"
	"time"

	"github.com/wanjiru84/pro_marketplace/database"
	"github.com/wanjiru84/pro_marketplace/geo"
	"github.com/wanjiru84/pro_marketplace/models"
)

// AuditProfessionalLocations resolves every active profile's free-text
// location through the geocoder and logs the ones the provider cannot
// place, so support can chase bad addresses before they silently drop
// out of nearMe search. Runs on the batch path: one provider call per
// second, never in parallel.
func AuditProfessionalLocations() {
	log.Println("Running job: AuditProfessionalLocations...")

	var professionals []models.Professional
	err := database.DB.
		Where("is_active = ? AND is_deleted = ? AND location <> ''", true, false).
		Find(&professionals).Error
	if err != nil {
		log.Printf("Error loading professionals for location audit: %v", err)
		return
	}
	if len(professionals) == 0 {
		return
	}

	queries := make([]string, len(professionals))
	for i, p := range professionals {
		queries[i] = p.Location
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(len(queries))*geo.BatchInterval+time.Minute)
	defer cancel()

	geocoder := geo.NewHTTPGeocoder()
	coords := geo.BatchGeocode(ctx, geocoder, queries)

	unresolved := 0
	for i, coord := range coords {
		if coord == nil {
			unresolved++
			log.Printf("⚠️ Location %q for professional %s could not be resolved", professionals[i].Location, professionals[i].ID)
		}
	}

	log.Printf("Location audit finished: %d profiles checked, %d unresolved", len(professionals), unresolved)
}
