package geo

import (
	"context"
	"time"
)

// BatchInterval is the pause between consecutive provider calls. The
// provider allows one request per second; the batch path is strictly
// sequential and must stay that way.
var BatchInterval = time.Second

// BatchGeocode resolves queries one at a time, sleeping BatchInterval
// between calls. Entries that fail or have no match come back nil in
// the same position as their query. Intended for background jobs, not
// request handling.
func BatchGeocode(ctx context.Context, geocoder Geocoder, queries []string) []*Coordinate {
	results := make([]*Coordinate, len(queries))
	for i, query := range queries {
		if i > 0 {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(BatchInterval):
			}
		}
		coord, err := geocoder.Geocode(ctx, query)
		if err != nil {
			continue
		}
		results[i] = coord
	}
	return results
}
