package portfolio

import (
	"slices"

	"github.com/umahmood/haversine"

	"github.com/stwalsh4118/portfolio/internal/models"
)

// DefaultNearbyRadiusMiles is used when no radius is requested.
const DefaultNearbyRadiusMiles = 25.0

// Neighbor is a property within range of another one.
type Neighbor struct {
	Property      *models.Property `json:"property"`
	DistanceMiles float64          `json:"distanceMiles"`
}

// DistanceMiles is the great-circle distance between two points.
func DistanceMiles(a, b models.Point) float64 {
	mi, _ := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lng},
		haversine.Coord{Lat: b.Lat, Lon: b.Lng},
	)
	return mi
}

// Nearby lists the properties within radiusMiles of origin, closest first. The origin
// property itself and properties without coordinates are skipped.
func Nearby(properties []*models.Property, origin *models.Property, radiusMiles float64) []Neighbor {
	out := []Neighbor{}
	if origin == nil || origin.Coordinates.IsZero() {
		return out
	}
	for _, p := range properties {
		if p.ID == origin.ID || p.Coordinates.IsZero() {
			continue
		}
		d := DistanceMiles(origin.Coordinates, p.Coordinates)
		if d <= radiusMiles {
			out = append(out, Neighbor{Property: p, DistanceMiles: d})
		}
	}
	slices.SortStableFunc(out, func(a, b Neighbor) int {
		switch {
		case a.DistanceMiles < b.DistanceMiles:
			return -1
		case a.DistanceMiles > b.DistanceMiles:
			return 1
		}
		return 0
	})
	return out
}
