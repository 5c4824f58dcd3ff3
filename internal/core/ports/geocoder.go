package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
)

// Placemark is the raw reverse-geocoding answer for a coordinate.
// Locality is the city/town level name; AdministrativeArea is the broader
// region used as a fallback when no locality is known. DisplayName carries
// the provider's full formatted name for diagnostics only.
type Placemark struct {
	Locality           string
	AdministrativeArea string
	DisplayName        string
}

// Geocoder resolves a coordinate to a placemark.
// Implementations must honor context cancellation: a cancelled call should
// return promptly with ctx.Err() rather than deliver a late result.
type Geocoder interface {
	// ReverseGeocode converts a coordinate to place details.
	ReverseGeocode(ctx context.Context, point kernel.GeoPoint) (Placemark, error)
}
