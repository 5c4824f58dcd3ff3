package kernel

import (
	"errors"
	"fmt"
	"math"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax = 180.0

	// earthRadiusMeters is the mean Earth radius used by the haversine formula.
	earthRadiusMeters = 6371000.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via the NewGeoPoint
// constructor to ensure coordinate validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a WGS-84 coordinate with validated latitude and
// longitude. GeoPoint is an immutable value object; the zero value is invalid
// and fails validation — use NewGeoPoint to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(37.7749, -122.4194)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Point: %s", point) // Output: GeoPoint(37.774900,-122.419400)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the specified coordinates.
//
// Parameters:
//   - latitude: decimal degrees in [LatitudeMin..LatitudeMax]
//   - longitude: decimal degrees in [LongitudeMin..LongitudeMax]
//
// Returns:
//   - GeoPoint: a valid coordinate instance
//   - error: validation error if either coordinate is outside its bounds
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed using the
// constructor. The zero value is invalid and fails this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a human-readable representation in the format
// "GeoPoint(lat,lon)" with six decimal places. Implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares two points for exact coordinate equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceMeters calculates the great-circle distance to another point using
// the haversine formula over a spherical Earth. Accuracy is well within a
// meter at city scale, which is sufficient for service-area containment.
//
// Both points must be properly constructed for the calculation to succeed.
func (p GeoPoint) DistanceMeters(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	deltaLat := (other.latitude - p.latitude) * math.Pi / 180
	deltaLon := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c, nil
}

// Toward returns a new point moved the given fraction of the remaining
// per-axis distance toward target. A factor of 0.1 closes 10% of the gap on
// each axis; repeated application decays exponentially toward the target and
// never overshoots for factors in (0, 1].
func (p GeoPoint) Toward(target GeoPoint, factor float64) (GeoPoint, error) {
	if err := errors.Join(p.Validate(), target.Validate()); err != nil {
		return GeoPoint{}, err
	}
	if factor <= 0 || factor > 1 {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("factor", factor, 0.0, 1.0)
	}

	return NewGeoPoint(
		p.latitude+(target.latitude-p.latitude)*factor,
		p.longitude+(target.longitude-p.longitude)*factor,
	)
}

// WithinEpsilon reports whether the remaining distance to target is below
// epsilon degrees on both axes. Used to decide interpolation convergence.
func (p GeoPoint) WithinEpsilon(target GeoPoint, epsilonDegrees float64) (bool, error) {
	if err := errors.Join(p.Validate(), target.Validate()); err != nil {
		return false, err
	}

	return math.Abs(target.latitude-p.latitude) < epsilonDegrees &&
		math.Abs(target.longitude-p.longitude) < epsilonDegrees, nil
}

// setLatitude sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, to enable self-encapsulated validation during construction.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, to enable self-encapsulated validation during construction.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}
