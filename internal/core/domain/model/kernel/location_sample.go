package kernel

import (
	"errors"
	"time"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// ErrLocationSampleIsNotConstructed is returned when attempting to use an
// improperly initialized LocationSample.
var ErrLocationSampleIsNotConstructed = errs.NewValueIsRequiredError(
	"location sample must be created via NewLocationSample constructor")

// ErrTimestampIsRequired is returned when a location sample is created with a
// zero timestamp.
var ErrTimestampIsRequired = errs.NewValueIsRequiredError("timestamp")

// LocationSample is a single position fix delivered by a location provider.
// Each new sample supersedes the previous one entirely; no history is kept.
// LocationSample is an immutable value object.
type LocationSample struct {
	point     GeoPoint
	timestamp time.Time
	guard     guard.ConstructorGuard
}

// NewLocationSample creates a LocationSample from a valid coordinate and a
// non-zero timestamp.
func NewLocationSample(point GeoPoint, timestamp time.Time) (LocationSample, error) {
	if err := point.Validate(); err != nil {
		return LocationSample{}, err
	}
	if timestamp.IsZero() {
		return LocationSample{}, ErrTimestampIsRequired
	}

	return LocationSample{
		point:     point,
		timestamp: timestamp,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the sample was properly constructed.
func (s LocationSample) Validate() error {
	return errors.Join(
		s.guard.Validate(ErrLocationSampleIsNotConstructed),
		s.point.Validate(),
	)
}

// Point returns the sampled coordinate.
func (s LocationSample) Point() GeoPoint {
	return s.point
}

// Timestamp returns when the fix was taken.
func (s LocationSample) Timestamp() time.Time {
	return s.timestamp
}
