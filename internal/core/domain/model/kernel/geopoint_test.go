package kernel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
		errType   error
	}{
		{
			name:      "valid point",
			latitude:  37.7749,
			longitude: -122.4194,
			wantErr:   false,
		},
		{
			name:      "valid point at min bounds",
			latitude:  kernel.LatitudeMin,
			longitude: kernel.LongitudeMin,
			wantErr:   false,
		},
		{
			name:      "valid point at max bounds",
			latitude:  kernel.LatitudeMax,
			longitude: kernel.LongitudeMax,
			wantErr:   false,
		},
		{
			name:      "invalid latitude too small",
			latitude:  -90.5,
			longitude: 0,
			wantErr:   true,
			errType:   errs.NewValueIsOutOfRangeError("latitude", -90.5, kernel.LatitudeMin, kernel.LatitudeMax),
		},
		{
			name:      "invalid latitude too large",
			latitude:  91,
			longitude: 0,
			wantErr:   true,
			errType:   errs.NewValueIsOutOfRangeError("latitude", 91.0, kernel.LatitudeMin, kernel.LatitudeMax),
		},
		{
			name:      "invalid longitude too small",
			latitude:  0,
			longitude: -180.5,
			wantErr:   true,
			errType:   errs.NewValueIsOutOfRangeError("longitude", -180.5, kernel.LongitudeMin, kernel.LongitudeMax),
		},
		{
			name:      "invalid longitude too large",
			latitude:  0,
			longitude: 181,
			wantErr:   true,
			errType:   errs.NewValueIsOutOfRangeError("longitude", 181.0, kernel.LongitudeMin, kernel.LongitudeMax),
		},
		{
			name:      "both coordinates invalid",
			latitude:  -91,
			longitude: 181,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := kernel.NewGeoPoint(tt.latitude, tt.longitude)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errType != nil {
					assert.Contains(t, err.Error(), tt.errType.Error())
				}
				return
			}

			require.NoError(t, err)
			require.NoError(t, point.Validate())
			assert.InDelta(t, tt.latitude, point.Latitude(), 1e-12)
			assert.InDelta(t, tt.longitude, point.Longitude(), 1e-12)
		})
	}
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var point kernel.GeoPoint

		err := point.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})

	t.Run("constructed point is valid", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(10, 20)
		require.NoError(t, err)
		require.NoError(t, point.Validate())
	})
}

func TestGeoPoint_DistanceMeters(t *testing.T) {
	t.Run("distance to itself is zero", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(37.7749, -122.4194)
		require.NoError(t, err)

		distance, err := point.DistanceMeters(point)

		require.NoError(t, err)
		assert.InDelta(t, 0, distance, 1e-9)
	})

	t.Run("known city pair within tolerance", func(t *testing.T) {
		// San Francisco downtown to Oakland downtown, roughly 13.4 km.
		sf, err := kernel.NewGeoPoint(37.7749, -122.4194)
		require.NoError(t, err)
		oakland, err := kernel.NewGeoPoint(37.8044, -122.2712)
		require.NoError(t, err)

		distance, err := sf.DistanceMeters(oakland)

		require.NoError(t, err)
		assert.InDelta(t, 13400, distance, 300)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(37.7749, -122.4194)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(37.3382, -121.8863)
		require.NoError(t, err)

		ab, err := a.DistanceMeters(b)
		require.NoError(t, err)
		ba, err := b.DistanceMeters(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("unconstructed point fails", func(t *testing.T) {
		var invalid kernel.GeoPoint
		point, err := kernel.NewGeoPoint(0, 0)
		require.NoError(t, err)

		_, err = point.DistanceMeters(invalid)
		require.Error(t, err)

		_, err = invalid.DistanceMeters(point)
		require.Error(t, err)
	})
}

func TestGeoPoint_Toward(t *testing.T) {
	t.Run("closes the configured fraction of the gap", func(t *testing.T) {
		from, err := kernel.NewGeoPoint(37.0, -122.0)
		require.NoError(t, err)
		to, err := kernel.NewGeoPoint(38.0, -121.0)
		require.NoError(t, err)

		moved, err := from.Toward(to, 0.1)

		require.NoError(t, err)
		assert.InDelta(t, 37.1, moved.Latitude(), 1e-9)
		assert.InDelta(t, -121.9, moved.Longitude(), 1e-9)
	})

	t.Run("repeated application converges without overshoot", func(t *testing.T) {
		from, err := kernel.NewGeoPoint(37.0, -122.0)
		require.NoError(t, err)
		to, err := kernel.NewGeoPoint(38.0, -121.0)
		require.NoError(t, err)

		current := from
		for _loopIter := 0; _loopIter < 200; _loopIter++ {
			current, err = current.Toward(to, 0.1)
			require.NoError(t, err)
			assert.LessOrEqual(t, current.Latitude(), to.Latitude())
			assert.LessOrEqual(t, current.Longitude(), to.Longitude())
		}

		converged, err := current.WithinEpsilon(to, 0.001)
		require.NoError(t, err)
		assert.True(t, converged)
	})

	t.Run("invalid factor is rejected", func(t *testing.T) {
		from, err := kernel.NewGeoPoint(37.0, -122.0)
		require.NoError(t, err)
		to, err := kernel.NewGeoPoint(38.0, -121.0)
		require.NoError(t, err)

		_, err = from.Toward(to, 0)
		require.Error(t, err)

		_, err = from.Toward(to, 1.5)
		require.Error(t, err)
	})
}

func TestGeoPoint_WithinEpsilon(t *testing.T) {
	tests := []struct {
		name    string
		fromLat float64
		fromLon float64
		toLat   float64
		toLon   float64
		epsilon float64
		want    bool
	}{
		{
			name:    "identical points are within epsilon",
			fromLat: 37.0, fromLon: -122.0,
			toLat: 37.0, toLon: -122.0,
			epsilon: 0.001,
			want:    true,
		},
		{
			name:    "both axes below epsilon",
			fromLat: 37.0005, fromLon: -122.0005,
			toLat: 37.0, toLon: -122.0,
			epsilon: 0.001,
			want:    true,
		},
		{
			name:    "one axis above epsilon",
			fromLat: 37.002, fromLon: -122.0,
			toLat: 37.0, toLon: -122.0,
			epsilon: 0.001,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, err := kernel.NewGeoPoint(tt.fromLat, tt.fromLon)
			require.NoError(t, err)
			to, err := kernel.NewGeoPoint(tt.toLat, tt.toLon)
			require.NoError(t, err)

			got, err := from.WithinEpsilon(to, tt.epsilon)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLocationSample(t *testing.T) {
	t.Run("valid sample", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(37.7749, -122.4194)
		require.NoError(t, err)
		now := time.Now()

		sample, err := kernel.NewLocationSample(point, now)

		require.NoError(t, err)
		require.NoError(t, sample.Validate())
		equal, err := sample.Point().IsEqual(point)
		require.NoError(t, err)
		assert.True(t, equal)
		assert.Equal(t, now, sample.Timestamp())
	})

	t.Run("zero timestamp is rejected", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(0, 0)
		require.NoError(t, err)

		_, err = kernel.NewLocationSample(point, time.Time{})

		require.Error(t, err)
		assert.Equal(t, kernel.ErrTimestampIsRequired, err)
	})

	t.Run("unconstructed point is rejected", func(t *testing.T) {
		var point kernel.GeoPoint

		_, err := kernel.NewLocationSample(point, time.Now())

		require.Error(t, err)
	})

	t.Run("zero value sample fails validation", func(t *testing.T) {
		var sample kernel.LocationSample

		require.Error(t, sample.Validate())
	})
}
