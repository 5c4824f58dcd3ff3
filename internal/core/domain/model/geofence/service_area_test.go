package geofence_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracking/internal/core/domain/model/geofence"
	"tracking/internal/core/domain/model/kernel"
)

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func TestNewServiceArea(t *testing.T) {
	center := func(t *testing.T) kernel.GeoPoint {
		return mustGeoPoint(t, 37.7749, -122.4194)
	}

	tests := []struct {
		name     string
		areaName string
		radius   float64
		wantErr  bool
	}{
		{
			name:     "valid area",
			areaName: "San Francisco",
			radius:   25000,
			wantErr:  false,
		},
		{
			name:     "empty name",
			areaName: "",
			radius:   25000,
			wantErr:  true,
		},
		{
			name:     "zero radius",
			areaName: "San Francisco",
			radius:   0,
			wantErr:  true,
		},
		{
			name:     "negative radius",
			areaName: "San Francisco",
			radius:   -100,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			area, err := geofence.NewServiceArea(tt.areaName, center(t), tt.radius)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NoError(t, area.Validate())
			assert.Equal(t, tt.areaName, area.Name())
			assert.InDelta(t, tt.radius, area.RadiusMeters(), 1e-9)
		})
	}

	t.Run("unconstructed center is rejected", func(t *testing.T) {
		var invalid kernel.GeoPoint

		_, err := geofence.NewServiceArea("San Francisco", invalid, 25000)

		require.Error(t, err)
	})

	t.Run("zero value area fails validation", func(t *testing.T) {
		var area geofence.ServiceArea

		require.Error(t, area.Validate())
	})
}

func TestServiceArea_Contains(t *testing.T) {
	center := mustGeoPoint(t, 37.7749, -122.4194)

	t.Run("center is contained", func(t *testing.T) {
		area, err := geofence.NewServiceArea("San Francisco", center, 25000)
		require.NoError(t, err)

		contained, err := area.Contains(center)

		require.NoError(t, err)
		assert.True(t, contained)
	})

	t.Run("point beyond radius is not contained", func(t *testing.T) {
		area, err := geofence.NewServiceArea("San Francisco", center, 1000)
		require.NoError(t, err)
		// Oakland downtown, roughly 13 km away.
		far := mustGeoPoint(t, 37.8044, -122.2712)

		contained, err := area.Contains(far)

		require.NoError(t, err)
		assert.False(t, contained)
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		// Build the radius from the same distance formula so the boundary
		// case is exact under floating-point noise.
		edge := mustGeoPoint(t, 37.8044, -122.2712)
		distance, err := center.DistanceMeters(edge)
		require.NoError(t, err)

		area, err := geofence.NewServiceArea("San Francisco", center, distance)
		require.NoError(t, err)

		contained, err := area.Contains(edge)

		require.NoError(t, err)
		assert.True(t, contained)
	})

	t.Run("zero value area fails", func(t *testing.T) {
		var area geofence.ServiceArea

		_, err := area.Contains(center)

		require.Error(t, err)
	})
}

func TestLoadServiceAreas(t *testing.T) {
	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "service_areas.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("loads valid configuration", func(t *testing.T) {
		path := writeFile(t, `
serviceAreas:
  - name: San Francisco
    latitude: 37.7749
    longitude: -122.4194
    radiusMeters: 25000
  - name: Palo Alto
    latitude: 37.4419
    longitude: -122.1430
    radiusMeters: 6000
`)

		areas, err := geofence.LoadServiceAreas(path)

		require.NoError(t, err)
		require.Len(t, areas, 2)
		assert.Equal(t, "San Francisco", areas[0].Name())
		assert.InDelta(t, 25000, areas[0].RadiusMeters(), 1e-9)
		assert.Equal(t, "Palo Alto", areas[1].Name())
		assert.InDelta(t, 6000, areas[1].RadiusMeters(), 1e-9)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := geofence.LoadServiceAreas(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		path := writeFile(t, "serviceAreas: [not: valid: yaml")

		_, err := geofence.LoadServiceAreas(path)

		require.Error(t, err)
	})

	t.Run("empty area list fails", func(t *testing.T) {
		path := writeFile(t, "serviceAreas: []")

		_, err := geofence.LoadServiceAreas(path)

		require.Error(t, err)
	})

	t.Run("invalid entry fails the whole load", func(t *testing.T) {
		path := writeFile(t, `
serviceAreas:
  - name: Broken
    latitude: 137.7749
    longitude: -122.4194
    radiusMeters: 25000
`)

		_, err := geofence.LoadServiceAreas(path)

		require.Error(t, err)
	})
}
