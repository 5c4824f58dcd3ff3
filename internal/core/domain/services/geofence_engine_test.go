package services_test

import (
	"testing"

	"tracking/internal/core/domain/model/geofence"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func mustArea(t *testing.T, name string, lat, lon, radius float64) geofence.ServiceArea {
	t.Helper()
	area, err := geofence.NewServiceArea(name, mustPoint(t, lat, lon), radius)
	require.NoError(t, err)
	return area
}

func TestGeofenceEngine_IsCovered(t *testing.T) {
	sanFrancisco := mustArea(t, "San Francisco", 37.7749, -122.4194, 25000)
	oakland := mustArea(t, "Oakland", 37.8044, -122.2712, 10000)

	t.Run("should cover point near an area center", func(t *testing.T) {
		engine, err := services.NewGeofenceEngine([]geofence.ServiceArea{sanFrancisco, oakland})
		require.NoError(t, err)

		assert.True(t, engine.IsCovered(mustPoint(t, 37.7790, -122.4090)))
	})

	t.Run("should cover point in any area of the union", func(t *testing.T) {
		engine, err := services.NewGeofenceEngine([]geofence.ServiceArea{sanFrancisco, oakland})
		require.NoError(t, err)

		// Downtown Oakland: outside San Francisco, inside Oakland.
		assert.True(t, engine.IsCovered(mustPoint(t, 37.8049, -122.2708)))
	})

	t.Run("should not cover point outside every area", func(t *testing.T) {
		engine, err := services.NewGeofenceEngine([]geofence.ServiceArea{sanFrancisco, oakland})
		require.NoError(t, err)

		// Sacramento is ~120 km from both centers.
		assert.False(t, engine.IsCovered(mustPoint(t, 38.5816, -121.4944)))
	})

	t.Run("should cover point exactly on an area boundary", func(t *testing.T) {
		center := mustPoint(t, 37.7749, -122.4194)
		onCircle := mustPoint(t, 37.7749, -122.3000)
		radius, err := center.DistanceMeters(onCircle)
		require.NoError(t, err)

		boundary, err := geofence.NewServiceArea("Boundary", center, radius)
		require.NoError(t, err)

		engine, err := services.NewGeofenceEngine([]geofence.ServiceArea{boundary})
		require.NoError(t, err)

		assert.True(t, engine.IsCovered(onCircle))
	})

	t.Run("should not cover unconstructed point", func(t *testing.T) {
		engine, err := services.NewGeofenceEngine([]geofence.ServiceArea{sanFrancisco})
		require.NoError(t, err)

		assert.False(t, engine.IsCovered(kernel.GeoPoint{}))
	})
}

func TestGeofenceEngine_CoveringArea(t *testing.T) {
	inner := mustArea(t, "Inner", 37.7749, -122.4194, 30000)
	outer := mustArea(t, "Outer", 37.7749, -122.4194, 60000)

	t.Run("should return first matching area in configuration order", func(t *testing.T) {
		engine, err := services.NewGeofenceEngine([]geofence.ServiceArea{inner, outer})
		require.NoError(t, err)

		area, covered := engine.CoveringArea(mustPoint(t, 37.7749, -122.4194))

		require.True(t, covered)
		assert.Equal(t, "Inner", area.Name())
	})

	t.Run("should report no area for uncovered point", func(t *testing.T) {
		engine, err := services.NewGeofenceEngine([]geofence.ServiceArea{inner})
		require.NoError(t, err)

		_, covered := engine.CoveringArea(mustPoint(t, 40.7128, -74.0060))

		assert.False(t, covered)
	})
}

func TestNewGeofenceEngine(t *testing.T) {
	t.Run("should return error when no areas configured", func(t *testing.T) {
		_, err := services.NewGeofenceEngine(nil)

		require.Error(t, err)
		require.ErrorIs(t, err, services.ErrNoServiceAreas)
	})

	t.Run("should return error when an area is unconstructed", func(t *testing.T) {
		valid := mustArea(t, "Valid", 37.7749, -122.4194, 1000)

		_, err := services.NewGeofenceEngine([]geofence.ServiceArea{valid, {}})

		require.Error(t, err)
	})

	t.Run("should not observe later mutation of the input slice", func(t *testing.T) {
		areas := []geofence.ServiceArea{mustArea(t, "Kept", 37.7749, -122.4194, 1000)}
		engine, err := services.NewGeofenceEngine(areas)
		require.NoError(t, err)

		areas[0] = geofence.ServiceArea{}

		got := engine.Areas()
		require.Len(t, got, 1)
		assert.Equal(t, "Kept", got[0].Name())
	})
}
