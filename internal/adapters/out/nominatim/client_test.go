package nominatim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tracking/internal/adapters/out/nominatim"
	"tracking/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoint(t *testing.T) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(37.7749, -122.4194)
	require.NoError(t, err)
	return point
}

func TestClient_ReverseGeocode(t *testing.T) {
	t.Run("should map city and state from jsonv2 answer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
			assert.Equal(t, "37.7749", r.URL.Query().Get("lat"))
			assert.Equal(t, "-122.4194", r.URL.Query().Get("lon"))
			assert.NotEmpty(t, r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"display_name": "San Francisco, California, United States",
				"address": {"city": "San Francisco", "state": "California"}
			}`))
		}))
		defer server.Close()

		client := nominatim.NewClient(server.URL, "tracking-test/1.0")

		placemark, err := client.ReverseGeocode(context.Background(), testPoint(t))

		require.NoError(t, err)
		assert.Equal(t, "San Francisco", placemark.Locality)
		assert.Equal(t, "California", placemark.AdministrativeArea)
		assert.Equal(t, "San Francisco, California, United States", placemark.DisplayName)
	})

	t.Run("should prefer city over town and village", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"address": {"city": "Oakland", "town": "Alameda", "village": "Hamlet"}}`))
		}))
		defer server.Close()

		client := nominatim.NewClient(server.URL, "tracking-test/1.0")

		placemark, err := client.ReverseGeocode(context.Background(), testPoint(t))

		require.NoError(t, err)
		assert.Equal(t, "Oakland", placemark.Locality)
	})

	t.Run("should fall back to town when city is absent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"address": {"town": "Sausalito", "state": "California"}}`))
		}))
		defer server.Close()

		client := nominatim.NewClient(server.URL, "tracking-test/1.0")

		placemark, err := client.ReverseGeocode(context.Background(), testPoint(t))

		require.NoError(t, err)
		assert.Equal(t, "Sausalito", placemark.Locality)
	})

	t.Run("should return error on non-200 answer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := nominatim.NewClient(server.URL, "tracking-test/1.0")

		_, err := client.ReverseGeocode(context.Background(), testPoint(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 429")
	})

	t.Run("should return promptly when context is cancelled", func(t *testing.T) {
		blocked := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			<-blocked
		}))
		defer server.Close()
		defer close(blocked)

		client := nominatim.NewClient(server.URL, "tracking-test/1.0")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.ReverseGeocode(ctx, testPoint(t))

		require.Error(t, err)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("should return error for unconstructed point", func(t *testing.T) {
		client := nominatim.NewClient("http://unused.invalid", "tracking-test/1.0")

		_, err := client.ReverseGeocode(context.Background(), kernel.GeoPoint{})

		require.Error(t, err)
	})
}
