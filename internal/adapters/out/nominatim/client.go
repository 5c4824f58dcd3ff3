// Package nominatim implements the Geocoder port against the OSM Nominatim
// reverse-geocoding HTTP API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client is a reverse-geocoding client for a Nominatim-compatible endpoint.
// Cancellation is delegated to the request context, so a superseded lookup
// aborts mid-flight instead of delivering a late answer.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// reverseResponse mirrors the subset of the Nominatim jsonv2 reverse answer
// the tracking core consumes.
type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
	} `json:"address"`
}

var _ ports.Geocoder = (*Client)(nil)

// NewClient creates a client for the Nominatim endpoint at baseURL.
// The userAgent identifies this application per the Nominatim usage policy.
func NewClient(baseURL string, userAgent string) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// ReverseGeocode resolves point via GET /reverse. The city/town/village
// levels map onto Placemark.Locality in that order of preference; the state
// level maps onto AdministrativeArea.
func (c *Client) ReverseGeocode(ctx context.Context, point kernel.GeoPoint) (ports.Placemark, error) {
	if err := point.Validate(); err != nil {
		return ports.Placemark{}, err
	}

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(point.Latitude(), 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(point.Longitude(), 'f', -1, 64))

	requestURL := c.baseURL + "/reverse?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return ports.Placemark{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Placemark{}, fmt.Errorf("reverse geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.Placemark{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return ports.Placemark{}, fmt.Errorf("reverse geocoding returned HTTP %d: %s",
			resp.StatusCode, string(body))
	}

	var decoded reverseResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return ports.Placemark{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return ports.Placemark{
		Locality:           firstNonEmpty(decoded.Address.City, decoded.Address.Town, decoded.Address.Village),
		AdministrativeArea: decoded.Address.State,
		DisplayName:        decoded.DisplayName,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
