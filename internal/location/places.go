package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"tastify/internal/domain"
)

const defaultPlacesURL = "https://maps.googleapis.com/maps/api/place/details/json"

// PlacesClient looks up coordinates by place-catalog identifier. Unlike the
// address geocoder it reports failures: the resolver chain falls through to
// free-text geocoding instead of defaulting.
type PlacesClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewPlacesClient(baseURL, apiKey string) *PlacesClient {
	if baseURL == "" {
		baseURL = defaultPlacesURL
	}
	return &PlacesClient{
		client:  &http.Client{Timeout: resolveTimeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type placeDetailsResponse struct {
	Result struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
	Status string `json:"status"`
}

func (c *PlacesClient) LookupPlace(ctx context.Context, placeID string) (*domain.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "geometry")
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("place lookup returned status %d", resp.StatusCode)
	}

	var payload placeDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode place details: %w", err)
	}

	if payload.Status != "OK" {
		return nil, fmt.Errorf("place lookup status %q", payload.Status)
	}

	loc := payload.Result.Geometry.Location
	return &domain.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
