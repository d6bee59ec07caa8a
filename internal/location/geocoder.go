package location

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"tastify/internal/domain"

	"go.uber.org/zap"
)

const (
	defaultGeocodingURL = "https://maps.googleapis.com/maps/api/geocode/json"
	resolveTimeout      = 5 * time.Second
)

// Fallback is the designated default city center returned whenever
// geocoding cannot produce a real answer. The map always gets a point.
var Fallback = domain.Coordinates{Latitude: 32.0853, Longitude: 34.7818}

// Geocoder translates free-text addresses into coordinates through the
// geocoding web API. Every failure mode (timeout, HTTP error, malformed
// body, empty result set) degrades to Fallback instead of an error.
type Geocoder struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *zap.SugaredLogger
}

func NewGeocoder(baseURL, apiKey string, logger *zap.SugaredLogger) *Geocoder {
	if baseURL == "" {
		baseURL = defaultGeocodingURL
	}
	return &Geocoder{
		client:  &http.Client{Timeout: resolveTimeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
	Status  string            `json:"status"`
}

type geocodingResult struct {
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// ResolveAddress geocodes a free-text query. The boolean is false when the
// returned coordinates are the fallback rather than a real resolution.
func (g *Geocoder) ResolveAddress(ctx context.Context, query string) (domain.Coordinates, bool) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.requestURL(query), nil)
	if err != nil {
		g.logger.Warnw("geocoding request build failed", "query", query, "error", err)
		return Fallback, false
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warnw("geocoding request failed", "query", query, "error", err)
		return Fallback, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warnw("geocoding returned non-OK status", "query", query, "code", resp.StatusCode)
		return Fallback, false
	}

	var payload geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		g.logger.Warnw("geocoding response malformed", "query", query, "error", err)
		return Fallback, false
	}

	if len(payload.Results) == 0 {
		g.logger.Warnw("geocoding returned no results", "query", query, "status", payload.Status)
		return Fallback, false
	}

	loc := payload.Results[0].Geometry.Location
	g.logger.Infow("geocoding success", "query", query, "lat", loc.Lat, "lng", loc.Lng)
	return domain.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, true
}

func (g *Geocoder) requestURL(query string) string {
	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.apiKey)
	return g.baseURL + "?" + params.Encode()
}
