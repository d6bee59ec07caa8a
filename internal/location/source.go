package location

import (
	"context"
	"strings"

	"tastify/internal/domain"

	"go.uber.org/zap"
)

// Source resolves best-effort coordinates for a review. A nil result means
// "leave unresolved"; implementations never return errors because nothing
// downstream can do better than plot nothing.
type Source interface {
	Resolve(ctx context.Context, review *domain.Review) *domain.Coordinates
}

// CoordinateCache remembers resolved geocoding queries so repeated
// enrichment of the same address stays off the network.
type CoordinateCache interface {
	Get(ctx context.Context, query string) (*domain.Coordinates, error)
	Set(ctx context.Context, query string, coords domain.Coordinates) error
}

// ChainSource applies the resolution policy in priority order:
// existing coordinates, static table, place-ID lookup, then geocoding by
// address (or restaurant name). The geocoding step never fails, so the
// chain is total whenever an address or name is present.
type ChainSource struct {
	static   *StaticSource
	places   PlaceLookup
	geocoder AddressGeocoder
	cache    CoordinateCache
	logger   *zap.SugaredLogger
}

// AddressGeocoder is the free-text lookup step. The boolean reports whether
// the result came from the upstream service, as opposed to the fixed
// fallback; the coordinates are usable either way.
type AddressGeocoder interface {
	ResolveAddress(ctx context.Context, query string) (domain.Coordinates, bool)
}

// PlaceLookup resolves an external place-catalog identifier.
type PlaceLookup interface {
	LookupPlace(ctx context.Context, placeID string) (*domain.Coordinates, error)
}

func NewChainSource(static *StaticSource, places PlaceLookup, geocoder AddressGeocoder, cache CoordinateCache, logger *zap.SugaredLogger) *ChainSource {
	return &ChainSource{
		static:   static,
		places:   places,
		geocoder: geocoder,
		cache:    cache,
		logger:   logger,
	}
}

func (s *ChainSource) Resolve(ctx context.Context, review *domain.Review) *domain.Coordinates {
	if review.HasCoordinates() {
		return &domain.Coordinates{Latitude: *review.Latitude, Longitude: *review.Longitude}
	}

	if s.static != nil {
		if c := s.static.Resolve(ctx, review); c != nil {
			return c
		}
	}

	if s.places != nil {
		if id := placeIdentifier(review); id != "" {
			coords, err := s.places.LookupPlace(ctx, id)
			if err != nil {
				s.logger.Warnw("place lookup failed, falling through to geocoding",
					"place_id", id, "error", err)
			} else if coords != nil {
				return coords
			}
		}
	}

	query := strings.TrimSpace(review.Address)
	if query == "" {
		query = strings.TrimSpace(review.RestaurantName)
	}
	if query == "" {
		return nil
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, query); err == nil && cached != nil {
			return cached
		}
	}

	coords, resolved := s.geocoder.ResolveAddress(ctx, query)
	if resolved && s.cache != nil {
		// fallback results are deliberately not cached
		_ = s.cache.Set(ctx, query, coords)
	}
	return &coords
}

// Google place IDs carry a recognizable prefix; anything shorter is assumed
// to be an internal restaurant key.
const (
	placeIDPrefix    = "ChIJ"
	placeIDMinLength = 16
)

// IsPlaceID reports whether an identifier looks like an external
// place-catalog key rather than an internal restaurant ID.
func IsPlaceID(id string) bool {
	return len(id) >= placeIDMinLength && strings.HasPrefix(id, placeIDPrefix)
}

func placeIdentifier(review *domain.Review) string {
	if IsPlaceID(review.PlaceID) {
		return review.PlaceID
	}
	if IsPlaceID(review.RestaurantID) {
		return review.RestaurantID
	}
	return ""
}
