package location

import (
	"context"

	"tastify/internal/domain"
)

// StaticSource answers for a handful of well-known restaurant IDs without
// touching the network. Seed data kept from the demo dataset.
type StaticSource struct {
	table map[string]domain.Coordinates
}

func NewStaticSource() *StaticSource {
	return &StaticSource{
		table: map[string]domain.Coordinates{
			"111": {Latitude: 32.0853, Longitude: 34.7818}, // Tel Aviv
			"222": {Latitude: 31.7683, Longitude: 35.2137}, // Jerusalem
		},
	}
}

func (s *StaticSource) Resolve(_ context.Context, review *domain.Review) *domain.Coordinates {
	if c, ok := s.table[review.RestaurantID]; ok {
		return &c
	}
	return nil
}
