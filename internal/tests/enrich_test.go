package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tastify/internal/domain"
	"tastify/internal/location"
	"tastify/internal/mocks"
	"tastify/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestEnricher_PreservesCardinalityAndContents(t *testing.T) {
	source := mocks.NewSource(t)
	enricher := service.NewEnricher(source, zap.NewNop().Sugar())

	batch := domain.Reviews{Items: []domain.Review{
		{ID: "1", Comment: "good", Latitude: ptr(1), Longitude: ptr(2)},
		{ID: "2", Comment: "fine", Address: "somewhere"},
		{ID: "3", Comment: "meh"},
	}}

	source.On("Resolve", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool { return r.ID == "2" })).
		Return(&domain.Coordinates{Latitude: 10, Longitude: 20}).Once()
	source.On("Resolve", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool { return r.ID == "3" })).
		Return(nil).Once()

	enriched := enricher.EnrichAll(context.Background(), batch)

	assert.Len(t, enriched.Items, 3)
	for i, item := range enriched.Items {
		assert.Equal(t, batch.Items[i].ID, item.ID)
		assert.Equal(t, batch.Items[i].Comment, item.Comment)
	}

	// already-located item untouched
	assert.Equal(t, 1.0, *enriched.Items[0].Latitude)
	// resolved item gained coordinates
	assert.Equal(t, 10.0, *enriched.Items[1].Latitude)
	assert.Equal(t, 20.0, *enriched.Items[1].Longitude)
	// unresolvable item stays without coordinates
	assert.Nil(t, enriched.Items[2].Latitude)

	// the input batch is not mutated
	assert.Nil(t, batch.Items[1].Latitude)
}

func TestEnricher_CancelledContextStopsLookups(t *testing.T) {
	source := mocks.NewSource(t)
	enricher := service.NewEnricher(source, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := domain.Reviews{Items: []domain.Review{
		{ID: "1", Address: "a"},
		{ID: "2", Address: "b"},
	}}

	enriched := enricher.EnrichAll(ctx, batch)

	assert.Len(t, enriched.Items, 2)
	source.AssertNotCalled(t, "Resolve")
}

// End-to-end over the real chain: enrichment then sort, the way the feed
// treats every snapshot.
func TestEnrichAndSort_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":51.5237,"lng":-0.1585}}}]}`))
	}))
	defer server.Close()

	geocoder := location.NewGeocoder(server.URL, "test-key", zap.NewNop().Sugar())
	places := location.NewPlacesClient(server.URL, "test-key")
	chain := location.NewChainSource(location.NewStaticSource(), places, geocoder, nil, zap.NewNop().Sugar())
	enricher := service.NewEnricher(chain, zap.NewNop().Sugar())

	snapshot := domain.Reviews{Items: []domain.Review{
		{ID: "1", CreatedAt: "2024-01-01T00:00:00Z", Address: ""},
		{ID: "2", CreatedAt: "2024-06-01T00:00:00Z", Address: "221B Baker Street, London"},
	}}

	enriched := enricher.EnrichAll(context.Background(), snapshot)
	enriched.SortNewestFirst()

	assert.Len(t, enriched.Items, 2)
	assert.Equal(t, "2", enriched.Items[0].ID)
	assert.Equal(t, "1", enriched.Items[1].ID)
	assert.True(t, enriched.Items[0].HasCoordinates())
	assert.False(t, enriched.Items[1].HasCoordinates())
}
