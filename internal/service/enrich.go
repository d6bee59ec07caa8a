package service

import (
	"context"

	"tastify/internal/domain"
	"tastify/internal/location"

	"go.uber.org/zap"
)

// Enricher fills in missing coordinates on reviews. The same instance runs
// on every snapshot from the store and once at write time, so both paths
// share one resolution policy.
type Enricher struct {
	source location.Source
	logger *zap.SugaredLogger
}

func NewEnricher(source location.Source, logger *zap.SugaredLogger) *Enricher {
	return &Enricher{source: source, logger: logger}
}

// Enrich resolves coordinates for one review. Already-located reviews pass
// through untouched.
func (e *Enricher) Enrich(ctx context.Context, review domain.Review) domain.Review {
	if review.HasCoordinates() {
		return review
	}
	if coords := e.source.Resolve(ctx, &review); coords != nil {
		review.SetCoordinates(*coords)
	}
	return review
}

// EnrichAll maps Enrich over a snapshot. The result has exactly the same
// item count and order; only coordinate fields may change. Cancellation
// stops the remaining lookups, the caller discards the partial result.
func (e *Enricher) EnrichAll(ctx context.Context, reviews domain.Reviews) domain.Reviews {
	items := make([]domain.Review, len(reviews.Items))
	copy(items, reviews.Items)

	for i := range items {
		if ctx.Err() != nil {
			break
		}
		items[i] = e.Enrich(ctx, items[i])
	}

	return domain.Reviews{Items: items}
}
