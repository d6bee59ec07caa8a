package service

import (
	"context"

	"tastify/internal/domain"
	"tastify/internal/location"
	"tastify/internal/storage"
)

// ReviewGateway is the feed's view of the persistent store: one live stream
// of full snapshots, one durable write.
type ReviewGateway interface {
	ListenReviews(ctx context.Context) *domain.Subscription
	AddReview(ctx context.Context, review *domain.Review) error
}

// FeedInterface is what the HTTP layer consumes.
type FeedInterface interface {
	Start(ctx context.Context)
	Refresh()
	Close()
	State() domain.ReviewsState
	Refreshing() bool
	Updates() <-chan domain.ReviewsState
	AddReview(ctx context.Context, review *domain.Review) error
}

// QRGenerator renders a shareable code for a located review.
type QRGenerator interface {
	Generate(review domain.Review) ([]byte, error)
}

var _ ReviewGateway = (*storage.LiveGateway)(nil)
var _ FeedInterface = (*ReviewFeed)(nil)
var _ QRGenerator = MapQRGenerator{}
var _ location.Source = (*location.ChainSource)(nil)
