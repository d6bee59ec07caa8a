package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tastify/internal/domain"

	"go.uber.org/zap"
)

// ReviewStore is the durable half of the gateway.
type ReviewStore interface {
	ListReviews(ctx context.Context) (domain.Reviews, error)
	InsertReview(ctx context.Context, review *domain.Review) error
}

// EventPublisher announces a completed write to the change-event topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event domain.ReviewEvent) error
}

// LiveGateway turns "durable table + change events" into the live-query
// contract the feed consumes: a new subscription gets one full snapshot up
// front, then a fresh full snapshot after every change event. The gateway
// never reads its own writes directly; AddReview publishes an event and the
// subscription picks the change up like any other.
type LiveGateway struct {
	store     ReviewStore
	reader    MessageReader
	publisher EventPublisher
	logger    *zap.SugaredLogger
}

func NewLiveGateway(store ReviewStore, reader MessageReader, publisher EventPublisher, logger *zap.SugaredLogger) *LiveGateway {
	return &LiveGateway{
		store:     store,
		reader:    reader,
		publisher: publisher,
		logger:    logger,
	}
}

func (g *LiveGateway) ListenReviews(ctx context.Context) *domain.Subscription {
	ctx, cancel := context.WithCancel(ctx)
	snapshots := make(chan domain.Reviews)
	errs := make(chan error, 1)

	go g.stream(ctx, snapshots, errs)

	return domain.NewSubscription(snapshots, errs, cancel)
}

func (g *LiveGateway) stream(ctx context.Context, snapshots chan<- domain.Reviews, errs chan<- error) {
	defer close(snapshots)
	defer close(errs)

	if !g.emitSnapshot(ctx, snapshots, errs) {
		return
	}

	for {
		message, err := g.reader.ReadMessage(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			errs <- fmt.Errorf("review stream failed: %w", err)
			return
		}

		var event domain.ReviewEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			g.logger.Warnw("skipping malformed review event", "error", err)
			continue
		}
		if event.Type != domain.EventReviewAdded {
			continue
		}

		if !g.emitSnapshot(ctx, snapshots, errs) {
			return
		}
	}
}

// emitSnapshot queries the full collection and pushes it downstream.
// Returns false when the subscription should end.
func (g *LiveGateway) emitSnapshot(ctx context.Context, snapshots chan<- domain.Reviews, errs chan<- error) bool {
	reviews, err := g.store.ListReviews(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		errs <- err
		return false
	}

	select {
	case snapshots <- reviews:
		return true
	case <-ctx.Done():
		return false
	}
}

func (g *LiveGateway) AddReview(ctx context.Context, review *domain.Review) error {
	if err := g.store.InsertReview(ctx, review); err != nil {
		return err
	}

	event := domain.ReviewEvent{
		Type:         domain.EventReviewAdded,
		ReviewID:     review.ID,
		RestaurantID: review.RestaurantID,
		Timestamp:    time.Now(),
	}
	if err := g.publisher.PublishEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to emit review event: %w", err)
	}

	g.logger.Infow("review persisted", "review_id", review.ID, "restaurant_id", review.RestaurantID)
	return nil
}
