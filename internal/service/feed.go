package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"tastify/internal/domain"

	"go.uber.org/zap"
)

// ReviewFeed owns the UI-observable ReviewsState. It subscribes to the
// gateway's live stream, funnels every snapshot through enrichment and the
// sort policy, and publishes the result atomically. One writer, any number
// of readers.
//
// When snapshots arrive faster than enrichment finishes, only the newest
// one wins: each snapshot bumps a generation counter and cancels the
// in-flight enrichment, and a result is published only if its generation is
// still current. A subscription failure and a refresh supersede in-flight
// work the same way.
type ReviewFeed struct {
	gateway  ReviewGateway
	enricher *Enricher
	logger   *zap.SugaredLogger

	gen     atomic.Uint64
	updates chan domain.ReviewsState

	mu           sync.RWMutex
	state        domain.ReviewsState
	refreshing   bool
	baseCtx      context.Context
	sub          *domain.Subscription
	cancelSub    context.CancelFunc
	cancelEnrich context.CancelFunc
}

func NewReviewFeed(gateway ReviewGateway, enricher *Enricher, logger *zap.SugaredLogger) *ReviewFeed {
	return &ReviewFeed{
		gateway:  gateway,
		enricher: enricher,
		logger:   logger,
		state:    domain.LoadingState(),
		updates:  make(chan domain.ReviewsState, 16),
	}
}

// Start opens the first subscription. The feed keeps emitting until ctx is
// done or the gateway signals a failure; after a failure Refresh opens a
// fresh attempt.
func (f *ReviewFeed) Start(ctx context.Context) {
	f.mu.Lock()
	f.baseCtx = ctx
	f.mu.Unlock()
	f.Refresh()
}

// Refresh cancels the current subscription, discards in-flight enrichment,
// and subscribes anew. If data is already on screen it stays visible and
// Refreshing reports true until the next publication; otherwise the feed
// re-enters Loading.
func (f *ReviewFeed) Refresh() {
	f.mu.Lock()
	base := f.baseCtx
	if base == nil {
		base = context.Background()
		f.baseCtx = base
	}
	f.dropSubscriptionLocked()
	f.gen.Add(1)
	if f.state.Status == domain.FeedLoaded {
		f.refreshing = true
	} else {
		f.state = domain.LoadingState()
	}

	subCtx, cancel := context.WithCancel(base)
	f.cancelSub = cancel
	sub := f.gateway.ListenReviews(subCtx)
	f.sub = sub
	f.mu.Unlock()

	go f.consume(subCtx, sub)
}

// Close tears the feed down.
func (f *ReviewFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropSubscriptionLocked()
}

// dropSubscriptionLocked cancels the active subscription, its consuming
// goroutine, and any in-flight enrichment tied to it. Callers hold f.mu.
func (f *ReviewFeed) dropSubscriptionLocked() {
	if f.sub != nil {
		f.sub.Cancel()
		f.sub = nil
	}
	if f.cancelSub != nil {
		f.cancelSub()
		f.cancelSub = nil
	}
	if f.cancelEnrich != nil {
		f.cancelEnrich()
		f.cancelEnrich = nil
	}
}

func (f *ReviewFeed) State() domain.ReviewsState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

func (f *ReviewFeed) Refreshing() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.refreshing
}

// Updates streams every published state. Slow readers miss intermediate
// values rather than blocking the pipeline.
func (f *ReviewFeed) Updates() <-chan domain.ReviewsState {
	return f.updates
}

func (f *ReviewFeed) consume(ctx context.Context, sub *domain.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-sub.Snapshots:
			if !ok {
				// stream ended; a failure signal may still be pending
				if err, pending := <-sub.Errs; pending && err != nil {
					f.failSubscription(sub, err)
				}
				return
			}
			f.handleSnapshot(ctx, sub, snapshot)
		case err, ok := <-sub.Errs:
			if !ok {
				return
			}
			f.failSubscription(sub, err)
			return
		}
	}
}

// failSubscription ends the given attempt with an Error state. The attempt
// is superseded before publishing: the generation moves on and in-flight
// enrichment is cancelled, so no stale snapshot can overwrite the Error.
// Failures from an already-replaced subscription are ignored.
func (f *ReviewFeed) failSubscription(sub *domain.Subscription, err error) {
	f.mu.Lock()
	if f.sub != sub {
		f.mu.Unlock()
		return
	}
	f.logger.Errorw("review subscription failed", "error", err)
	f.dropSubscriptionLocked()
	f.gen.Add(1)
	state := domain.ErrorState(err.Error())
	f.state = state
	f.refreshing = false
	f.mu.Unlock()

	f.notify(state)
}

// handleSnapshot starts enrichment for one snapshot off the consuming
// goroutine, so a newer snapshot can supersede it mid-flight. Snapshots
// that lost the race against a refresh are dropped before they can touch
// the generation counter.
func (f *ReviewFeed) handleSnapshot(ctx context.Context, sub *domain.Subscription, snapshot domain.Reviews) {
	f.mu.Lock()
	if f.sub != sub || ctx.Err() != nil {
		f.mu.Unlock()
		return
	}
	gen := f.gen.Add(1)
	if f.cancelEnrich != nil {
		f.cancelEnrich()
	}
	enrichCtx, cancel := context.WithCancel(ctx)
	f.cancelEnrich = cancel
	f.mu.Unlock()

	go func() {
		defer cancel()

		enriched := f.enricher.EnrichAll(enrichCtx, snapshot)
		if enrichCtx.Err() != nil {
			return
		}
		enriched.SortNewestFirst()
		f.publishIfCurrent(gen, domain.LoadedState(enriched))
	}()
}

// publishIfCurrent installs a new state unless a newer snapshot, a
// refresh, or a failure has taken over since this one started.
func (f *ReviewFeed) publishIfCurrent(gen uint64, state domain.ReviewsState) {
	f.mu.Lock()
	if f.gen.Load() != gen {
		f.mu.Unlock()
		return
	}
	f.state = state
	f.refreshing = false
	f.mu.Unlock()

	f.notify(state)
}

func (f *ReviewFeed) publish(state domain.ReviewsState) {
	f.mu.Lock()
	f.state = state
	f.refreshing = false
	f.mu.Unlock()

	f.notify(state)
}

func (f *ReviewFeed) notify(state domain.ReviewsState) {
	select {
	case f.updates <- state:
	default:
	}
}

// AddReview stamps, enriches, and persists a new review, then relies on the
// live stream to deliver the refreshed list. No optimistic local insert.
func (f *ReviewFeed) AddReview(ctx context.Context, review *domain.Review) error {
	if strings.TrimSpace(review.CreatedAt) == "" {
		review.CreatedAt = domain.NowUTC()
	}

	if !review.HasCoordinates() && strings.TrimSpace(review.Address) != "" {
		enriched := f.enricher.Enrich(ctx, *review)
		*review = enriched
	}

	if err := f.gateway.AddReview(ctx, review); err != nil {
		f.logger.Errorw("failed to add review", "review_id", review.ID, "error", err)
		f.publish(domain.ErrorState("Failed to add review: " + err.Error()))
		return err
	}

	// without an active subscription there is no stream to clear the flag
	f.mu.Lock()
	if f.sub != nil {
		f.refreshing = true
	}
	f.mu.Unlock()
	return nil
}
