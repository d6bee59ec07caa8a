package domain

import "context"

// Subscription is a cancelable handle on the store's live review stream.
// Snapshots carries full-replacement lists; Errs carries at most one failure
// signal, after which the attempt is over and both channels close.
type Subscription struct {
	Snapshots <-chan Reviews
	Errs      <-chan error

	cancel context.CancelFunc
}

func NewSubscription(snapshots <-chan Reviews, errs <-chan error, cancel context.CancelFunc) *Subscription {
	return &Subscription{Snapshots: snapshots, Errs: errs, cancel: cancel}
}

// Cancel stops the stream. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}
