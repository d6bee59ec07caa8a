// Package mocks holds testify mock implementations of the interfaces the
// services consume, for use in table-driven tests.
package mocks

import (
	"context"

	"tastify/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// FeedInterface mocks service.FeedInterface.
type FeedInterface struct {
	mock.Mock
}

func NewFeedInterface(t testingT) *FeedInterface {
	m := &FeedInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *FeedInterface) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *FeedInterface) Refresh() {
	m.Called()
}

func (m *FeedInterface) Close() {
	m.Called()
}

func (m *FeedInterface) State() domain.ReviewsState {
	args := m.Called()
	return args.Get(0).(domain.ReviewsState)
}

func (m *FeedInterface) Refreshing() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *FeedInterface) Updates() <-chan domain.ReviewsState {
	args := m.Called()
	return args.Get(0).(<-chan domain.ReviewsState)
}

func (m *FeedInterface) AddReview(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// ReviewStore mocks storage.ReviewStore.
type ReviewStore struct {
	mock.Mock
}

func NewReviewStore(t testingT) *ReviewStore {
	m := &ReviewStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReviewStore) ListReviews(ctx context.Context) (domain.Reviews, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Reviews), args.Error(1)
}

func (m *ReviewStore) InsertReview(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// EventPublisher mocks storage.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventPublisher) PublishEvent(ctx context.Context, event domain.ReviewEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// Source mocks location.Source.
type Source struct {
	mock.Mock
}

func NewSource(t testingT) *Source {
	m := &Source{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Source) Resolve(ctx context.Context, review *domain.Review) *domain.Coordinates {
	args := m.Called(ctx, review)
	if coords, ok := args.Get(0).(*domain.Coordinates); ok {
		return coords
	}
	return nil
}

// QRGenerator mocks service.QRGenerator.
type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *QRGenerator) Generate(review domain.Review) ([]byte, error) {
	args := m.Called(review)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
