package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "tastify/internal/api/http"
	"tastify/internal/domain"
	"tastify/internal/mocks"
	"tastify/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestRouter(feed *mocks.FeedInterface) *mux.Router {
	handler := httpapi.NewHandler(feed, service.MapQRGenerator{})
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestHandler_getReviews(t *testing.T) {
	located := domain.Review{ID: "1", RestaurantName: "Falafel Gina", Rating: 5,
		Latitude: ptr(32.08), Longitude: ptr(34.78), CreatedAt: "2024-06-01T00:00:00Z"}

	tests := []struct {
		name         string
		prepareMocks func(feed *mocks.FeedInterface)
		expectedBody string
	}{
		{
			name: "loading",
			prepareMocks: func(feed *mocks.FeedInterface) {
				feed.On("State").Return(domain.LoadingState()).Once()
				feed.On("Refreshing").Return(false).Once()
			},
			expectedBody: `"status":"loading"`,
		},
		{
			name: "loaded",
			prepareMocks: func(feed *mocks.FeedInterface) {
				feed.On("State").Return(domain.LoadedState(domain.Reviews{Items: []domain.Review{located}})).Once()
				feed.On("Refreshing").Return(true).Once()
			},
			expectedBody: `"restaurantName":"Falafel Gina"`,
		},
		{
			name: "error",
			prepareMocks: func(feed *mocks.FeedInterface) {
				feed.On("State").Return(domain.ErrorState("the reviews did not load!")).Once()
				feed.On("Refreshing").Return(false).Once()
			},
			expectedBody: `"error":"the reviews did not load!"`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			feed := mocks.NewFeedInterface(t)
			testCase.prepareMocks(feed)
			router := setupTestRouter(feed)

			req := httptest.NewRequest("GET", "/api/reviews", nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
		})
	}
}

func TestHandler_createReview(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		prepareMocks func(feed *mocks.FeedInterface)
		expectedCode int
	}{
		{
			name:    "accepted",
			payload: `{"restaurantId":"111","restaurantName":"Falafel Gina","rating":5,"comment":"great"}`,
			prepareMocks: func(feed *mocks.FeedInterface) {
				feed.On("AddReview", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedCode: http.StatusAccepted,
		},
		{
			name:         "invalid_json",
			payload:      `bad json`,
			prepareMocks: func(feed *mocks.FeedInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "rating_out_of_range",
			payload:      `{"restaurantId":"111","rating":9}`,
			prepareMocks: func(feed *mocks.FeedInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "write_failure",
			payload: `{"restaurantId":"111","rating":4}`,
			prepareMocks: func(feed *mocks.FeedInterface) {
				feed.On("AddReview", mock.Anything, mock.Anything).
					Return(errors.New("store down")).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			feed := mocks.NewFeedInterface(t)
			testCase.prepareMocks(feed)
			router := setupTestRouter(feed)

			req := httptest.NewRequest("POST", "/api/reviews", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_refresh(t *testing.T) {
	feed := mocks.NewFeedInterface(t)
	feed.On("Refresh").Once()
	router := setupTestRouter(feed)

	req := httptest.NewRequest("POST", "/api/reviews/refresh", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusAccepted, recorder.Code)
}

func TestHandler_reviewQR(t *testing.T) {
	located := domain.Review{ID: "1", Latitude: ptr(32.08), Longitude: ptr(34.78)}
	unlocated := domain.Review{ID: "2"}
	loaded := domain.LoadedState(domain.Reviews{Items: []domain.Review{located, unlocated}})

	tests := []struct {
		name         string
		reviewID     string
		state        domain.ReviewsState
		expectedCode int
		expectedType string
	}{
		{
			name:         "located_review_returns_png",
			reviewID:     "1",
			state:        loaded,
			expectedCode: http.StatusOK,
			expectedType: "image/png",
		},
		{
			name:         "review_without_coordinates",
			reviewID:     "2",
			state:        loaded,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "unknown_review",
			reviewID:     "nope",
			state:        loaded,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "feed_not_loaded",
			reviewID:     "1",
			state:        domain.LoadingState(),
			expectedCode: http.StatusConflict,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			feed := mocks.NewFeedInterface(t)
			feed.On("State").Return(testCase.state).Once()
			router := setupTestRouter(feed)

			req := httptest.NewRequest("GET", "/api/reviews/"+testCase.reviewID+"/qr", nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedType != "" {
				assert.Equal(t, testCase.expectedType, recorder.Header().Get("Content-Type"))
				assert.NotEmpty(t, recorder.Body.Bytes())
			}
		})
	}
}

func TestHandler_createReviewEchoesStampedReview(t *testing.T) {
	feed := mocks.NewFeedInterface(t)
	feed.On("AddReview", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
		return r.RestaurantID == "111" && r.Rating == 5
	})).Run(func(args mock.Arguments) {
		review := args.Get(1).(*domain.Review)
		review.ID = "assigned"
		review.CreatedAt = domain.NowUTC()
	}).Return(nil).Once()

	router := setupTestRouter(feed)
	payload := `{"restaurantId":"111","rating":5,"comment":"great"}`
	req := httptest.NewRequest("POST", "/api/reviews", bytes.NewBufferString(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusAccepted, recorder.Code)

	var echoed domain.Review
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &echoed))
	assert.Equal(t, "assigned", echoed.ID)
	assert.NotEmpty(t, echoed.CreatedAt)
}
