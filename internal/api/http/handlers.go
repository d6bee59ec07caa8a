package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"tastify/internal/domain"
	"tastify/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Handler struct {
	Feed service.FeedInterface
	QR   service.QRGenerator
}

func NewHandler(feed service.FeedInterface, qr service.QRGenerator) *Handler {
	return &Handler{Feed: feed, QR: qr}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/reviews", h.getReviews).Methods("GET")
	r.HandleFunc("/api/reviews", h.createReview).Methods("POST")
	r.HandleFunc("/api/reviews/refresh", h.refresh).Methods("POST")
	r.HandleFunc("/api/reviews/{reviewId}/qr", h.reviewQR).Methods("GET")
}

type feedResponse struct {
	Status     string          `json:"status"`
	Refreshing bool            `json:"refreshing"`
	Reviews    []domain.Review `json:"reviews,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func (h *Handler) getReviews(w http.ResponseWriter, r *http.Request) {
	state := h.Feed.State()

	resp := feedResponse{
		Status:     state.Status.String(),
		Refreshing: h.Feed.Refreshing(),
	}
	switch state.Status {
	case domain.FeedLoaded:
		resp.Reviews = state.Reviews.Items
	case domain.FeedError:
		resp.Error = state.ErrorMessage
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type createReviewPayload struct {
	RestaurantID   string `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
	Rating         int    `json:"rating" validate:"min=0,max=5"`
	Comment        string `json:"comment"`
	Address        string `json:"address"`
	ImagePath      string `json:"imageUrl"`
	PlaceID        string `json:"placeId"`
	CreatedAt      string `json:"createdAt"`
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var payload createReviewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	review := domain.Review{
		RestaurantID:   payload.RestaurantID,
		RestaurantName: payload.RestaurantName,
		Rating:         payload.Rating,
		Comment:        payload.Comment,
		Address:        payload.Address,
		ImagePath:      payload.ImagePath,
		PlaceID:        payload.PlaceID,
		CreatedAt:      payload.CreatedAt,
	}

	if err := h.Feed.AddReview(r.Context(), &review); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// the refreshed list arrives through the live stream
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(review)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	h.Feed.Refresh()
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) reviewQR(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)["reviewId"]

	state := h.Feed.State()
	if state.Status != domain.FeedLoaded {
		http.Error(w, "reviews not loaded", http.StatusConflict)
		return
	}

	for _, review := range state.Reviews.Items {
		if review.ID != reviewID {
			continue
		}
		png, err := h.QR.Generate(review)
		if errors.Is(err, service.ErrNoCoordinates) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
		return
	}

	http.Error(w, "review not found", http.StatusNotFound)
}
