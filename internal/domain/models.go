package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Review is a single user-submitted restaurant review. Documents written by
// older app builds stored createdAt as epoch milliseconds or epoch seconds;
// current builds write ISO-8601 UTC. All three forms stay readable.
type Review struct {
	ID             string   `json:"id"`
	RestaurantID   string   `json:"restaurantId"`
	RestaurantName string   `json:"restaurantName"`
	Rating         int      `json:"rating"`
	Comment        string   `json:"comment"`
	Address        string   `json:"address,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	ImagePath      string   `json:"imageUrl,omitempty"`
	PlaceID        string   `json:"placeId,omitempty"`
	CreatedAt      string   `json:"createdAt,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are set.
// A partial pair counts as absent and gets overwritten by enrichment.
func (r *Review) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

func (r *Review) SetCoordinates(c Coordinates) {
	lat, lng := c.Latitude, c.Longitude
	r.Latitude = &lat
	r.Longitude = &lng
}

// Coordinates is a latitude/longitude pair, always carried together.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Reviews is one full snapshot of the reviews collection.
type Reviews struct {
	Items []Review `json:"items"`
}

// SortNewestFirst orders items descending by creation time. Records with an
// unreadable createdAt sort last instead of erroring out of the list.
func (rs *Reviews) SortNewestFirst() {
	sort.SliceStable(rs.Items, func(i, j int) bool {
		return rs.Items[i].CreatedAtSortKey() > rs.Items[j].CreatedAtSortKey()
	})
}

const createdAtLayout = "2006-01-02T15:04:05.000Z"

// NowUTC returns the canonical createdAt stamp for new reviews.
func NowUTC() string {
	return time.Now().UTC().Format(createdAtLayout)
}

// epoch values below this are seconds, not milliseconds
const millisThreshold = 1_000_000_000_000

// ParseCreatedAt converts a textual createdAt into epoch milliseconds.
// Accepted forms: integer string of epoch millis, integer string of epoch
// seconds, ISO-8601 UTC with or without fractional seconds.
func ParseCreatedAt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < millisThreshold {
			return n * 1000, true
		}
		return n, true
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli(), true
	}

	return 0, false
}

// CreatedAtSortKey returns the review's epoch millis, or the minimum value
// when createdAt is missing or unparseable.
func (r *Review) CreatedAtSortKey() int64 {
	if millis, ok := ParseCreatedAt(r.CreatedAt); ok {
		return millis
	}
	return math.MinInt64
}

// ReviewEvent is the change notification published to Kafka after every
// durable write, prompting listeners to pull a fresh snapshot.
type ReviewEvent struct {
	Type         string    `json:"type"`
	ReviewID     string    `json:"review_id"`
	RestaurantID string    `json:"restaurant_id"`
	Timestamp    time.Time `json:"timestamp"`
}

const EventReviewAdded = "review_added"
