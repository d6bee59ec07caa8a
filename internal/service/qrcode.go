package service

import (
	"errors"
	"fmt"

	"tastify/internal/domain"

	"github.com/skip2/go-qrcode"
)

var ErrNoCoordinates = errors.New("review has no coordinates to share")

// MapQRGenerator encodes a maps link to the review's location, so a phone
// pointed at the screen opens the restaurant on a map.
type MapQRGenerator struct{}

func (g MapQRGenerator) Generate(review domain.Review) ([]byte, error) {
	if !review.HasCoordinates() {
		return nil, ErrNoCoordinates
	}
	qrData := fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%f,%f",
		*review.Latitude, *review.Longitude)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
