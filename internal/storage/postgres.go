package storage

import (
	"context"
	"database/sql"
	"fmt"

	"tastify/internal/domain"

	"github.com/google/uuid"
)

// PostgresStore holds the reviews collection. The schema mirrors the mobile
// document store: string IDs, optional fields nullable, createdAt kept as
// text because legacy records carry epoch strings.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) ListReviews(ctx context.Context) (domain.Reviews, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, restaurant_id, restaurant_name, rating, comment,
		       address, latitude, longitude, image_url, place_id, created_at
		FROM reviews
	`)
	if err != nil {
		return domain.Reviews{}, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews domain.Reviews
	for rows.Next() {
		var (
			review    domain.Review
			address   sql.NullString
			latitude  sql.NullFloat64
			longitude sql.NullFloat64
			imageURL  sql.NullString
			placeID   sql.NullString
			createdAt sql.NullString
		)
		if err := rows.Scan(&review.ID, &review.RestaurantID, &review.RestaurantName,
			&review.Rating, &review.Comment, &address, &latitude, &longitude,
			&imageURL, &placeID, &createdAt); err != nil {
			return domain.Reviews{}, fmt.Errorf("failed to scan review: %w", err)
		}

		review.Address = address.String
		review.ImagePath = imageURL.String
		review.PlaceID = placeID.String
		review.CreatedAt = createdAt.String
		if latitude.Valid && longitude.Valid {
			review.SetCoordinates(domain.Coordinates{
				Latitude:  latitude.Float64,
				Longitude: longitude.Float64,
			})
		}

		reviews.Items = append(reviews.Items, review)
	}
	if err := rows.Err(); err != nil {
		return domain.Reviews{}, fmt.Errorf("failed to read reviews: %w", err)
	}
	return reviews, nil
}

func (s *PostgresStore) InsertReview(ctx context.Context, review *domain.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO reviews (id, restaurant_id, restaurant_name, rating, comment,
		                     address, latitude, longitude, image_url, place_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, review.ID, review.RestaurantID, review.RestaurantName, review.Rating, review.Comment,
		nullString(review.Address), nullFloat(review.Latitude), nullFloat(review.Longitude),
		nullString(review.ImagePath), nullString(review.PlaceID), nullString(review.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
