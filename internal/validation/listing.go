// Package validation validates user-supplied input for the lifecycle core.
package validation

import (
	"math"
	"strings"
	"time"

	"mealbridge/internal/models"
)

// ListingInput carries the user-supplied fields for creating or updating a
// food listing. ExpiryTime arrives as an RFC 3339 string from the
// presentation layer and is parsed here.
type ListingInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	FoodType      string  `json:"food_type"`
	Quantity      string  `json:"quantity"`
	ExpiryTime    string  `json:"expiry_time"`
	PickupAddress string  `json:"pickup_address"`
	PickupLat     float64 `json:"pickup_lat"`
	PickupLng     float64 `json:"pickup_lng"`
	ShowExactMap  bool    `json:"show_exact_map"`
	ContactPhone  string  `json:"contact_phone"`
}

// ValidateListing checks every field and reports all violations at once.
// On success it returns the parsed expiry instant.
func ValidateListing(in ListingInput, now time.Time) (time.Time, *models.AppError) {
	var violations []string

	if strings.TrimSpace(in.Title) == "" {
		violations = append(violations, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		violations = append(violations, "description")
	}
	switch models.FoodType(in.FoodType) {
	case models.FoodTypeVeg, models.FoodTypeNonVeg, models.FoodTypeBoth:
	default:
		violations = append(violations, "food_type")
	}
	if strings.TrimSpace(in.Quantity) == "" {
		violations = append(violations, "quantity")
	}
	if strings.TrimSpace(in.PickupAddress) == "" {
		violations = append(violations, "pickup_address")
	}
	if strings.TrimSpace(in.ContactPhone) == "" {
		violations = append(violations, "contact_phone")
	}
	if !validCoordinates(in.PickupLat, in.PickupLng) {
		violations = append(violations, "coordinates")
	}

	var expiry time.Time
	if strings.TrimSpace(in.ExpiryTime) == "" {
		violations = append(violations, "expiry_time")
	} else {
		parsed, err := time.Parse(time.RFC3339, in.ExpiryTime)
		switch {
		case err != nil:
			violations = append(violations, "expiry_time")
		case !parsed.After(now):
			violations = append(violations, "expiry_time")
		default:
			expiry = parsed
		}
	}

	if len(violations) > 0 {
		return time.Time{}, models.NewFieldValidationError(violations)
	}
	return expiry, nil
}

func validCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
