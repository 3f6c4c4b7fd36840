package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInput(now time.Time) ListingInput {
	return ListingInput{
		Title:         "Surplus bread",
		Description:   "Two crates of day-old sourdough",
		FoodType:      "VEG",
		Quantity:      "2 crates",
		ExpiryTime:    now.Add(6 * time.Hour).Format(time.RFC3339),
		PickupAddress: "Bakery, 4 Mill Lane",
		PickupLat:     51.5,
		PickupLng:     -0.12,
		ContactPhone:  "+441234567890",
	}
}

func TestValidateListing(t *testing.T) {
	now := time.Now()

	expiry, appErr := ValidateListing(baseInput(now), now)
	require.Nil(t, appErr)
	assert.True(t, expiry.After(now))
}

func TestValidateListingCollectsEveryViolation(t *testing.T) {
	now := time.Now()

	_, appErr := ValidateListing(ListingInput{}, now)
	require.NotNil(t, appErr)
	assert.ElementsMatch(t, []string{
		"title", "description", "food_type", "quantity",
		"pickup_address", "contact_phone", "expiry_time",
	}, appErr.Fields)
}

func TestValidateListingFields(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name   string
		mutate func(*ListingInput)
		field  string
	}{
		{"WhitespaceTitle", func(in *ListingInput) { in.Title = "   " }, "title"},
		{"UnknownFoodType", func(in *ListingInput) { in.FoodType = "RAW" }, "food_type"},
		{"LatitudeOutOfRange", func(in *ListingInput) { in.PickupLat = 91 }, "coordinates"},
		{"LongitudeOutOfRange", func(in *ListingInput) { in.PickupLng = -181 }, "coordinates"},
		{"MalformedExpiry", func(in *ListingInput) { in.ExpiryTime = "tomorrow" }, "expiry_time"},
		{"PastExpiry", func(in *ListingInput) {
			in.ExpiryTime = now.Add(-time.Minute).Format(time.RFC3339)
		}, "expiry_time"},
		{"ExpiryEqualToNow", func(in *ListingInput) {
			in.ExpiryTime = now.Truncate(time.Second).Format(time.RFC3339)
		}, "expiry_time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInput(now)
			tc.mutate(&in)
			_, appErr := ValidateListing(in, now)
			require.NotNil(t, appErr)
			assert.Equal(t, []string{tc.field}, appErr.Fields)
		})
	}
}

func TestValidateListingAcceptsAllFoodTypes(t *testing.T) {
	now := time.Now()
	for _, foodType := range []string{"VEG", "NON_VEG", "BOTH"} {
		in := baseInput(now)
		in.FoodType = foodType
		_, appErr := ValidateListing(in, now)
		assert.Nil(t, appErr, "food type %s should be accepted", foodType)
	}
}
