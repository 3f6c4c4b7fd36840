package service

import (
	"context"
	"testing"
	"time"

	"mealbridge/internal/models"
	"mealbridge/internal/repository"
	"mealbridge/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newListingService(db *gorm.DB) *ListingService {
	return NewListingService(db,
		repository.NewListingRepository(db),
		repository.NewReservationRepository(db))
}

func validListingInput() validation.ListingInput {
	return validation.ListingInput{
		Title:         "Surplus bread",
		Description:   "Two crates of day-old sourdough",
		FoodType:      "VEG",
		Quantity:      "2 crates",
		ExpiryTime:    time.Now().Add(12 * time.Hour).Format(time.RFC3339),
		PickupAddress: "Bakery, 4 Mill Lane",
		PickupLat:     51.5,
		PickupLng:     -0.12,
		ShowExactMap:  true,
		ContactPhone:  "+441234567890",
	}
}

func TestCreateListing(t *testing.T) {
	db := newTestDB(t)
	svc := newListingService(db)
	donor := createUser(t, db, "donor-1", models.RoleDonor)
	ctx := context.Background()

	listing, err := svc.Create(ctx, donor, validListingInput())
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusActive, listing.Status)
	assert.Equal(t, donor.ID, listing.DonorID)
	assert.NotZero(t, listing.ID)
}

func TestCreateListingReportsAllViolations(t *testing.T) {
	db := newTestDB(t)
	svc := newListingService(db)
	donor := createUser(t, db, "donor-1", models.RoleDonor)

	input := validListingInput()
	input.Title = ""
	input.ContactPhone = ""
	input.ExpiryTime = time.Now().Add(-time.Hour).Format(time.RFC3339)

	_, err := svc.Create(context.Background(), donor, input)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.ElementsMatch(t, []string{"title", "contact_phone", "expiry_time"}, appErr.Fields)
}

func TestUpdateListing(t *testing.T) {
	db := newTestDB(t)
	svc := newListingService(db)
	donor := createUser(t, db, "donor-1", models.RoleDonor)
	stranger := createUser(t, db, "stranger", models.RoleDonor)
	ctx := context.Background()

	t.Run("NonOwnerRejected", func(t *testing.T) {
		listing := createListing(t, db, donor, models.ListingStatusActive)
		_, err := svc.Update(ctx, stranger, listing.ID, validListingInput())
		requireCode(t, err, models.CodeUnauthorized)
	})

	t.Run("ReservedImmutable", func(t *testing.T) {
		listing := createListing(t, db, donor, models.ListingStatusReserved)
		_, err := svc.Update(ctx, donor, listing.ID, validListingInput())
		requireCode(t, err, models.CodeInvalidState)
	})

	t.Run("ActiveUpdated", func(t *testing.T) {
		listing := createListing(t, db, donor, models.ListingStatusActive)
		input := validListingInput()
		input.Title = "Updated title"

		updated, err := svc.Update(ctx, donor, listing.ID, input)
		require.NoError(t, err)
		assert.Equal(t, "Updated title", updated.Title)

		// Persisted and visible on next read.
		fetched, err := svc.GetByID(ctx, listing.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated title", fetched.Title)
	})
}

// An edit validated against an ACTIVE listing must not land once the listing
// has been reserved in the meantime. The write itself re-checks the status.
func TestUpdateDetailsSkipsNonActiveListing(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewListingRepository(db)
	donor := createUser(t, db, "donor-1", models.RoleDonor)
	ctx := context.Background()

	listing := createListing(t, db, donor, models.ListingStatusActive)
	stale := *listing
	stale.Title = "Edited after reservation"

	// The reservation lands between the edit's read and its write.
	require.NoError(t, db.Model(listing).
		Update("status", models.ListingStatusReserved).Error)

	rows, err := repo.UpdateDetails(ctx, &stale)
	require.NoError(t, err)
	assert.Zero(t, rows)

	var fetched models.Listing
	require.NoError(t, db.First(&fetched, listing.ID).Error)
	assert.Equal(t, models.ListingStatusReserved, fetched.Status)
	assert.Equal(t, listing.Title, fetched.Title)
}

func TestDeleteListing(t *testing.T) {
	db := newTestDB(t)
	svc := newListingService(db)
	donor := createUser(t, db, "donor-1", models.RoleDonor)
	receiver := createUser(t, db, "receiver-1", models.RoleReceiver)
	ctx := context.Background()

	t.Run("CascadesPendingRequests", func(t *testing.T) {
		listing := createListing(t, db, donor, models.ListingStatusActive)
		createPendingRequest(t, db, listing, receiver)

		require.NoError(t, svc.Delete(ctx, donor, listing.ID))

		var requestCount int64
		require.NoError(t, db.Model(&models.Request{}).
			Where("listing_id = ?", listing.ID).Count(&requestCount).Error)
		assert.Zero(t, requestCount)

		_, err := svc.GetByID(ctx, listing.ID)
		requireCode(t, err, models.CodeNotFound)
	})

	t.Run("BlockedByReservation", func(t *testing.T) {
		listing := createListing(t, db, donor, models.ListingStatusReserved)
		reservation := &models.Reservation{
			ListingID:      listing.ID,
			DonorID:        donor.ID,
			ReceiverID:     receiver.ID,
			ConversationID: "chat-delete-test",
			Status:         models.ReservationStatusCompleted,
		}
		require.NoError(t, db.Create(reservation).Error)

		err := svc.Delete(ctx, donor, listing.ID)
		requireCode(t, err, models.CodeInvalidState)

		// Listing and reservation unchanged.
		fetched, err := svc.GetByID(ctx, listing.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ListingStatusReserved, fetched.Status)
		var count int64
		require.NoError(t, db.Model(&models.Reservation{}).
			Where("listing_id = ?", listing.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("NonOwnerRejected", func(t *testing.T) {
		listing := createListing(t, db, donor, models.ListingStatusActive)
		err := svc.Delete(ctx, receiver, listing.ID)
		requireCode(t, err, models.CodeUnauthorized)
	})
}

func TestToggleListingVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newListingService(db)
	donor := createUser(t, db, "donor-1", models.RoleDonor)
	ctx := context.Background()

	listing := createListing(t, db, donor, models.ListingStatusActive)

	toggled, err := svc.ToggleVisibility(ctx, donor, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusInactive, toggled.Status)

	toggled, err = svc.ToggleVisibility(ctx, donor, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusActive, toggled.Status)

	reserved := createListing(t, db, donor, models.ListingStatusReserved)
	_, err = svc.ToggleVisibility(ctx, donor, reserved.ID)
	requireCode(t, err, models.CodeInvalidState)
}

func TestListActiveExcludesExpired(t *testing.T) {
	db := newTestDB(t)
	svc := newListingService(db)
	donor := createUser(t, db, "donor-1", models.RoleDonor)
	ctx := context.Background()

	fresh := createListing(t, db, donor, models.ListingStatusActive)

	expired := createListing(t, db, donor, models.ListingStatusActive)
	require.NoError(t, db.Model(expired).
		Update("expiry_time", time.Now().Add(-time.Hour)).Error)

	inactive := createListing(t, db, donor, models.ListingStatusInactive)

	listings, err := svc.ListActive(ctx, 50, 0)
	require.NoError(t, err)

	ids := make([]uint, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	assert.Contains(t, ids, fresh.ID)
	assert.NotContains(t, ids, expired.ID)
	assert.NotContains(t, ids, inactive.ID)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}
