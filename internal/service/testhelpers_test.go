package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"mealbridge/internal/database"
	"mealbridge/internal/models"
	"mealbridge/internal/notifications"
	"mealbridge/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database shared and writes
	// serialized across goroutines.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.MigrateModels()...))
	return db
}

func newTestDispatcher(db *gorm.DB) *notifications.Dispatcher {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return notifications.NewDispatcher(repository.NewNotificationRepository(db), nil, logger)
}

func createUser(t *testing.T, db *gorm.DB, externalID string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		ExternalID: externalID,
		Email:      externalID + "@example.com",
		Name:       "User " + externalID,
		Role:       role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createListing(t *testing.T, db *gorm.DB, donor *models.User, status models.ListingStatus) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		DonorID:       donor.ID,
		Title:         "Leftover catering trays",
		Description:   "Vegetable biryani from an office event, refrigerated",
		FoodType:      models.FoodTypeVeg,
		Quantity:      "5 trays",
		ExpiryTime:    time.Now().Add(24 * time.Hour),
		PickupAddress: "12 Harbor Street",
		PickupLat:     52.37,
		PickupLng:     4.89,
		ShowExactMap:  true,
		ContactPhone:  "+31101234567",
		Status:        status,
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func createPendingRequest(t *testing.T, db *gorm.DB, listing *models.Listing, receiver *models.User) *models.Request {
	t.Helper()
	request := &models.Request{
		ListingID:  listing.ID,
		ReceiverID: receiver.ID,
		Message:    "I can pick this up tonight",
		Status:     models.RequestStatusPending,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

// failingNotificationRepo always fails, to prove notification emission never
// rolls back a lifecycle transition.
type failingNotificationRepo struct{}

func (failingNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	return context.DeadlineExceeded
}
func (failingNotificationRepo) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	return nil, nil
}
func (failingNotificationRepo) MarkRead(ctx context.Context, id, userID uint) (int64, error) {
	return 0, nil
}
func (failingNotificationRepo) MarkAllRead(ctx context.Context, userID uint) error { return nil }
func (failingNotificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}
