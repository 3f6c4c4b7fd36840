// Package seed provides demo data for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"mealbridge/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumDonors    int
	NumReceivers int
	NumListings  int
	ShouldClean  bool
}

var quantities = []string{
	"2 kg", "5 kg", "10 portions", "3 boxes", "1 tray", "20 sandwiches",
	"4 liters", "6 loaves", "2 crates",
}

var foodTypes = []models.FoodType{
	models.FoodTypeVeg, models.FoodTypeNonVeg, models.FoodTypeBoth,
}

// Run populates the database with demo donors, receivers, listings, and a
// few pending requests.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		for _, table := range []string{"notifications", "reservations", "requests", "listings", "users"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clean %s: %w", table, err)
			}
		}
	}

	donors, err := createUsers(db, opts.NumDonors, models.RoleDonor)
	if err != nil {
		return err
	}
	receivers, err := createUsers(db, opts.NumReceivers, models.RoleReceiver)
	if err != nil {
		return err
	}

	for i := 0; i < opts.NumListings; i++ {
		donor := donors[r.Intn(len(donors))]
		listing := &models.Listing{
			DonorID:       donor.ID,
			Title:         gofakeit.Breakfast(),
			Description:   gofakeit.Sentence(12),
			FoodType:      foodTypes[r.Intn(len(foodTypes))],
			Quantity:      quantities[r.Intn(len(quantities))],
			ExpiryTime:    time.Now().Add(time.Duration(6+r.Intn(72)) * time.Hour),
			PickupAddress: gofakeit.Address().Address,
			PickupLat:     gofakeit.Latitude(),
			PickupLng:     gofakeit.Longitude(),
			ShowExactMap:  r.Intn(4) > 0,
			ContactPhone:  gofakeit.Phone(),
			Status:        models.ListingStatusActive,
		}
		if err := db.Create(listing).Error; err != nil {
			return fmt.Errorf("create listing: %w", err)
		}

		// Some listings attract a handful of pending requests.
		for _, receiver := range pick(r, receivers, r.Intn(3)) {
			request := &models.Request{
				ListingID:  listing.ID,
				ReceiverID: receiver.ID,
				Message:    gofakeit.Sentence(8),
				Status:     models.RequestStatusPending,
			}
			if err := db.Create(request).Error; err != nil {
				return fmt.Errorf("create request: %w", err)
			}
		}
	}

	log.Printf("Seeded %d donors, %d receivers, %d listings",
		len(donors), len(receivers), opts.NumListings)
	return nil
}

func createUsers(db *gorm.DB, n int, role models.UserRole) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			ExternalID: "seed-" + gofakeit.UUID(),
			Email:      gofakeit.Email(),
			Name:       gofakeit.Name(),
			Phone:      gofakeit.Phone(),
			Role:       role,
		}
		if role == models.RoleDonor {
			user.Organization = gofakeit.Company()
		}
		if err := db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func pick(r *rand.Rand, users []*models.User, n int) []*models.User {
	if n >= len(users) {
		return users
	}
	shuffled := make([]*models.User, len(users))
	copy(shuffled, users)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
