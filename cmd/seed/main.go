// Command seed populates the mealbridge database with demo data.
package main

import (
	"flag"
	"log"

	"mealbridge/internal/config"
	"mealbridge/internal/database"
	"mealbridge/internal/seed"
)

func main() {
	numDonors := flag.Int("donors", 10, "Number of donor users to create")
	numReceivers := flag.Int("receivers", 25, "Number of receiver users to create")
	numListings := flag.Int("listings", 40, "Number of listings to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Run(db, seed.Options{
		NumDonors:    *numDonors,
		NumReceivers: *numReceivers,
		NumListings:  *numListings,
		ShouldClean:  *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
