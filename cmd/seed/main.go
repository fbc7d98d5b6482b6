// Command main fills the development database with demo data.
package main

import (
	"flag"
	"log"

	"glimpse/internal/config"
	"glimpse/internal/database"
	"glimpse/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 12, "Number of users to create")
	photosPerUser := flag.Int("photos", 4, "Photos per user")
	commentsPerPhoto := flag.Int("comments", 3, "Comments per photo")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean {
		if err := seed.ClearAll(db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		log.Println("cleared existing data")
	}

	opts := seed.DefaultOptions()
	opts.Users = *numUsers
	opts.PhotosPerUser = *photosPerUser
	opts.CommentsPerPhoto = *commentsPerPhoto

	if err := seed.NewFactory(db, opts).Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
