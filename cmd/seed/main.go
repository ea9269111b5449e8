// Command main runs the database seeder for Haven.
package main

import (
	"flag"
	"log"

	"haven/internal/config"
	"haven/internal/database"
	"haven/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	boardsOnly := flag.Bool("boards-only", false, "Only upsert the built-in condition boards")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *boardsOnly {
		if err := seed.Boards(db); err != nil {
			log.Fatalf("❌ Board seeding failed: %v", err)
		}
		log.Println("✨ Built-in boards are up to date.")
		return
	}

	s := seed.NewSeeder(db)
	if err := s.SeedAll(seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Printf("📧 All test users have the password: %s", seed.DefaultPassword)
}
