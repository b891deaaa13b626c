package main

import (
	"log"
	"os"
	"time"

	"ai-boardroom-be/internal/model"
	"ai-boardroom-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Notification Types...")
	SeedNotificationTypes(db)

	log.Println("Seeding Demo User...")

	var existing model.User
	if err := db.Where("email = ?", "demo@boardroom.local").First(&existing).Error; err == nil {
		log.Println("Demo user already exists, skipping...")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash demo password:", err)
	}
	hashStr := string(hash)

	now := time.Now()
	demoUser := model.User{
		Id:                       uuid.New(),
		Email:                    "demo@boardroom.local",
		PasswordHash:             &hashStr,
		FullName:                 "Demo Member",
		Role:                     "user",
		Status:                   "active",
		EmailVerified:            true,
		EmailVerifiedAt:          &now,
		BoardDailyUsageLastReset: now,
	}

	if err := db.Create(&demoUser).Error; err != nil {
		log.Fatal("Error: Failed to create demo user:", err)
	}
	log.Printf("Created demo user: %s", demoUser.Email)

	problems := []model.Problem{
		{
			Id:     uuid.New(),
			UserId: demoUser.Id,
			Title:  "Shipping the side project",
			Detail: "The landing page has been 'almost done' for six weeks. No deadline set, no accountability.",
			Status: "open",
		},
		{
			Id:     uuid.New(),
			UserId: demoUser.Id,
			Title:  "Morning routine keeps slipping",
			Detail: "Planned to start deep work at 8am. Average actual start this month: 10:30am.",
			Status: "open",
		},
	}

	for _, p := range problems {
		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating problem '%s': %v", p.Title, err)
		} else {
			log.Printf("Created problem: %s", p.Title)
		}
	}

	log.Println("✅ Seeding completed!")
}
