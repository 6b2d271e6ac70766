//go:build ignore

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hugh/birthday-reminder/internal/auth"
	"github.com/hugh/birthday-reminder/internal/database"
	"github.com/hugh/birthday-reminder/internal/database/models"
	"github.com/hugh/birthday-reminder/internal/friends"
	"github.com/hugh/birthday-reminder/pkg/config"
	"github.com/hugh/birthday-reminder/pkg/util"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds an active demo user whose friends include one celebrating today.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env, "")

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db, logger); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	email := os.Getenv("SEED_EMAIL")
	if email == "" {
		email = "demo@example.com"
	}
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "demo1234"
	}

	ctx := context.Background()

	var existing models.User
	err = db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Printf("Demo user already exists: %s\n", email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to look up demo user: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	source := models.SourceEmail
	user := models.User{
		Name:     "Demo User",
		Email:    email,
		Password: hash,
		Source:   &source,
		Active:   true,
		Role:     models.RoleBranch,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create demo user: %v", err)
	}

	today := time.Now().In(cfg.Schedule.Location())
	dates := map[string]time.Time{
		"Birthday Today": time.Date(1990, today.Month(), today.Day(), 0, 0, 0, 0, time.UTC),
		"Next Week":      time.Date(1985, today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7),
		"Leap Day":       time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC),
	}

	friendService := friends.NewService(db)
	for name, born := range dates {
		born := born
		if _, err := friendService.Create(ctx, user.ID, friends.Input{Name: name, Source: &source, Birthdate: &born}); err != nil {
			log.Fatalf("failed to create friend %q: %v", name, err)
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	token, err := jwtService.GenerateToken(user.ID, user.Name)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Printf("Demo user created successfully!\n")
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Friends: %d\n", len(dates))
	fmt.Printf("Token: %s\n", token)
}
