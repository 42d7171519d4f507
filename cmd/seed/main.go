package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"notifyhub/internal/contenttype"
	"notifyhub/internal/database"
	"notifyhub/internal/domain"
	"notifyhub/internal/modules/notification"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "notifyhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&domain.User{}, &notification.Notification{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	users := make([]*domain.User, 0, 3)
	for _, u := range []struct {
		email, name, password string
	}{
		{"justquick@example.com", "justquick", "demo123"},
		{"brosner@example.com", "brosner", "demo123"},
		{"mitsuhiko@example.com", "mitsuhiko", "demo123"},
	} {
		hash, _ := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		user := &domain.User{Email: u.email, Name: u.name, PasswordHash: string(hash)}
		if err := db.Create(user).Error; err != nil {
			log.Fatal("user seed failed:", err)
		}
		users = append(users, user)
	}

	registry := contenttype.NewRegistry()
	domain.RegisterEntities(registry, db)

	repo := notification.NewRepository(db)
	notifier := notification.NewNotifier(repo, true)

	log.Println("Recording sample activity events...")
	ctx := context.Background()
	events := []notification.Event{
		{
			Actor:     users[0],
			Recipient: users[1].ID,
			Verb:      "reached level 60",
			Level:     notification.LevelSuccess,
		},
		{
			Actor:     users[1],
			Recipient: users[0].ID,
			Verb:      "started following",
			Target:    users[0],
		},
		{
			Actor:        users[2],
			Recipient:    users[0].ID,
			Verb:         "mentioned",
			ActionObject: users[1],
			Target:       users[0],
			Extra:        map[string]any{"channel": "general"},
		},
	}
	for _, ev := range events {
		if _, err := notifier.Notify(ctx, ev); err != nil {
			log.Fatal("event seed failed:", err)
		}
	}

	log.Println("Seed complete.")
}
