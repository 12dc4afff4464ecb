package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"seatly/internal/seats"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/internal/users"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the seat grid and a bootstrap admin account. Safe to rerun: seats
// upsert by seat number and the admin is only created when missing.
func main() {
	fmt.Println("🌱 Starting Seatly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seatRepo := seats.NewRepository(db.GetPostgreSQL())
	seatService := seats.NewService(seatRepo)

	result, err := seatService.SeedDefaultSeats(ctx)
	if err != nil {
		log.Fatalf("Failed to seed seats: %v", err)
	}
	fmt.Printf("✅ Seats seeded: %d inserted, %d total\n", result.InsertedCount, result.TotalSeats)

	if err := seedAdmin(ctx, db.GetPostgreSQL()); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed! Database is ready.")
}

func seedAdmin(ctx context.Context, db *gorm.DB) error {
	email := envOr("SEED_ADMIN_EMAIL", "admin@seatly.io")
	password := envOr("SEED_ADMIN_PASSWORD", "admin123")

	var existing users.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Printf("✅ Admin user already present: %s\n", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := users.User{
		Name:     "Seatly Admin",
		Email:    email,
		Password: string(hashed),
		Role:     users.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}

	fmt.Printf("✅ Admin user created: %s\n", email)
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
