package main

import (
	"context"
	"os"

	"roomscheduler/internal/config"
	"roomscheduler/internal/database"
	"roomscheduler/internal/domain"
	"roomscheduler/internal/pkg/logger"
	"roomscheduler/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

var sampleRooms = []domain.Room{
	{Name: "Sala Azul", Capacity: 4},
	{Name: "Sala Verde", Capacity: 8},
	{Name: "Auditório", Capacity: 40},
}

func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Config{Format: logger.FormatText, Service: "seed"})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", "error", err)
	}

	db, err := database.Connect(cfg.DB.URL)
	if err != nil {
		log.Fatal("DB connection failed", "error", err)
	}
	if err := database.Migrate(db, repository.Models()...); err != nil {
		log.Fatal("migration failed", "error", err)
	}

	email := getenv("SEED_ADMIN_EMAIL", "admin@roomscheduler.local")
	password := getenv("SEED_ADMIN_PASSWORD", "admin123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password", "error", err)
	}

	admin := domain.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	res := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).Create(&admin)
	if res.Error != nil {
		log.Fatal("create admin", "error", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Info("admin already exists", "email", email)
	} else {
		log.Info("admin created", "email", email)
	}

	rooms := repository.NewRoomRepository(db)
	existing, err := rooms.List(context.Background())
	if err != nil {
		log.Fatal("list rooms", "error", err)
	}
	if len(existing) > 0 {
		log.Info("rooms already seeded", "count", len(existing))
		return
	}
	for i := range sampleRooms {
		if err := rooms.Create(context.Background(), &sampleRooms[i]); err != nil {
			log.Fatal("create room", "name", sampleRooms[i].Name, "error", err)
		}
	}
	log.Info("seed completed", "rooms", len(sampleRooms))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
