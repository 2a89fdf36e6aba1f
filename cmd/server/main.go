package main

import (
	"log"

	"github.com/arenaplay/scoreboard/internal/config"
	"github.com/arenaplay/scoreboard/internal/model"
	"github.com/arenaplay/scoreboard/internal/server"
	"github.com/arenaplay/scoreboard/pkg/database"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedDemoPlayers(db); err != nil {
			log.Fatalf("failed to seed demo players: %v", err)
		}
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	srv := server.NewServer(cfg, db, redisClient)

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.ScoreSubmission{},
	)
}

func seedDemoPlayers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("players already exist, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demoPlayers := []model.User{
		{Username: "alpha_user", Email: "alice@example.com", FirstName: "Alice", PasswordHash: string(hashed)},
		{Username: "beta_user", Email: "bob@example.com", FirstName: "Bob", PasswordHash: string(hashed)},
		{Username: "self_user", Email: "charlie@example.com", FirstName: "Charlie", PasswordHash: string(hashed)},
	}

	for _, player := range demoPlayers {
		if err := db.Create(&player).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Demo players seeded (password: demo1234)")
	return nil
}
