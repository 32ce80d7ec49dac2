// Command createadmin bootstraps a superuser account.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"habittracker/internal/config"
	"habittracker/internal/model"
	"habittracker/internal/repository"
	pkgconfig "habittracker/pkg/config"
	"habittracker/pkg/db"
	"habittracker/pkg/logger"
	"habittracker/pkg/util"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	tgChatID := flag.String("tg-chat-id", "", "telegram chat id for reminders")
	firstName := flag.String("first-name", "Admin", "display name")
	flag.Parse()

	_ = godotenv.Load()

	log := logger.NewLogger()
	defer log.Sync()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg, err := config.Load(pkgconfig.GetEnv("CONFIG_PATH", "config/base.yaml"))
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repository.EnsureSchema(ctx, dbConn); err != nil {
		log.Fatal("Failed to ensure schema", zap.Error(err))
	}

	hash, err := util.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password", zap.Error(err))
	}

	u := &model.User{
		Email:        *email,
		PasswordHash: hash,
		TgChatID:     *tgChatID,
		FirstName:    *firstName,
		IsAdmin:      true,
	}

	users := repository.NewUserRepository(dbConn)
	if err := users.CreateUser(ctx, u); err != nil {
		log.Fatal("Failed to create admin user", zap.Error(err))
	}

	log.Info("Admin user created", zap.Int64("user_id", u.ID), zap.String("email", u.Email))
}
