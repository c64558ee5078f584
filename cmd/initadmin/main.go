package main

import (
	"context"
	"flag"
	"os"

	"cryptopulse-backend/internal/config"
	"cryptopulse-backend/internal/constants"
	"cryptopulse-backend/internal/database"
	"cryptopulse-backend/internal/users"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Provisions the first admin account. Safe to re-run: an already registered
// email is reported and left untouched.
func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *email == "" || *password == "" {
		log.Fatal().Msg("usage: initadmin -email <email> -password <password>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	svc := &users.Service{DB: db}
	u, err := svc.CreateUser(context.Background(), users.CreateUserInput{
		Email:    *email,
		Password: *password,
		Role:     constants.RoleAdmin,
	})
	if err != nil {
		if err == users.ErrAlreadyRegistered {
			log.Info().Str("email", *email).Msg("admin already exists")
			return
		}
		log.Fatal().Err(err).Msg("admin create failed")
	}
	log.Info().Str("email", u.Email).Str("user_id", u.UserID.String()).Msg("admin created")
}
