// Command seedadmin creates the initial Admin account so a fresh deployment
// can sign in and manage users. Idempotent: exits cleanly if the email exists.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/OKANLA95/Keziah-Shop/internal/config"
	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/infra"
	"github.com/OKANLA95/Keziah-Shop/internal/repository"
	"github.com/OKANLA95/Keziah-Shop/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "Administrator", "admin full name")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := repository.NewUserRepository(db)
	if existing, err := users.FindByEmail(ctx, *email); err == nil && existing != nil {
		log.Info().Str("email", *email).Msg("admin account already exists, nothing to do")
		return
	}

	auth := service.NewAuthService(users, cfg)
	admin, err := auth.Signup(ctx, dto.SignupRequest{
		FullName: *name,
		Email:    *email,
		Password: *password,
		Role:     "Admin",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create admin account")
	}
	log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("admin account created")
}
