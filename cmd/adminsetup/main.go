// Command adminsetup creates the first administrator account directly
// against the store, for operators who prefer not to expose the setup
// endpoint at all.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/eagd-org/donation-server/internal/auth"
	"github.com/eagd-org/donation-server/internal/domain"
	"github.com/eagd-org/donation-server/internal/store"
)

func main() {
	var (
		usernameFlag string
		passwordFlag string
		emailFlag    string
	)

	flag.StringVar(&usernameFlag, "username", "", "username for the new admin account")
	flag.StringVar(&passwordFlag, "password", "", "password (min 8 chars, upper/lower/digit/special)")
	flag.StringVar(&emailFlag, "email", "", "email for the new admin account")
	flag.Parse()

	_ = godotenv.Load()

	username := strings.TrimSpace(usernameFlag)
	email := strings.ToLower(strings.TrimSpace(emailFlag))
	if username == "" || passwordFlag == "" || email == "" {
		exitWithError(errors.New("-username, -password and -email are all required"))
	}
	if err := auth.ValidatePasswordComplexity(passwordFlag); err != nil {
		exitWithError(err)
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	admins := store.NewAdminRepository(pool)

	count, err := admins.Count(ctx)
	if err != nil {
		exitWithError(fmt.Errorf("failed to count admins: %w", err))
	}
	if count > 0 {
		exitWithError(errors.New("an admin account already exists; use the login endpoint"))
	}

	hash, err := auth.HashPassword(passwordFlag)
	if err != nil {
		exitWithError(fmt.Errorf("failed to hash password: %w", err))
	}

	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := admins.Create(ctx, admin); err != nil {
		exitWithError(fmt.Errorf("failed to create admin: %w", err))
	}

	fmt.Printf("Admin %s (%s) created with role %s\n", admin.Username, admin.Email, admin.Role)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
