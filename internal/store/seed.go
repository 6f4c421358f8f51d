// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/rollcall/internal/auth"
)

// DefaultAdminName is used when no bootstrap admin name is configured.
const DefaultAdminName = "Administrator"

// AdminSeed describes the bootstrap administrator account.
type AdminSeed struct {
	Email    string
	Password string
	Phone    string
	Name     string
}

// ErrAdminPasswordRequired is returned when the bootstrap admin does not
// exist yet and no password was configured for it.
var ErrAdminPasswordRequired = errors.New("admin password required to create bootstrap admin")

// ErrAdminPhoneRequired is returned when the bootstrap admin does not exist
// yet and no phone number was configured for it.
var ErrAdminPhoneRequired = errors.New("admin phone required to create bootstrap admin")

// SeedAdmin makes sure the configured admin account exists and carries the
// admin flag. An existing account with that email is promoted; its password
// is left untouched. An empty email disables bootstrapping.
func SeedAdmin(ctx context.Context, db *sql.DB, seed AdminSeed) error {
	email := strings.ToLower(strings.TrimSpace(seed.Email))
	if email == "" {
		return nil
	}

	queries := New(db)

	existing, err := queries.GetUserByEmail(ctx, email)
	if err == nil {
		if existing.IsAdmin {
			slog.Info("admin user already exists, skipping seed", "user_id", existing.ID)
			return nil
		}
		if _, err := queries.SetUserAdmin(ctx, SetUserAdminParams{IsAdmin: true, Email: email}); err != nil {
			return fmt.Errorf("promoting admin user: %w", err)
		}
		slog.Info("promoted existing user to admin", "user_id", existing.ID)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	if seed.Password == "" {
		return ErrAdminPasswordRequired
	}
	phone := strings.TrimSpace(seed.Phone)
	if phone == "" {
		return ErrAdminPhoneRequired
	}

	passwordHash, err := auth.HashPassword(seed.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	name := seed.Name
	if name == "" {
		name = DefaultAdminName
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created bootstrap admin user", "user_id", user.ID)
	return nil
}
