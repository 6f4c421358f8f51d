// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/rollcall/internal/auth"
	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/store"
	"github.com/olegiv/rollcall/internal/validation"
)

// SessionKeyUserID is the session key for storing the authenticated user ID.
const SessionKeyUserID = "user_id"

// AccountService registers users, checks credentials and binds them to
// the session.
type AccountService struct {
	queries  *store.Queries
	sessions *scs.SessionManager
}

// NewAccountService creates a new AccountService.
func NewAccountService(db *sql.DB, sm *scs.SessionManager) *AccountService {
	return &AccountService{
		queries:  store.New(db),
		sessions: sm,
	}
}

// Register validates the form and creates a non-admin user. Emails are
// stored lowercased.
func (s *AccountService) Register(ctx context.Context, f model.RegistrationForm) (model.User, error) {
	if errs := validation.ValidateRegistration(f); !errs.OK() {
		return model.User{}, &ValidationError{Fields: errs}
	}

	passwordHash, err := auth.HashPassword(f.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		Name:         f.Name,
		Email:        strings.ToLower(f.Email),
		Phone:        f.Phone,
		PasswordHash: passwordHash,
		IsAdmin:      false,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return model.User{}, ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}

	return model.UserFromStore(user), nil
}

// VerifyCredentials looks the user up by email and checks the password.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *AccountService) VerifyCredentials(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.queries.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("getting user: %w", err)
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return model.User{}, fmt.Errorf("checking password for user %d: %w", user.ID, err)
	}
	if !valid {
		return model.User{}, ErrInvalidCredentials
	}

	return model.UserFromStore(user), nil
}

// Authenticate validates the login form, verifies the credentials and binds
// the session to the user. The session token is renewed first.
func (s *AccountService) Authenticate(ctx context.Context, f model.LoginForm) (model.User, error) {
	if errs := validation.ValidateLogin(f); !errs.OK() {
		return model.User{}, &ValidationError{Fields: errs}
	}

	user, err := s.VerifyCredentials(ctx, f.Email, f.Password)
	if err != nil {
		return model.User{}, err
	}

	if err := s.sessions.RenewToken(ctx); err != nil {
		return model.User{}, fmt.Errorf("renewing session token: %w", err)
	}
	s.sessions.Put(ctx, SessionKeyUserID, user.ID)

	return user, nil
}

// CurrentIdentity resolves the session's user. A session pointing at a
// user that no longer exists is cleared.
func (s *AccountService) CurrentIdentity(ctx context.Context) (model.User, error) {
	userID := s.sessions.GetInt64(ctx, SessionKeyUserID)
	if userID == 0 {
		return model.User{}, ErrUnauthenticated
	}

	user, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sessions.Remove(ctx, SessionKeyUserID)
			return model.User{}, ErrUnauthenticated
		}
		return model.User{}, fmt.Errorf("getting user: %w", err)
	}

	return model.UserFromStore(user), nil
}

// IsAuthenticated reports whether the session is bound to a user id.
func (s *AccountService) IsAuthenticated(ctx context.Context) bool {
	return s.sessions.GetInt64(ctx, SessionKeyUserID) != 0
}

// RequireAdmin returns ErrForbidden unless the user is an admin.
func (s *AccountService) RequireAdmin(user model.User) error {
	if !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// EndSession destroys the session and its user binding.
func (s *AccountService) EndSession(ctx context.Context) error {
	if err := s.sessions.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}

// CountUsers returns the number of registered users.
func (s *AccountService) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.queries.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// ListUsers returns all users ordered by id.
func (s *AccountService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return model.UsersFromStore(users), nil
}
