// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, request protection and request context handling.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/service"
	"github.com/olegiv/rollcall/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser holds the resolved *model.User.
const ContextKeyUser ContextKey = "user"

// Flash messages set by the access-control middleware.
const (
	MsgLoginRequired = "Please log in to access this page."
	MsgAccessDenied  = "Access denied."
)

// LoadUser resolves the session's identity and stores it in the request
// context. Requests without a valid identity continue anonymously.
func LoadUser(accounts *service.AccountService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := accounts.CurrentIdentity(r.Context())
			if err != nil {
				if !errors.Is(err, service.ErrUnauthenticated) {
					slog.Error("resolving session identity", "error", err, "path", r.URL.Path)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &user)))
		})
	}
}

// Auth requires an identity loaded by LoadUser. Anonymous requests are
// redirected to the login page with a flash message.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUser(r) == nil {
				session.PutFlash(r.Context(), sm, MsgLoginRequired, session.FlashInfo)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin lets only admin identities through. Everyone else is sent
// back to the home page and the denial is written to the event log.
func RequireAdmin(sm *scs.SessionManager, accounts *service.AccountService, events *service.EventService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				session.PutFlash(r.Context(), sm, MsgLoginRequired, session.FlashInfo)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			if err := accounts.RequireAdmin(*user); err != nil {
				slog.Warn("access denied",
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
				)

				if events != nil {
					userID := user.ID
					metadata := map[string]any{
						"method": r.Method,
						"path":   r.URL.Path,
					}
					if err := events.LogSecurityEvent(r.Context(), model.EventLevelWarning, "Access denied: admin required", &userID, GetClientIP(r), metadata); err != nil {
						slog.Error("logging access denied event", "error", err)
					}
				}

				session.PutFlash(r.Context(), sm, MsgAccessDenied, session.FlashDanger)
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfAuthenticated sends signed-in users to target. Used on the
// registration and login pages. Run it after LoadUser, which drops session
// bindings to users that no longer exist.
func RedirectIfAuthenticated(accounts *service.AccountService, target string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if accounts.IsAuthenticated(r.Context()) {
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// GetUserIDPtr returns a pointer to the current user's ID, or nil.
// Useful for optional user ID parameters in event logging.
func GetUserIDPtr(r *http.Request) *int64 {
	if user := GetUser(r); user != nil {
		id := user.ID
		return &id
	}
	return nil
}

// WithUser returns a copy of ctx carrying user. Tests and handlers that
// resolve an identity outside LoadUser use it.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}
