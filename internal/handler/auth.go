// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/rollcall/internal/middleware"
	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/render"
	"github.com/olegiv/rollcall/internal/service"
	"github.com/olegiv/rollcall/internal/session"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	accounts        *service.AccountService
	events          *service.EventService
	renderer        *render.Renderer
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil to disable
// account lockout.
func NewAuthHandler(accounts *service.AccountService, events *service.EventService, renderer *render.Renderer, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		accounts:        accounts,
		events:          events,
		renderer:        renderer,
		loginProtection: lp,
	}
}

// RegisterForm renders the registration page.
// GET /register
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	data := page(r, "Register")
	data.Form = model.RegistrationForm{}
	renderPage(w, r, h.renderer, pageRegister, data)
}

// Register handles the registration form submission.
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRegister) {
		return
	}

	form := model.RegistrationForm{
		Name:            formValue(r, model.FieldName),
		Email:           formValue(r, model.FieldEmail),
		Phone:           formValue(r, model.FieldPhone),
		Password:        r.PostFormValue(model.FieldPassword),
		ConfirmPassword: r.PostFormValue(model.FieldConfirmPassword),
	}

	user, err := h.accounts.Register(r.Context(), form)
	if err != nil {
		if fields, ok := service.FieldErrors(err); ok {
			h.renderRegister(w, r, form, fields.ByField())
			return
		}
		if errors.Is(err, service.ErrDuplicateEmail) {
			h.renderRegister(w, r, form, map[string]string{model.FieldEmail: msgEmailTaken})
			return
		}
		logAndInternalError(w, "failed to register user", "error", err)
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	h.logAuthEvent(r, model.EventLevelInfo, "User registered", &user.ID, nil)

	flashSuccess(w, r, h.renderer, RouteLogin, msgAccountCreated)
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, form model.RegistrationForm, errs map[string]string) {
	form.Password = ""
	form.ConfirmPassword = ""

	data := page(r, "Register")
	data.Form = form
	data.Errors = errs
	renderPage(w, r, h.renderer, pageRegister, data)
}

// LoginForm renders the login page.
// GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	data := page(r, "Login")
	data.Form = model.LoginForm{}
	renderPage(w, r, h.renderer, pageLogin, data)
}

// Login handles the login form submission.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteLogin) {
		return
	}

	form := model.LoginForm{
		Email:    formValue(r, model.FieldEmail),
		Password: r.PostFormValue(model.FieldPassword),
	}
	meta := map[string]any{"email": form.Email}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(form.Email); locked {
			h.logAuthEvent(r, model.EventLevelWarning, "Login attempt on locked account", nil, meta)
			h.renderLoginFailure(w, r, form, nil, fmt.Sprintf("Too many failed attempts. Try again in %s.", formatDuration(remaining)))
			return
		}
	}

	user, err := h.accounts.Authenticate(r.Context(), form)
	if err != nil {
		if fields, ok := service.FieldErrors(err); ok {
			h.renderLoginFailure(w, r, form, fields.ByField(), "")
			return
		}
		if !errors.Is(err, service.ErrInvalidCredentials) {
			logAndInternalError(w, "login error", "error", err)
			return
		}

		slog.Debug("invalid login attempt", "email", form.Email)
		h.logAuthEvent(r, model.EventLevelWarning, "Login failed: invalid credentials", nil, meta)

		message := msgLoginFailed
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(form.Email); locked {
				h.logAuthEvent(r, model.EventLevelWarning, "Account locked due to failed attempts", nil,
					map[string]any{"email": form.Email, "duration": lockDuration.String()})
				message = fmt.Sprintf("Too many failed attempts. Try again in %s.", formatDuration(lockDuration))
			} else if remaining := h.loginProtection.GetRemainingAttempts(form.Email); remaining > 0 && remaining <= attemptsWarnThreshold {
				message = fmt.Sprintf("%s %d attempt(s) remaining before the account is locked.", msgLoginFailed, remaining)
			}
		}
		h.renderLoginFailure(w, r, form, nil, message)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(form.Email)
	}

	slog.Info("user logged in", "user_id", user.ID)
	h.logAuthEvent(r, model.EventLevelInfo, "User logged in", &user.ID, nil)

	flashSuccess(w, r, h.renderer, RouteStudents, msgLoggedIn)
}

// renderLoginFailure re-renders the login page. A non-empty message is
// shown as an error alert.
func (h *AuthHandler) renderLoginFailure(w http.ResponseWriter, r *http.Request, form model.LoginForm, errs map[string]string, message string) {
	form.Password = ""

	data := page(r, "Login")
	data.Form = form
	data.Errors = errs
	if message != "" {
		data.Flash = message
		data.FlashType = session.FlashDanger
	}
	renderPage(w, r, h.renderer, pageLogin, data)
}

// Logout ends the session.
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDPtr(r)
	if userID != nil {
		h.logAuthEvent(r, model.EventLevelInfo, "User logged out", userID, nil)
	}

	if err := h.accounts.EndSession(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("user logged out", "user_id", middleware.GetUserID(r))
	flashAndRedirect(w, r, h.renderer, RouteLogin, msgLoggedOut, session.FlashInfo)
}

func (h *AuthHandler) logAuthEvent(r *http.Request, level, message string, userID *int64, metadata map[string]any) {
	if h.events == nil {
		return
	}
	_ = h.events.LogAuthEvent(r.Context(), level, message, userID, middleware.GetClientIP(r), metadata)
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
