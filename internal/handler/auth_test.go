// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/rollcall/internal/middleware"
	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/service"
	"github.com/olegiv/rollcall/internal/session"
	"github.com/olegiv/rollcall/internal/validation"
)

func newTestAuthHandler(env *testEnv, lp *middleware.LoginProtection) *AuthHandler {
	return NewAuthHandler(env.accounts, env.events, env.renderer, lp)
}

func registrationValues(name, email string) url.Values {
	return url.Values{
		model.FieldName:            {name},
		model.FieldEmail:           {email},
		model.FieldPhone:           {"5551234567"},
		model.FieldPassword:        {"secret1"},
		model.FieldConfirmPassword: {"secret1"},
	}
}

func TestAuthHandler_RegisterForm(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(env, nil)

	w := httptest.NewRecorder()
	h.RegisterForm(w, env.get(t, RouteRegister))

	assertStatus(t, w.Code, http.StatusOK)
	assert.Contains(t, w.Body.String(), `name="confirm_password"`)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(env, nil)

	req := env.post(t, RouteRegister, registrationValues("Ann Lee", "Ann@Example.com"))
	w := httptest.NewRecorder()
	h.Register(w, req)

	assertRedirect(t, w, RouteLogin)
	msg, typ := env.popFlash(req)
	assert.Equal(t, msgAccountCreated, msg)
	assert.Equal(t, session.FlashSuccess, typ)

	users, err := env.accounts.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ann Lee", users[0].Name)
	assert.Equal(t, "ann@example.com", users[0].Email)
	assert.False(t, users[0].IsAdmin)

	events, err := env.events.Recent(context.Background(), model.EventCategoryAuth, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "User registered", events[0].Message)
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(env, nil)

	w := httptest.NewRecorder()
	h.Register(w, env.post(t, RouteRegister, registrationValues("John3", "john@example.com")))

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assert.Contains(t, body, validation.MsgAlphaOnly)
	assert.Contains(t, body, `value="John3"`)
	assert.NotContains(t, body, `value="secret1"`)

	users, err := env.accounts.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(env, nil)
	env.createUser(t, "Ann Lee", "ann@example.com", "secret1", false)

	w := httptest.NewRecorder()
	h.Register(w, env.post(t, RouteRegister, registrationValues("Ann Other", "ANN@example.com")))

	assertStatus(t, w.Code, http.StatusOK)
	assert.Contains(t, w.Body.String(), msgEmailTaken)
}

func TestAuthHandler_LoginForm(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(env, nil)

	w := httptest.NewRecorder()
	h.LoginForm(w, env.get(t, RouteLogin))

	assertStatus(t, w.Code, http.StatusOK)
	assert.Contains(t, w.Body.String(), `name="password"`)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(env, nil)
	user := env.createUser(t, "Ann Lee", "ann@example.com", "secret1", false)

	req := env.post(t, RouteLogin, url.Values{
		model.FieldEmail:    {"ann@example.com"},
		model.FieldPassword: {"secret1"},
	})
	w := httptest.NewRecorder()
	h.Login(w, req)

	assertRedirect(t, w, RouteStudents)
	assert.Equal(t, user.ID, env.sm.GetInt64(req.Context(), service.SessionKeyUserID))

	msg, _ := env.popFlash(req)
	assert.Equal(t, msgLoggedIn, msg)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(env, nil)
	env.createUser(t, "Ann Lee", "ann@example.com", "secret1", false)

	req := env.post(t, RouteLogin, url.Values{
		model.FieldEmail:    {"ann@example.com"},
		model.FieldPassword: {"wrong"},
	})
	w := httptest.NewRecorder()
	h.Login(w, req)

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assert.Contains(t, body, msgLoginFailed)
	assert.Contains(t, body, "alert-danger")
	assert.Zero(t, env.sm.GetInt64(req.Context(), service.SessionKeyUserID))

	events, err := env.events.Recent(context.Background(), model.EventCategoryAuth, 10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, model.EventLevelWarning, events[0].Level)
}

func TestAuthHandler_Login_ValidationError(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(env, nil)

	w := httptest.NewRecorder()
	h.Login(w, env.post(t, RouteLogin, url.Values{model.FieldEmail: {"not-an-email"}}))

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assert.Contains(t, body, validation.MsgInvalidEmail)
	assert.Contains(t, body, validation.MsgRequired)
}

func TestAuthHandler_Login_Lockout(t *testing.T) {
	env := newTestEnv(t)
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 2,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
		CleanupInterval:   time.Hour,
	})
	defer lp.Stop()

	h := newTestAuthHandler(env, lp)
	env.createUser(t, "Ann Lee", "ann@example.com", "secret1", false)

	login := func(password string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.Login(w, env.post(t, RouteLogin, url.Values{
			model.FieldEmail:    {"ann@example.com"},
			model.FieldPassword: {password},
		}))
		return w
	}

	body := login("wrong").Body.String()
	assert.Contains(t, body, msgLoginFailed)
	assert.Contains(t, body, "1 attempt(s) remaining before the account is locked.")
	assert.Contains(t, login("wrong").Body.String(), "Too many failed attempts")

	// The correct password is refused while the account is locked.
	w := login("secret1")
	assertStatus(t, w.Code, http.StatusOK)
	assert.Contains(t, w.Body.String(), "Too many failed attempts")
}

func TestAuthHandler_Login_RemainingAttempts(t *testing.T) {
	env := newTestEnv(t)
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
		CleanupInterval:   time.Hour,
	})
	defer lp.Stop()

	h := newTestAuthHandler(env, lp)
	env.createUser(t, "Ann Lee", "ann@example.com", "secret1", false)

	login := func() string {
		w := httptest.NewRecorder()
		h.Login(w, env.post(t, RouteLogin, url.Values{
			model.FieldEmail:    {"ann@example.com"},
			model.FieldPassword: {"wrong"},
		}))
		return w.Body.String()
	}

	first := login()
	assert.Contains(t, first, msgLoginFailed)
	assert.NotContains(t, first, "remaining")

	assert.Contains(t, login(), "3 attempt(s) remaining")
	assert.Contains(t, login(), "2 attempt(s) remaining")
}

func TestAuthHandler_Logout(t *testing.T) {
	env := newTestEnv(t)
	h := newTestAuthHandler(env, nil)
	user := env.createUser(t, "Ann Lee", "ann@example.com", "secret1", false)

	req := env.get(t, RouteLogout)
	env.sm.Put(req.Context(), service.SessionKeyUserID, user.ID)
	req = loggedIn(req, user)

	w := httptest.NewRecorder()
	h.Logout(w, req)

	assertRedirect(t, w, RouteLogin)
	assert.Zero(t, env.sm.GetInt64(req.Context(), service.SessionKeyUserID))

	msg, typ := env.popFlash(req)
	assert.Equal(t, msgLoggedOut, msg)
	assert.Equal(t, session.FlashInfo, typ)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30 seconds"},
		{time.Minute, "1 minute"},
		{15 * time.Minute, "15 minutes"},
		{time.Hour, "1 hour"},
		{3 * time.Hour, "3 hours"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q; want %q", tt.d, got, tt.want)
		}
	}
}
