// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/rollcall/internal/auth"
	"github.com/olegiv/rollcall/internal/middleware"
	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/render"
	"github.com/olegiv/rollcall/internal/service"
	"github.com/olegiv/rollcall/internal/session"
	"github.com/olegiv/rollcall/internal/store"
	"github.com/olegiv/rollcall/internal/testutil"
	"github.com/olegiv/rollcall/web"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// testEnv wires the services and renderer over an in-memory database.
type testEnv struct {
	db       *sql.DB
	sm       *scs.SessionManager
	renderer *render.Renderer
	accounts *service.AccountService
	students *service.StudentService
	contacts *service.ContactService
	events   *service.EventService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestMemoryDB(t)
	sm := session.New(db, true)
	t.Cleanup(func() { session.StopCleanup(sm) })

	renderer, err := render.New(render.Config{
		TemplatesFS:    web.TemplatesFS(),
		SessionManager: sm,
		IsDev:          true,
	})
	require.NoError(t, err)

	return &testEnv{
		db:       db,
		sm:       sm,
		renderer: renderer,
		accounts: service.NewAccountService(db, sm),
		students: service.NewStudentService(db),
		contacts: service.NewContactService(db),
		events:   service.NewEventService(db, testSecret),
	}
}

// createUser inserts a user with the given password directly through the store.
func (e *testEnv) createUser(t *testing.T, name, email, password string, admin bool) model.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	u, err := store.New(e.db).CreateUser(context.Background(), store.CreateUserParams{
		Name:         name,
		Email:        email,
		Phone:        "1234567890",
		PasswordHash: hash,
		IsAdmin:      admin,
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	return model.UserFromStore(u)
}

// get builds a GET request with a loaded session.
func (e *testEnv) get(t *testing.T, target string) *http.Request {
	t.Helper()
	return requestWithSession(t, e.sm, httptest.NewRequest(http.MethodGet, target, nil))
}

// post builds a form POST request with a loaded session.
func (e *testEnv) post(t *testing.T, target string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return requestWithSession(t, e.sm, req)
}

// popFlash returns the flash left in the request's session.
func (e *testEnv) popFlash(r *http.Request) (string, string) {
	return session.PopFlash(r.Context(), e.sm)
}

func requestWithSession(t *testing.T, sm *scs.SessionManager, r *http.Request) *http.Request {
	t.Helper()
	ctx, err := sm.Load(r.Context(), "")
	require.NoError(t, err)
	return r.WithContext(ctx)
}

func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// loggedIn attaches the user to the request the way LoadUser does.
func loggedIn(r *http.Request, u model.User) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), &u))
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	assertStatus(t, w.Code, http.StatusSeeOther)
	if loc := w.Header().Get("Location"); loc != want {
		t.Errorf("Location = %q; want %q", loc, want)
	}
}
