// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/store"
	"github.com/olegiv/rollcall/internal/validation"
)

func annRegistration() model.RegistrationForm {
	return model.RegistrationForm{
		Name:            "Ann Lee",
		Email:           "ann@x.com",
		Phone:           "1234567890",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, sm, ctx, db := newAccountTestService(t)

	user, err := svc.Register(ctx, annRegistration())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.IsAdmin)

	stored, err := store.New(db).GetUserByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash, "password must be hashed")

	loggedIn, err := svc.Authenticate(ctx, model.LoginForm{Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Equal(t, user.ID, sm.GetInt64(ctx, SessionKeyUserID))

	_, err = svc.Authenticate(ctx, model.LoginForm{Email: "ann@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, ctx, db := newAccountTestService(t)

	_, err := svc.Register(ctx, annRegistration())
	require.NoError(t, err)

	again := annRegistration()
	again.Email = "ANN@X.COM"
	_, err = svc.Register(ctx, again)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	count, err := store.New(db).CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegister_ValidationFailure(t *testing.T) {
	svc, _, ctx, db := newAccountTestService(t)

	f := annRegistration()
	f.Name = "John3"
	_, err := svc.Register(ctx, f)

	fields, ok := FieldErrors(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.Equal(t, validation.MsgAlphaOnly, fields.ByField()[model.FieldName])

	count, err := store.New(db).CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestVerifyCredentials_UnknownEmail(t *testing.T) {
	svc, _, ctx, _ := newAccountTestService(t)

	_, err := svc.VerifyCredentials(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_CaseInsensitiveEmail(t *testing.T) {
	svc, _, ctx, _ := newAccountTestService(t)

	_, err := svc.Register(ctx, annRegistration())
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, model.LoginForm{Email: "Ann@X.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestAuthenticate_FailureLeavesSessionUnbound(t *testing.T) {
	svc, sm, ctx, _ := newAccountTestService(t)

	_, err := svc.Register(ctx, annRegistration())
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, model.LoginForm{Email: "ann@x.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Zero(t, sm.GetInt64(ctx, SessionKeyUserID))
	assert.False(t, svc.IsAuthenticated(ctx))
}

func TestCurrentIdentity(t *testing.T) {
	svc, sm, ctx, db := newAccountTestService(t)

	_, err := svc.CurrentIdentity(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	user, err := svc.Register(ctx, annRegistration())
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, model.LoginForm{Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	current, err := svc.CurrentIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
	assert.Equal(t, "Ann Lee", current.Name)

	// A binding to a vanished user is dropped.
	_, err = db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", user.ID)
	require.NoError(t, err)
	_, err = svc.CurrentIdentity(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, sm.GetInt64(ctx, SessionKeyUserID))
}

func TestRequireAdmin(t *testing.T) {
	svc, _, _, _ := newAccountTestService(t)

	assert.ErrorIs(t, svc.RequireAdmin(model.User{ID: 1}), ErrForbidden)
	assert.NoError(t, svc.RequireAdmin(model.User{ID: 1, IsAdmin: true}))
}

func TestEndSession(t *testing.T) {
	svc, _, ctx, _ := newAccountTestService(t)

	_, err := svc.Register(ctx, annRegistration())
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, model.LoginForm{Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.True(t, svc.IsAuthenticated(ctx))

	require.NoError(t, svc.EndSession(ctx))
	_, err = svc.CurrentIdentity(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestListUsers(t *testing.T) {
	svc, _, ctx, _ := newAccountTestService(t)

	_, err := svc.Register(ctx, annRegistration())
	require.NoError(t, err)
	other := annRegistration()
	other.Email = "bo@x.com"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ann@x.com", users[0].Email)
	assert.Equal(t, "bo@x.com", users[1].Email)
}

func TestVerifyCredentials_StorageFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = ?")).
		WithArgs("ann@x.com").
		WillReturnError(errors.New("disk I/O error"))

	svc := NewAccountService(db, nil)
	_, err = svc.VerifyCredentials(context.Background(), "ann@x.com", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_StorageFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errors.New("database is locked"))

	svc := NewAccountService(db, nil)
	_, err = svc.Register(context.Background(), annRegistration())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}
