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
	"github.com/olegiv/rollcall/internal/testutil"
	"github.com/olegiv/rollcall/internal/validation"
)

func TestStudentLifecycle(t *testing.T) {
	svc := NewStudentService(testutil.TestMemoryDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, model.StudentForm{Name: "Bo", Email: "bo@x.com", Age: "20"})
	require.NoError(t, err)
	assert.Equal(t, int64(20), created.Age)

	updated, err := svc.Update(ctx, created.ID, model.StudentForm{Name: "Bo", Email: "bo@x.com", Age: "21"})
	require.NoError(t, err)
	assert.Equal(t, int64(21), updated.Age)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(21), fetched.Age)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentList(t *testing.T) {
	svc := NewStudentService(testutil.TestMemoryDB(t))
	ctx := context.Background()

	students, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)

	for _, name := range []string{"Bo", "Cy"} {
		_, err := svc.Create(ctx, model.StudentForm{Name: name, Email: "s@x.com", Age: "18"})
		require.NoError(t, err)
	}

	students, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Bo", students[0].Name)
	assert.Equal(t, "Cy", students[1].Name)
}

func TestStudentNotFound(t *testing.T) {
	svc := NewStudentService(testutil.TestMemoryDB(t))
	ctx := context.Background()

	_, err := svc.Get(ctx, 999)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(999), nf.ID)
	assert.Equal(t, "student 999 not found", nf.Error())

	_, err = svc.Update(ctx, 999, model.StudentForm{Name: "Bo", Email: "bo@x.com", Age: "1"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 999), ErrNotFound)
}

func TestStudentValidation(t *testing.T) {
	svc := NewStudentService(testutil.TestMemoryDB(t))
	ctx := context.Background()

	tests := []struct {
		name  string
		form  model.StudentForm
		field string
	}{
		{"name with digits", model.StudentForm{Name: "John3", Email: "j@x.com", Age: "20"}, model.FieldName},
		{"age not numeric", model.StudentForm{Name: "Bo", Email: "bo@x.com", Age: "20y"}, model.FieldAge},
		{"bad email", model.StudentForm{Name: "Bo", Email: "bo", Age: "20"}, model.FieldEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.form)
			fields, ok := FieldErrors(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Contains(t, fields.ByField(), tt.field)
		})
	}

	students, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, students, "rejected submissions must not be stored")
}

func TestStudentUpdate_ValidationKeepsRecord(t *testing.T) {
	svc := NewStudentService(testutil.TestMemoryDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, model.StudentForm{Name: "Bo", Email: "bo@x.com", Age: "20"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, model.StudentForm{Name: "Bo", Email: "bo@x.com", Age: "-1"})
	fields, ok := FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, validation.MsgAgeDigits, fields.ByField()[model.FieldAge])

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), fetched.Age)
}

func TestStudentDelete_StorageFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnError(errors.New("disk I/O error"))

	err = NewStudentService(db).Delete(context.Background(), 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
