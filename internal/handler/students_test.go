// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/service"
	"github.com/olegiv/rollcall/internal/session"
	"github.com/olegiv/rollcall/internal/validation"
)

func studentValues(name, email, age string) url.Values {
	return url.Values{
		model.FieldName:  {name},
		model.FieldEmail: {email},
		model.FieldAge:   {age},
	}
}

func withID(r *http.Request, id int64) *http.Request {
	return requestWithURLParams(r, map[string]string{"id": strconv.FormatInt(id, 10)})
}

func (e *testEnv) createStudent(t *testing.T, name, email, age string) model.Student {
	t.Helper()
	s, err := e.students.Create(context.Background(), model.StudentForm{Name: name, Email: email, Age: age})
	require.NoError(t, err)
	return s
}

func TestStudentsHandler_List(t *testing.T) {
	env := newTestEnv(t)
	h := NewStudentsHandler(env.students, env.renderer)

	w := httptest.NewRecorder()
	h.List(w, env.get(t, RouteStudents))
	assertStatus(t, w.Code, http.StatusOK)
	assert.Contains(t, w.Body.String(), "No students yet.")

	env.createStudent(t, "Bo", "bo@example.com", "20")

	w = httptest.NewRecorder()
	h.List(w, env.get(t, RouteStudents))
	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assert.Contains(t, body, "bo@example.com")
	assert.NotContains(t, body, "No students yet.")
}

func TestStudentsHandler_AddForm(t *testing.T) {
	env := newTestEnv(t)
	h := NewStudentsHandler(env.students, env.renderer)

	w := httptest.NewRecorder()
	h.AddForm(w, env.get(t, RouteStudentAdd))

	assertStatus(t, w.Code, http.StatusOK)
	assert.Contains(t, w.Body.String(), "Add Student")
}

func TestStudentsHandler_Add(t *testing.T) {
	env := newTestEnv(t)
	h := NewStudentsHandler(env.students, env.renderer)

	req := env.post(t, RouteStudentAdd, studentValues("Bo", "bo@example.com", "20"))
	w := httptest.NewRecorder()
	h.Add(w, req)

	assertRedirect(t, w, RouteStudents)
	msg, typ := env.popFlash(req)
	assert.Equal(t, msgStudentAdded, msg)
	assert.Equal(t, session.FlashSuccess, typ)

	students, err := env.students.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Bo", students[0].Name)
	assert.Equal(t, int64(20), students[0].Age)
}

func TestStudentsHandler_Add_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		wantMsg string
	}{
		{"digit in name", studentValues("John3", "john@example.com", "20"), validation.MsgAlphaOnly},
		{"bad email", studentValues("Bo", "bo-at-example", "20"), validation.MsgInvalidEmail},
		{"non numeric age", studentValues("Bo", "bo@example.com", "twenty"), validation.MsgAgeDigits},
		{"missing age", studentValues("Bo", "bo@example.com", ""), validation.MsgRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			h := NewStudentsHandler(env.students, env.renderer)

			w := httptest.NewRecorder()
			h.Add(w, env.post(t, RouteStudentAdd, tt.values))

			assertStatus(t, w.Code, http.StatusOK)
			assert.Contains(t, w.Body.String(), tt.wantMsg)

			students, err := env.students.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, students)
		})
	}
}

func TestStudentsHandler_EditForm_Prefilled(t *testing.T) {
	env := newTestEnv(t)
	h := NewStudentsHandler(env.students, env.renderer)
	s := env.createStudent(t, "Bo", "bo@example.com", "20")

	w := httptest.NewRecorder()
	h.EditForm(w, withID(env.get(t, "/student/edit/1"), s.ID))

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	assert.Contains(t, body, `value="Bo"`)
	assert.Contains(t, body, `value="bo@example.com"`)
	assert.Contains(t, body, `value="20"`)
}

func TestStudentsHandler_EditForm_NotFound(t *testing.T) {
	env := newTestEnv(t)
	h := NewStudentsHandler(env.students, env.renderer)

	w := httptest.NewRecorder()
	h.EditForm(w, withID(env.get(t, "/student/edit/99"), 99))
	assertStatus(t, w.Code, http.StatusNotFound)

	w = httptest.NewRecorder()
	h.EditForm(w, requestWithURLParams(env.get(t, "/student/edit/abc"), map[string]string{"id": "abc"}))
	assertStatus(t, w.Code, http.StatusNotFound)
}

func TestStudentsHandler_Edit(t *testing.T) {
	env := newTestEnv(t)
	h := NewStudentsHandler(env.students, env.renderer)
	s := env.createStudent(t, "Bo", "bo@example.com", "20")

	req := withID(env.post(t, "/student/edit/1", studentValues("Bo Ray", "bo@example.com", "21")), s.ID)
	w := httptest.NewRecorder()
	h.Edit(w, req)

	assertRedirect(t, w, RouteStudents)
	msg, _ := env.popFlash(req)
	assert.Equal(t, msgStudentUpdated, msg)

	got, err := env.students.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bo Ray", got.Name)
	assert.Equal(t, int64(21), got.Age)
}

func TestStudentsHandler_Edit_ValidationError(t *testing.T) {
	env := newTestEnv(t)
	h := NewStudentsHandler(env.students, env.renderer)
	s := env.createStudent(t, "Bo", "bo@example.com", "20")

	w := httptest.NewRecorder()
	h.Edit(w, withID(env.post(t, "/student/edit/1", studentValues("Bo", "bo@example.com", "-1")), s.ID))

	assertStatus(t, w.Code, http.StatusOK)
	assert.Contains(t, w.Body.String(), validation.MsgAgeDigits)

	got, err := env.students.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got.Age)
}

func TestStudentsHandler_Edit_NotFound(t *testing.T) {
	env := newTestEnv(t)
	h := NewStudentsHandler(env.students, env.renderer)

	w := httptest.NewRecorder()
	h.Edit(w, withID(env.post(t, "/student/edit/42", studentValues("Bo", "bo@example.com", "20")), 42))
	assertStatus(t, w.Code, http.StatusNotFound)
}

func TestStudentsHandler_Delete(t *testing.T) {
	env := newTestEnv(t)
	h := NewStudentsHandler(env.students, env.renderer)
	s := env.createStudent(t, "Bo", "bo@example.com", "20")

	req := withID(env.post(t, "/student/delete/1", nil), s.ID)
	w := httptest.NewRecorder()
	h.Delete(w, req)

	assertRedirect(t, w, RouteStudents)
	msg, typ := env.popFlash(req)
	assert.Equal(t, msgStudentDeleted, msg)
	assert.Equal(t, session.FlashInfo, typ)

	_, err := env.students.Get(context.Background(), s.ID)
	assert.True(t, errors.Is(err, service.ErrNotFound))

	w = httptest.NewRecorder()
	h.Delete(w, withID(env.post(t, "/student/delete/1", nil), s.ID))
	assertStatus(t, w.Code, http.StatusNotFound)
}
