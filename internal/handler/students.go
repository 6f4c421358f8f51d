// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/rollcall/internal/middleware"
	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/render"
	"github.com/olegiv/rollcall/internal/service"
	"github.com/olegiv/rollcall/internal/session"
)

// StudentsHandler handles the student list and its add, edit and delete forms.
type StudentsHandler struct {
	students *service.StudentService
	renderer *render.Renderer
}

// NewStudentsHandler creates a new StudentsHandler.
func NewStudentsHandler(students *service.StudentService, renderer *render.Renderer) *StudentsHandler {
	return &StudentsHandler{
		students: students,
		renderer: renderer,
	}
}

// List renders all students.
// GET /students
func (h *StudentsHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list students", "error", err)
		return
	}

	data := page(r, "Students")
	data.Data = students
	renderPage(w, r, h.renderer, pageStudents, data)
}

// AddForm renders the empty student form.
// GET /student/add
func (h *StudentsHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "Add Student", model.StudentForm{}, nil)
}

// Add creates a student.
// POST /student/add
func (h *StudentsHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteStudentAdd) {
		return
	}

	form := studentFormFromRequest(r)
	student, err := h.students.Create(r.Context(), form)
	if err != nil {
		if fields, ok := service.FieldErrors(err); ok {
			h.renderForm(w, r, "Add Student", form, fields.ByField())
			return
		}
		logAndInternalError(w, "failed to create student", "error", err)
		return
	}

	slog.Info("student created", "student_id", student.ID, "by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, RouteStudents, msgStudentAdded)
}

// EditForm renders the form pre-filled with the stored student.
// GET /student/edit/{id}
func (h *StudentsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		renderNotFound(w, r, h.renderer)
		return
	}

	student, err := h.students.Get(r.Context(), id)
	if err != nil {
		h.handleLookupError(w, r, err, "failed to get student", id)
		return
	}

	h.renderForm(w, r, "Edit Student", student.Form(), nil)
}

// Edit updates a student.
// POST /student/edit/{id}
func (h *StudentsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		renderNotFound(w, r, h.renderer)
		return
	}

	if _, err := h.students.Get(r.Context(), id); err != nil {
		h.handleLookupError(w, r, err, "failed to get student", id)
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, RouteStudents) {
		return
	}

	form := studentFormFromRequest(r)
	if _, err := h.students.Update(r.Context(), id, form); err != nil {
		if fields, ok := service.FieldErrors(err); ok {
			h.renderForm(w, r, "Edit Student", form, fields.ByField())
			return
		}
		h.handleLookupError(w, r, err, "failed to update student", id)
		return
	}

	slog.Info("student updated", "student_id", id, "by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, RouteStudents, msgStudentUpdated)
}

// Delete removes a student.
// POST /student/delete/{id}
func (h *StudentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		renderNotFound(w, r, h.renderer)
		return
	}

	if err := h.students.Delete(r.Context(), id); err != nil {
		h.handleLookupError(w, r, err, "failed to delete student", id)
		return
	}

	slog.Info("student deleted", "student_id", id, "by", middleware.GetUserID(r))
	flashAndRedirect(w, r, h.renderer, RouteStudents, msgStudentDeleted, session.FlashInfo)
}

func (h *StudentsHandler) renderForm(w http.ResponseWriter, r *http.Request, title string, form model.StudentForm, errs map[string]string) {
	data := page(r, title)
	data.Form = form
	data.Errors = errs
	renderPage(w, r, h.renderer, pageStudentForm, data)
}

// handleLookupError answers 404 for a missing student and 500 otherwise.
func (h *StudentsHandler) handleLookupError(w http.ResponseWriter, r *http.Request, err error, logMsg string, id int64) {
	if errors.Is(err, service.ErrNotFound) {
		renderNotFound(w, r, h.renderer)
		return
	}
	logAndInternalError(w, logMsg, "error", err, "student_id", id)
}

func studentFormFromRequest(r *http.Request) model.StudentForm {
	return model.StudentForm{
		Name:  formValue(r, model.FieldName),
		Email: formValue(r, model.FieldEmail),
		Age:   formValue(r, model.FieldAge),
	}
}
