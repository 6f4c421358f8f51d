// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/store"
	"github.com/olegiv/rollcall/internal/validation"
)

const entityStudent = "student"

// StudentService manages student records. Concurrent edits are
// last-write-wins.
type StudentService struct {
	queries *store.Queries
}

// NewStudentService creates a new StudentService.
func NewStudentService(db *sql.DB) *StudentService {
	return &StudentService{queries: store.New(db)}
}

// List returns all students ordered by id.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.queries.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	return model.StudentsFromStore(students), nil
}

// Get returns a student or a *NotFoundError.
func (s *StudentService) Get(ctx context.Context, id int64) (model.Student, error) {
	student, err := s.queries.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Student{}, &NotFoundError{Entity: entityStudent, ID: id}
		}
		return model.Student{}, fmt.Errorf("getting student %d: %w", id, err)
	}
	return model.StudentFromStore(student), nil
}

// Create validates the form and inserts a student.
func (s *StudentService) Create(ctx context.Context, f model.StudentForm) (model.Student, error) {
	age, err := checkStudent(f)
	if err != nil {
		return model.Student{}, err
	}

	now := time.Now().UTC()
	student, err := s.queries.CreateStudent(ctx, store.CreateStudentParams{
		Name:      f.Name,
		Email:     f.Email,
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Student{}, fmt.Errorf("creating student: %w", err)
	}
	return model.StudentFromStore(student), nil
}

// Update validates the form and overwrites the student's fields.
func (s *StudentService) Update(ctx context.Context, id int64, f model.StudentForm) (model.Student, error) {
	age, err := checkStudent(f)
	if err != nil {
		return model.Student{}, err
	}

	student, err := s.queries.UpdateStudent(ctx, store.UpdateStudentParams{
		Name:      f.Name,
		Email:     f.Email,
		Age:       age,
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Student{}, &NotFoundError{Entity: entityStudent, ID: id}
		}
		return model.Student{}, fmt.Errorf("updating student %d: %w", id, err)
	}
	return model.StudentFromStore(student), nil
}

// Delete removes a student or returns a *NotFoundError.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	rows, err := s.queries.DeleteStudent(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting student %d: %w", id, err)
	}
	if rows == 0 {
		return &NotFoundError{Entity: entityStudent, ID: id}
	}
	return nil
}

func checkStudent(f model.StudentForm) (int64, error) {
	if errs := validation.ValidateStudent(f); !errs.OK() {
		return 0, &ValidationError{Fields: errs}
	}
	age, err := validation.ParseAge(f.Age)
	if err != nil {
		return 0, fmt.Errorf("parsing age: %w", err)
	}
	return age, nil
}
