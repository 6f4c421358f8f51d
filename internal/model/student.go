// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strconv"
	"time"

	"github.com/olegiv/rollcall/internal/store"
)

// Student is a managed student record.
type Student struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int64     `json:"age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentFromStore converts a store row.
func StudentFromStore(s store.Student) Student {
	return Student{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Age:       s.Age,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// StudentsFromStore converts a slice of store rows.
func StudentsFromStore(rows []store.Student) []Student {
	students := make([]Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, StudentFromStore(r))
	}
	return students
}

// Form returns the student's values as an edit form.
func (s Student) Form() StudentForm {
	return StudentForm{
		Name:  s.Name,
		Email: s.Email,
		Age:   strconv.FormatInt(s.Age, 10),
	}
}
