// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by services, handlers and
// templates: User, Student, Contact, the submitted form shapes and event
// constants.
package model

import (
	"time"

	"github.com/olegiv/rollcall/internal/store"
)

// User is a registered account as seen outside the store. It never carries
// the password hash.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromStore converts a store row, dropping the password hash.
func UserFromStore(u store.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// UsersFromStore converts a slice of store rows.
func UsersFromStore(rows []store.User) []User {
	users := make([]User, 0, len(rows))
	for _, r := range rows {
		users = append(users, UserFromStore(r))
	}
	return users
}
