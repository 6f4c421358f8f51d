// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/olegiv/rollcall/internal/store"
)

// Contact is a submitted contact message. Contacts are not linked to users.
type Contact struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Website   string    `json:"website,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactFromStore converts a store row.
func ContactFromStore(c store.Contact) Contact {
	return Contact{
		ID:        c.ID,
		Reference: c.Reference,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Website:   c.Website,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}
