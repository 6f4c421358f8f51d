// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/store"
	"github.com/olegiv/rollcall/internal/validation"
)

// ContactService stores contact messages.
type ContactService struct {
	queries *store.Queries
}

// NewContactService creates a new ContactService.
func NewContactService(db *sql.DB) *ContactService {
	return &ContactService{
		queries: store.New(db),
	}
}

// Submit validates the form and stores the message under a fresh reference.
// Free text is kept as typed apart from normalization; templates escape it
// on output.
func (s *ContactService) Submit(ctx context.Context, f model.ContactForm) (model.Contact, error) {
	f.Address = validation.Normalize(f.Address)
	f.Website = validation.Normalize(f.Website)
	f.Message = validation.Normalize(f.Message)

	if errs := validation.ValidateContact(f); !errs.OK() {
		return model.Contact{}, &ValidationError{Fields: errs}
	}

	contact, err := s.queries.CreateContact(ctx, store.CreateContactParams{
		Reference: uuid.NewString(),
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		Address:   f.Address,
		Website:   f.Website,
		Message:   f.Message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return model.Contact{}, fmt.Errorf("creating contact: %w", err)
	}
	return model.ContactFromStore(contact), nil
}

// Count returns the number of stored contact messages.
func (s *ContactService) Count(ctx context.Context) (int64, error) {
	n, err := s.queries.CountContacts(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting contacts: %w", err)
	}
	return n, nil
}
