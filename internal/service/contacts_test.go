// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/testutil"
)

func validContact() model.ContactForm {
	return model.ContactForm{
		Name:    "Ann Lee",
		Email:   "ann@x.com",
		Phone:   "1234567890",
		Address: "1 Main St",
		Message: "Hello there",
	}
}

func TestContactSubmit(t *testing.T) {
	svc := NewContactService(testutil.TestMemoryDB(t))
	ctx := context.Background()

	contact, err := svc.Submit(ctx, validContact())
	require.NoError(t, err)
	assert.NotZero(t, contact.ID)
	_, err = uuid.Parse(contact.Reference)
	assert.NoError(t, err, "reference should be a UUID")
	assert.Empty(t, contact.Website)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestContactSubmit_KeepsTextAsTyped(t *testing.T) {
	svc := NewContactService(testutil.TestMemoryDB(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"comparison operators", "Is 3<5 and x<y true? please call me", "Is 3<5 and x<y true? please call me"},
		{"tag-like text", "use <b>bold</b> here", "use <b>bold</b> here"},
		{"ampersand", "Tom & Jerry", "Tom & Jerry"},
		{"surrounding whitespace", "  hello  ", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validContact()
			f.Message = tt.message
			contact, err := svc.Submit(ctx, f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, contact.Message)
		})
	}
}

func TestContactSubmit_Rejections(t *testing.T) {
	svc := NewContactService(testutil.TestMemoryDB(t))

	tests := []struct {
		name   string
		modify func(*model.ContactForm)
		field  string
	}{
		{"name with digits", func(f *model.ContactForm) { f.Name = "John3" }, model.FieldName},
		{"phone with letters", func(f *model.ContactForm) { f.Phone = "555-CALL" }, model.FieldPhone},
		{"missing address", func(f *model.ContactForm) { f.Address = "" }, model.FieldAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validContact()
			tt.modify(&f)
			_, err := svc.Submit(context.Background(), f)
			fields, ok := FieldErrors(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Contains(t, fields.ByField(), tt.field)
		})
	}
}
