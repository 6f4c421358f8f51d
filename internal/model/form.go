// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Form field names as they appear in the HTML forms.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldAddress         = "address"
	FieldWebsite         = "website"
	FieldMessage         = "message"
	FieldAge             = "age"
)

// RegistrationForm is a submitted registration.
type RegistrationForm struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// LoginForm is a submitted login attempt.
type LoginForm struct {
	Email    string
	Password string
}

// ContactForm is a submitted contact message.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Website string
	Message string
}

// StudentForm is a submitted student record. Age stays a string until
// validation has checked it.
type StudentForm struct {
	Name  string
	Email string
	Age   string
}
