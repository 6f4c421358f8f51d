// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validation

import (
	"strconv"

	"github.com/olegiv/rollcall/internal/model"
)

// ValidateRegistration checks a registration submission.
func ValidateRegistration(f model.RegistrationForm) Errors {
	var errs Errors
	errs.Check(model.FieldName, f.Name, Required(), Length(2, 150), AlphaOnly())
	errs.Check(model.FieldEmail, f.Email, Required(), Email())
	errs.Check(model.FieldPhone, f.Phone, Required(), Length(10, 20), Digits(MsgNumbersOnly))
	errs.Check(model.FieldPassword, f.Password, Required(), Length(6, -1))
	errs.Check(model.FieldConfirmPassword, f.ConfirmPassword, Required(), EqualTo(f.Password, model.FieldPassword))
	return errs
}

// ValidateBootstrapAdmin checks the configured admin account against the
// registration rules. Phone and password may be empty because promoting an
// existing account needs neither.
func ValidateBootstrapAdmin(f model.RegistrationForm) Errors {
	var errs Errors
	errs.Check(model.FieldName, f.Name, Required(), Length(2, 150), AlphaOnly())
	errs.Check(model.FieldEmail, f.Email, Required(), Email())
	errs.Check(model.FieldPhone, f.Phone, Optional(), Length(10, 20), Digits(MsgNumbersOnly))
	errs.Check(model.FieldPassword, f.Password, Optional(), Length(6, -1))
	return errs
}

// ValidateLogin checks a login submission.
func ValidateLogin(f model.LoginForm) Errors {
	var errs Errors
	errs.Check(model.FieldEmail, f.Email, Required(), Email())
	errs.Check(model.FieldPassword, f.Password, Required())
	return errs
}

// ValidateContact checks a contact message submission.
func ValidateContact(f model.ContactForm) Errors {
	var errs Errors
	errs.Check(model.FieldName, f.Name, Required(), AlphaOnly())
	errs.Check(model.FieldEmail, f.Email, Required(), Email())
	errs.Check(model.FieldPhone, f.Phone, Required(), Digits(MsgNumbersOnly))
	errs.Check(model.FieldAddress, f.Address, Required())
	errs.Check(model.FieldWebsite, f.Website, Optional())
	errs.Check(model.FieldMessage, f.Message, Required())
	return errs
}

// ValidateStudent checks a student submission, including that the age
// fits in an int64.
func ValidateStudent(f model.StudentForm) Errors {
	var errs Errors
	errs.Check(model.FieldName, f.Name, Required(), AlphaOnly())
	errs.Check(model.FieldEmail, f.Email, Required(), Email())
	if fe := Field(model.FieldAge, f.Age, Required(), Digits(MsgAgeDigits)); fe != nil {
		errs = append(errs, *fe)
	} else if _, err := ParseAge(f.Age); err != nil {
		errs.Add(model.FieldAge, MsgAgeTooLarge)
	}
	return errs
}

// ParseAge converts a validated age string.
func ParseAge(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
