// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package validation checks submitted form values against small composable
// rules. It never touches storage.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// Rule checks a single field value. A nil error means the value passes.
type Rule func(value string) error

// errStop ends a field's rule chain without reporting a failure.
var errStop = errors.New("stop validation")

var (
	alphaPattern  = regexp.MustCompile(`^[A-Za-z ]+$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)

	validate = validator.New()
)

// Messages shown to users.
const (
	MsgRequired     = "This field is required."
	MsgInvalidEmail = "Invalid email address."
	MsgAlphaOnly    = "Name must contain only alphabets and spaces."
	MsgNumbersOnly  = "Numbers only"
	MsgAgeDigits    = "Only numbers allowed"
	MsgAgeTooLarge  = "Age is too large."
)

// Normalize trims surrounding whitespace and converts to Unicode NFC so
// visually identical input compares equal.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Required fails when the value is empty after trimming whitespace.
func Required() Rule {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New(MsgRequired)
		}
		return nil
	}
}

// Optional skips the remaining rules when the value is empty.
func Optional() Rule {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errStop
		}
		return nil
	}
}

// Length checks the value's length in characters. A negative max means no
// upper bound.
func Length(minLen, maxLen int) Rule {
	return func(value string) error {
		n := utf8.RuneCountInString(value)
		if n >= minLen && (maxLen < 0 || n <= maxLen) {
			return nil
		}
		if maxLen < 0 {
			return fmt.Errorf("Field must be at least %d characters long.", minLen)
		}
		return fmt.Errorf("Field must be between %d and %d characters long.", minLen, maxLen)
	}
}

// Matches fails with msg unless the whole value matches re.
func Matches(re *regexp.Regexp, msg string) Rule {
	return func(value string) error {
		if !re.MatchString(value) {
			return errors.New(msg)
		}
		return nil
	}
}

// AlphaOnly accepts ASCII letters and spaces only.
func AlphaOnly() Rule {
	return Matches(alphaPattern, MsgAlphaOnly)
}

// Digits accepts ASCII digits only.
func Digits(msg string) Rule {
	return Matches(digitsPattern, msg)
}

// Email checks the value has the shape of an email address.
func Email() Rule {
	return func(value string) error {
		if err := validate.Var(value, "email"); err != nil {
			return errors.New(MsgInvalidEmail)
		}
		return nil
	}
}

// EqualTo fails unless the value equals other. otherName is the field
// named in the failure message.
func EqualTo(other, otherName string) Rule {
	return func(value string) error {
		if value != other {
			return fmt.Errorf("Field must be equal to %s.", otherName)
		}
		return nil
	}
}
