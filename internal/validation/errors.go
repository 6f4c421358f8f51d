// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validation

import (
	"errors"
	"strings"
)

// FieldError is a single failed rule for a named field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors collects the failures of one submission, in field order.
type Errors []FieldError

// Field runs rules against value in order and returns the first failure,
// or nil when the value passes.
func Field(name, value string, rules ...Rule) *FieldError {
	for _, rule := range rules {
		err := rule(value)
		if err == nil {
			continue
		}
		if errors.Is(err, errStop) {
			return nil
		}
		return &FieldError{Field: name, Message: err.Error()}
	}
	return nil
}

// Check appends the first failure for the field, if any.
func (e *Errors) Check(name, value string, rules ...Rule) {
	if fe := Field(name, value, rules...); fe != nil {
		*e = append(*e, *fe)
	}
}

// Add records a failure that was found outside the rule chain.
func (e *Errors) Add(name, message string) {
	*e = append(*e, FieldError{Field: name, Message: message})
}

// OK reports whether no field failed.
func (e Errors) OK() bool {
	return len(e) == 0
}

// ByField maps field names to their failure message, for templates.
func (e Errors) ByField() map[string]string {
	m := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := m[fe.Field]; !ok {
			m[fe.Field] = fe.Message
		}
	}
	return m
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}
