// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth     = "auth"
	EventCategoryUser     = "user"
	EventCategoryStudent  = "student"
	EventCategoryContact  = "contact"
	EventCategorySecurity = "security"
	EventCategorySystem   = "system"
)

// EventCategories lists every category in display order.
var EventCategories = []string{
	EventCategoryAuth,
	EventCategorySecurity,
	EventCategoryStudent,
	EventCategoryContact,
	EventCategoryUser,
	EventCategorySystem,
}

// IsEventCategory reports whether c is a known category.
func IsEventCategory(c string) bool {
	for _, known := range EventCategories {
		if c == known {
			return true
		}
	}
	return false
}
