// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides HTTP handlers for the rollcall pages.
package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot          = "/"
	RouteRegister      = "/register"
	RouteLogin         = "/login"
	RouteLogout        = "/logout"
	RouteContact       = "/contact"
	RouteStudents      = "/students"
	RouteStudentAdd    = "/student/add"
	RouteStudentEdit   = "/student/edit/{id}"
	RouteStudentDelete = "/student/delete/{id}"
	RouteAdmin         = "/admin"
	RouteAdminJobRun   = "/admin/jobs/{name}/run"

	RouteHealth      = "/health"
	RouteHealthLive  = "/health/live"
	RouteHealthReady = "/health/ready"
)

// Page template names.
const (
	pageHome        = "pages/home"
	pageRegister    = "pages/register"
	pageLogin       = "pages/login"
	pageContact     = "pages/contact"
	pageStudents    = "pages/students"
	pageStudentForm = "pages/student_form"
	pageAdmin       = "pages/admin"
	pageNotFound    = "pages/not_found"
)

// Flash messages.
const (
	msgAccountCreated   = "Account created! You can now log in."
	msgLoggedIn         = "Logged in successfully."
	msgLoginFailed      = "Login Unsuccessful. Check email and password."
	msgLoggedOut        = "You have been logged out."
	msgContactSubmitted = "Contact details submitted successfully."
	msgStudentAdded     = "Student added successfully!"
	msgStudentUpdated   = "Student updated!"
	msgStudentDeleted   = "Student deleted!"
	msgInvalidForm      = "Invalid form data."
	msgEmailTaken       = "Email is already registered."
	msgJobRan           = "Job completed."
	msgJobFailed        = "Job failed"
)

// adminEventLimit caps the auth events listed on the admin page.
const adminEventLimit = 20

// attemptsWarnThreshold is the number of remaining login attempts at which
// the failure message starts showing the count.
const attemptsWarnThreshold = 3
