// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/rollcall/internal/middleware"
	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/render"
	"github.com/olegiv/rollcall/internal/scheduler"
	"github.com/olegiv/rollcall/internal/service"
	"github.com/olegiv/rollcall/internal/store"
)

// JobRunner lists the background jobs and runs one on demand.
type JobRunner interface {
	List() []scheduler.JobInfo
	TriggerNow(name string) error
}

// AdminHandler handles the admin dashboard.
type AdminHandler struct {
	accounts *service.AccountService
	contacts *service.ContactService
	events   *service.EventService
	jobs     JobRunner
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(accounts *service.AccountService, contacts *service.ContactService, events *service.EventService, jobs JobRunner, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{
		accounts: accounts,
		contacts: contacts,
		events:   events,
		jobs:     jobs,
		renderer: renderer,
	}
}

// DashboardData holds the admin dashboard data.
type DashboardData struct {
	UserCount    int64
	Users        []model.User
	ContactCount int64
	Events       []store.Event
	Category     string
	Categories   []string
	Jobs         []scheduler.JobInfo
}

// eventCategoryAll selects events of every category on the dashboard.
const eventCategoryAll = "all"

// dashboardCategory reads the ?category= filter. Unknown values fall back
// to auth events.
func dashboardCategory(r *http.Request) string {
	c := r.URL.Query().Get("category")
	if c == eventCategoryAll || model.IsEventCategory(c) {
		return c
	}
	return model.EventCategoryAuth
}

// Dashboard renders the admin dashboard.
// GET /admin?category=auth
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userCount, err := h.accounts.CountUsers(ctx)
	if err != nil {
		logAndInternalError(w, "failed to count users", "error", err)
		return
	}

	users, err := h.accounts.ListUsers(ctx)
	if err != nil {
		logAndInternalError(w, "failed to list users", "error", err)
		return
	}

	contactCount, err := h.contacts.Count(ctx)
	if err != nil {
		logAndInternalError(w, "failed to count contacts", "error", err)
		return
	}

	category := dashboardCategory(r)
	filter := category
	if filter == eventCategoryAll {
		filter = ""
	}

	events, err := h.events.Recent(ctx, filter, adminEventLimit)
	if err != nil {
		logAndInternalError(w, "failed to list events", "error", err)
		return
	}

	data := page(r, "Admin")
	data.Data = DashboardData{
		UserCount:    userCount,
		Users:        users,
		ContactCount: contactCount,
		Events:       events,
		Category:     category,
		Categories:   append([]string{eventCategoryAll}, model.EventCategories...),
		Jobs:         h.jobs.List(),
	}
	renderPage(w, r, h.renderer, pageAdmin, data)
}

// RunJob runs a background job immediately.
// POST /admin/jobs/{name}/run
func (h *AdminHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.jobs.TriggerNow(name); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			renderNotFound(w, r, h.renderer)
			return
		}
		slog.Error("failed to run job", "error", err, "job", name)
		flashError(w, r, h.renderer, RouteAdmin, msgJobFailed+": "+err.Error())
		return
	}

	_ = h.events.LogEvent(r.Context(), model.EventLevelInfo, model.EventCategorySystem,
		"Job manually triggered: "+name, middleware.GetUserIDPtr(r), middleware.GetClientIP(r),
		map[string]any{"job": name})

	slog.Info("job triggered", "job", name, "triggered_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, RouteAdmin, msgJobRan)
}
