// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/rollcall/internal/handler"
	"github.com/olegiv/rollcall/internal/middleware"
	"github.com/olegiv/rollcall/web"
)

// requestTimeout bounds every request handled by the router.
const requestTimeout = 30 * time.Second

// routes builds the router with the global middleware stack and every page.
func (a *app) routes(dataDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if a.cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	securityCfg := middleware.DefaultSecurityHeadersConfig(a.cfg.IsDevelopment())
	securityCfg.ExcludePaths = []string{handler.RouteHealth}
	r.Use(middleware.SecurityHeaders(securityCfg))

	r.Use(a.sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(a.cfg.CSRFSecret), a.cfg.IsDevelopment(), a.cfg.ServerPort)))
	r.Use(middleware.LoadUser(a.accounts))

	pagesHandler := handler.NewPagesHandler(a.renderer)
	authHandler := handler.NewAuthHandler(a.accounts, a.events, a.renderer, a.loginProtection)
	contactHandler := handler.NewContactHandler(a.contacts, a.renderer)
	studentsHandler := handler.NewStudentsHandler(a.students, a.renderer)
	adminHandler := handler.NewAdminHandler(a.accounts, a.contacts, a.events, a.scheduler, a.renderer)
	healthHandler := handler.NewHealthHandler(a.db, dataDir, a.versionInfo)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS()))))

	// Health checks
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)

	// Public pages
	r.Get(handler.RouteRoot, pagesHandler.Home)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RedirectIfAuthenticated(a.accounts, handler.RouteRoot))
		r.Get(handler.RouteRegister, authHandler.RegisterForm)
		r.With(a.formLimiter.Middleware()).Post(handler.RouteRegister, authHandler.Register)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RedirectIfAuthenticated(a.accounts, handler.RouteStudents))
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(a.loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
	})

	// Authenticated pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(a.sessionManager))

		r.Get(handler.RouteLogout, authHandler.Logout)

		r.Get(handler.RouteContact, contactHandler.Form)
		r.With(a.formLimiter.Middleware()).Post(handler.RouteContact, contactHandler.Submit)

		r.Get(handler.RouteStudents, studentsHandler.List)
		r.Get(handler.RouteStudentAdd, studentsHandler.AddForm)
		r.Post(handler.RouteStudentAdd, studentsHandler.Add)
		r.Get(handler.RouteStudentEdit, studentsHandler.EditForm)
		r.Post(handler.RouteStudentEdit, studentsHandler.Edit)
		r.Post(handler.RouteStudentDelete, studentsHandler.Delete)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(a.sessionManager, a.accounts, a.events))
			r.Get(handler.RouteAdmin, adminHandler.Dashboard)
			r.Post(handler.RouteAdminJobRun, adminHandler.RunJob)
		})
	})

	r.NotFound(pagesHandler.NotFound)

	return r
}
