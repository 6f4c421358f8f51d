// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/rollcall/internal/middleware"
	"github.com/olegiv/rollcall/internal/model"
	"github.com/olegiv/rollcall/internal/render"
	"github.com/olegiv/rollcall/internal/service"
)

// ContactHandler handles the contact form.
type ContactHandler struct {
	contacts *service.ContactService
	renderer *render.Renderer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contacts *service.ContactService, renderer *render.Renderer) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		renderer: renderer,
	}
}

// Form renders the contact page.
// GET /contact
func (h *ContactHandler) Form(w http.ResponseWriter, r *http.Request) {
	data := page(r, "Contact")
	data.Form = model.ContactForm{}
	renderPage(w, r, h.renderer, pageContact, data)
}

// Submit stores a contact message.
// POST /contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteContact) {
		return
	}

	form := model.ContactForm{
		Name:    formValue(r, model.FieldName),
		Email:   formValue(r, model.FieldEmail),
		Phone:   formValue(r, model.FieldPhone),
		Address: r.PostFormValue(model.FieldAddress),
		Website: r.PostFormValue(model.FieldWebsite),
		Message: r.PostFormValue(model.FieldMessage),
	}

	contact, err := h.contacts.Submit(r.Context(), form)
	if err != nil {
		if fields, ok := service.FieldErrors(err); ok {
			data := page(r, "Contact")
			data.Form = form
			data.Errors = fields.ByField()
			renderPage(w, r, h.renderer, pageContact, data)
			return
		}
		logAndInternalError(w, "failed to store contact", "error", err)
		return
	}

	slog.Info("contact submitted", "reference", contact.Reference, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, RouteRoot, msgContactSubmitted+" Reference: "+contact.Reference)
}
