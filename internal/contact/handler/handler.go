// Package handler exposes the contact API over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pessoas/internal/contact/models"
	"pessoas/internal/platform/middleware"
	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/platform/httputil"
	"pessoas/pkg/platform/middleware/auth"
	"pessoas/pkg/platform/middleware/metadata"
	"pessoas/pkg/requestcontext"
)

const requestTimeout = 30 * time.Second

// Service defines the interface for contact operations.
type Service interface {
	Add(ctx context.Context, personKey id.PersonKey, req *models.AddContactRequest) (*models.Contact, error)
	Remove(ctx context.Context, personKey id.PersonKey, contactID id.ContactID) error
	ListByPerson(ctx context.Context, personKey id.PersonKey) ([]*models.Contact, error)
}

type Handler struct {
	service      Service
	logger       *slog.Logger
	jwtValidator auth.Validator
}

func New(service Service, logger *slog.Logger, jwtValidator auth.Validator) *Handler {
	return &Handler{service: service, logger: logger, jwtValidator: jwtValidator}
}

// Register mounts the contact routes under the person resource.
func (h *Handler) Register(r chi.Router) {
	contacts := chi.NewRouter()
	contacts.Use(middleware.Recovery(h.logger))
	contacts.Use(middleware.RequestID)
	contacts.Use(middleware.RequestTime)
	contacts.Use(middleware.Logger(h.logger))
	contacts.Use(middleware.Timeout(requestTimeout))
	contacts.Use(middleware.ContentTypeJSON)
	contacts.Use(metadata.Handler)
	contacts.Use(auth.RequireAuth(h.jwtValidator, h.logger))

	contacts.Post("/", h.HandleAdd)
	contacts.Get("/", h.HandleList)
	contacts.Delete("/{contactID}", h.HandleRemove)

	r.Mount("/people/{key}/contacts", contacts)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	personKey, ok := h.personKey(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AddContactRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	contact, err := h.service.Add(ctx, personKey, req)
	if err != nil {
		h.logger.WarnContext(ctx, "add contact failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toContactResponse(contact))
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	personKey, ok := h.personKey(w, r)
	if !ok {
		return
	}
	contactID, err := id.ParseContactID(chi.URLParam(r, "contactID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid contact id"))
		return
	}

	if err := h.service.Remove(ctx, personKey, contactID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	personKey, ok := h.personKey(w, r)
	if !ok {
		return
	}

	contacts, err := h.service.ListByPerson(ctx, personKey)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toContactListResponse(contacts))
}

func (h *Handler) personKey(w http.ResponseWriter, r *http.Request) (id.PersonKey, bool) {
	key, err := id.ParsePersonKey(chi.URLParam(r, "key"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person key"))
		return id.PersonKey{}, false
	}
	return key, true
}
