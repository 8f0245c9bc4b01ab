// Package handler exposes the address API over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pessoas/internal/address/models"
	"pessoas/internal/platform/middleware"
	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/platform/httputil"
	"pessoas/pkg/platform/middleware/auth"
	"pessoas/pkg/platform/middleware/metadata"
	"pessoas/pkg/requestcontext"
)

const requestTimeout = 30 * time.Second

// Service defines the interface for address operations.
type Service interface {
	Add(ctx context.Context, personKey id.PersonKey, req *models.AddAddressRequest) (*models.Address, error)
	Update(ctx context.Context, personKey id.PersonKey, addressID id.AddressID, req *models.UpdateAddressRequest) (*models.Address, error)
	Remove(ctx context.Context, personKey id.PersonKey, addressID id.AddressID) error
	ListByPerson(ctx context.Context, personKey id.PersonKey) ([]*models.Address, error)
}

type Handler struct {
	service      Service
	logger       *slog.Logger
	jwtValidator auth.Validator
}

func New(service Service, logger *slog.Logger, jwtValidator auth.Validator) *Handler {
	return &Handler{service: service, logger: logger, jwtValidator: jwtValidator}
}

// Register mounts the address routes under the person resource.
func (h *Handler) Register(r chi.Router) {
	addresses := chi.NewRouter()
	addresses.Use(middleware.Recovery(h.logger))
	addresses.Use(middleware.RequestID)
	addresses.Use(middleware.RequestTime)
	addresses.Use(middleware.Logger(h.logger))
	addresses.Use(middleware.Timeout(requestTimeout))
	addresses.Use(middleware.ContentTypeJSON)
	addresses.Use(metadata.Handler)
	addresses.Use(auth.RequireAuth(h.jwtValidator, h.logger))

	addresses.Post("/", h.HandleAdd)
	addresses.Get("/", h.HandleList)
	addresses.Put("/{addressID}", h.HandleUpdate)
	addresses.Delete("/{addressID}", h.HandleRemove)

	r.Mount("/people/{key}/addresses", addresses)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	personKey, ok := h.personKey(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AddAddressRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	address, err := h.service.Add(ctx, personKey, req)
	if err != nil {
		h.logger.WarnContext(ctx, "add address failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toAddressResponse(address))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	personKey, ok := h.personKey(w, r)
	if !ok {
		return
	}
	addressID, ok := h.addressID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UpdateAddressRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	address, err := h.service.Update(ctx, personKey, addressID, req)
	if err != nil {
		h.logger.WarnContext(ctx, "update address failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAddressResponse(address))
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	personKey, ok := h.personKey(w, r)
	if !ok {
		return
	}
	addressID, ok := h.addressID(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(ctx, personKey, addressID); err != nil {
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

	addresses, err := h.service.ListByPerson(ctx, personKey)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAddressListResponse(addresses))
}

func (h *Handler) personKey(w http.ResponseWriter, r *http.Request) (id.PersonKey, bool) {
	key, err := id.ParsePersonKey(chi.URLParam(r, "key"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person key"))
		return id.PersonKey{}, false
	}
	return key, true
}

func (h *Handler) addressID(w http.ResponseWriter, r *http.Request) (id.AddressID, bool) {
	addressID, err := id.ParseAddressID(chi.URLParam(r, "addressID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid address id"))
		return id.AddressID{}, false
	}
	return addressID, true
}
