// Package handler exposes the locality API over HTTP. All routes are reads;
// the dataset is loaded out of band.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pessoas/internal/locality/models"
	"pessoas/internal/platform/middleware"
	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/platform/httputil"
	"pessoas/pkg/platform/middleware/auth"
)

const requestTimeout = 10 * time.Second

// Service defines the interface for locality queries.
type Service interface {
	Get(ctx context.Context, localityID id.LocalityID) (*models.Locality, error)
	GetByCode(ctx context.Context, code string) (*models.Locality, error)
	ListByType(ctx context.Context, typeName string) ([]*models.Locality, error)
	Search(ctx context.Context, query string, limit int) ([]*models.Locality, error)
}

type Handler struct {
	service      Service
	logger       *slog.Logger
	jwtValidator auth.Validator
}

func New(service Service, logger *slog.Logger, jwtValidator auth.Validator) *Handler {
	return &Handler{service: service, logger: logger, jwtValidator: jwtValidator}
}

// Register mounts the locality routes.
func (h *Handler) Register(r chi.Router) {
	localities := chi.NewRouter()
	localities.Use(middleware.Recovery(h.logger))
	localities.Use(middleware.RequestID)
	localities.Use(middleware.RequestTime)
	localities.Use(middleware.Logger(h.logger))
	localities.Use(middleware.Timeout(requestTimeout))
	localities.Use(auth.RequireAuth(h.jwtValidator, h.logger))

	localities.Get("/", h.HandleListByType)
	localities.Get("/search", h.HandleSearch)
	localities.Get("/by-code/{code}", h.HandleGetByCode)
	localities.Get("/{localityID}", h.HandleGet)

	r.Mount("/localities", localities)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	localityID, err := id.ParseLocalityID(chi.URLParam(r, "localityID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid locality id"))
		return
	}
	locality, err := h.service.Get(r.Context(), localityID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLocalityResponse(locality))
}

func (h *Handler) HandleGetByCode(w http.ResponseWriter, r *http.Request) {
	locality, err := h.service.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLocalityResponse(locality))
}

func (h *Handler) HandleListByType(w http.ResponseWriter, r *http.Request) {
	localities, err := h.service.ListByType(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLocalityListResponse(localities))
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	localities, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLocalityListResponse(localities))
}
