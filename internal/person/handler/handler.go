// Package handler exposes the people API over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pessoas/internal/dedup"
	dedupmodels "pessoas/internal/dedup/models"
	"pessoas/internal/person/models"
	"pessoas/internal/platform/middleware"
	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/platform/httputil"
	"pessoas/pkg/platform/middleware/admin"
	"pessoas/pkg/platform/middleware/auth"
	"pessoas/pkg/platform/middleware/metadata"
	"pessoas/pkg/requestcontext"
)

const requestTimeout = 30 * time.Second

// Service defines the interface for person operations.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	Create(ctx context.Context, req *models.CreatePersonRequest) (*models.Person, error)
	Get(ctx context.Context, key id.PersonKey) (*models.Person, error)
	List(ctx context.Context, limit, offset int) ([]*models.Person, error)
	Rename(ctx context.Context, key id.PersonKey, req *models.RenamePersonRequest) (*models.Person, error)
	Deactivate(ctx context.Context, key id.PersonKey, reason string) (*models.Person, error)
	Reactivate(ctx context.Context, key id.PersonKey, reason string) (*models.Person, error)
	Merge(ctx context.Context, sourceKey id.PersonKey, req *models.MergePersonRequest) (*models.Person, error)
	AddIdentifier(ctx context.Context, key id.PersonKey, req *models.AddIdentifierRequest) (*models.Person, error)
	RemoveIdentifier(ctx context.Context, key id.PersonKey, identType id.IdentifierType, value string) (*models.Person, error)
}

// DedupService exposes the duplicate review operations.
type DedupService interface {
	CheckDuplicate(ctx context.Context, name models.PersonName, birthDate id.BirthDate) (*models.Person, error)
	FindPotentialDuplicates(ctx context.Context, name models.PersonName, birthDate id.BirthDate, threshold float64) ([]dedupmodels.DuplicateResult, error)
	CheckDuplicateByIdentifier(ctx context.Context, identType id.IdentifierType, externalID string) (*models.Person, error)
}

type Handler struct {
	service      Service
	dedup        DedupService
	logger       *slog.Logger
	jwtValidator auth.Validator
	adminKeyHash string
}

func New(service Service, dedupSvc DedupService, logger *slog.Logger, jwtValidator auth.Validator, adminKeyHash string) *Handler {
	return &Handler{
		service:      service,
		dedup:        dedupSvc,
		logger:       logger,
		jwtValidator: jwtValidator,
		adminKeyHash: adminKeyHash,
	}
}

// Register mounts the people routes with the standard middleware chain.
// Merge and duplicate review additionally require the admin API key.
func (h *Handler) Register(r chi.Router) {
	people := chi.NewRouter()
	people.Use(middleware.Recovery(h.logger))
	people.Use(middleware.RequestID)
	people.Use(middleware.RequestTime)
	people.Use(middleware.Logger(h.logger))
	people.Use(middleware.Timeout(requestTimeout))
	people.Use(middleware.ContentTypeJSON)
	people.Use(metadata.Handler)
	people.Use(auth.RequireAuth(h.jwtValidator, h.logger))

	people.Post("/", h.HandleCreate)
	people.Get("/", h.HandleList)
	people.Get("/{key}", h.HandleGet)
	people.Put("/{key}/name", h.HandleRename)
	people.Post("/{key}/deactivate", h.HandleDeactivate)
	people.Post("/{key}/reactivate", h.HandleReactivate)
	people.Post("/{key}/identifiers", h.HandleAddIdentifier)
	people.Delete("/{key}/identifiers/{type}/{value}", h.HandleRemoveIdentifier)

	people.Group(func(r chi.Router) {
		r.Use(admin.RequireAPIKey(h.adminKeyHash, h.logger))
		r.Post("/{key}/merge", h.HandleMerge)
		r.Post("/duplicates/check", h.HandleCheckDuplicate)
		r.Post("/duplicates/search", h.HandleSearchDuplicates)
		r.Get("/duplicates/by-identifier", h.HandleCheckByIdentifier)
	})

	r.Mount("/people", people)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreatePersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	person, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "create person failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toPersonResponse(person))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := h.personKey(w, r)
	if !ok {
		return
	}

	person, err := h.service.Get(ctx, key)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(person))
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := queryInt(r, "limit")
	offset := queryInt(r, "offset")

	people, err := h.service.List(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "list people failed", "error", err,
			"request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonListResponse(people))
}

func (h *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	key, ok := h.personKey(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.RenamePersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	person, err := h.service.Rename(ctx, key, req)
	if err != nil {
		h.logger.WarnContext(ctx, "rename person failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(person))
}

func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.handleStatusChange(w, r, h.service.Deactivate)
}

func (h *Handler) HandleReactivate(w http.ResponseWriter, r *http.Request) {
	h.handleStatusChange(w, r, h.service.Reactivate)
}

func (h *Handler) handleStatusChange(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, key id.PersonKey, reason string) (*models.Person, error)) {
	ctx := r.Context()
	key, ok := h.personKey(w, r)
	if !ok {
		return
	}

	// The body is optional; an absent or malformed one just means no reason.
	var req StatusChangeRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	person, err := fn(ctx, key, req.Reason)
	if err != nil {
		h.logger.WarnContext(ctx, "status change failed", "error", err,
			"request_id", requestcontext.RequestID(ctx), "person_key", key.String())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(person))
}

func (h *Handler) HandleMerge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	key, ok := h.personKey(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.MergePersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	person, err := h.service.Merge(ctx, key, req)
	if err != nil {
		h.logger.WarnContext(ctx, "merge failed", "error", err,
			"request_id", requestID, "person_key", key.String())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(person))
}

func (h *Handler) HandleAddIdentifier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	key, ok := h.personKey(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.AddIdentifierRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	person, err := h.service.AddIdentifier(ctx, key, req)
	if err != nil {
		h.logger.WarnContext(ctx, "add identifier failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(person))
}

func (h *Handler) HandleRemoveIdentifier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := h.personKey(w, r)
	if !ok {
		return
	}

	identType, err := id.ParseIdentifierType(chi.URLParam(r, "type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	value := chi.URLParam(r, "value")

	person, err := h.service.RemoveIdentifier(ctx, key, identType, value)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(person))
}

// HandleCheckDuplicate runs the exact duplicate check. A miss is a 404 so
// callers can branch on status alone.
func (h *Handler) HandleCheckDuplicate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[DuplicateCheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	name, err := req.name()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	person, err := h.dedup.CheckDuplicate(ctx, name, req.birthDate())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(person))
}

func (h *Handler) HandleSearchDuplicates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[DuplicateSearchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	name, err := req.name()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	threshold := dedup.DefaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	results, err := h.dedup.FindPotentialDuplicates(ctx, name, req.birthDate(), threshold)
	if err != nil {
		h.logger.WarnContext(ctx, "duplicate search failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDuplicateSearchResponse(results))
}

func (h *Handler) HandleCheckByIdentifier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identType, err := id.ParseIdentifierType(r.URL.Query().Get("type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	value := r.URL.Query().Get("value")

	person, err := h.dedup.CheckDuplicateByIdentifier(ctx, identType, value)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonResponse(person))
}

func (h *Handler) personKey(w http.ResponseWriter, r *http.Request) (id.PersonKey, bool) {
	key, err := id.ParsePersonKey(chi.URLParam(r, "key"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person key"))
		return id.PersonKey{}, false
	}
	return key, true
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
