// Package locality serves the geographic reference data addresses point at.
package locality

import (
	"context"
	"log/slog"
	"strings"

	"pessoas/internal/locality/models"
	"pessoas/internal/locality/store"
	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
	pstrings "pessoas/pkg/platform/strings"
)

// Search result defaults.
const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// Service implements the locality queries.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a locality by id.
func (s *Service) Get(ctx context.Context, localityID id.LocalityID) (*models.Locality, error) {
	if localityID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "locality id is required")
	}
	return s.store.Get(ctx, localityID)
}

// GetByCode returns a locality by its IBGE-style code.
func (s *Service) GetByCode(ctx context.Context, code string) (*models.Locality, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "locality code is required")
	}
	return s.store.GetByCode(ctx, code)
}

// ListByType returns all localities of one hierarchy level.
func (s *Service) ListByType(ctx context.Context, typeName string) ([]*models.Locality, error) {
	localityType, err := id.ParseLocalityType(typeName)
	if err != nil {
		return nil, err
	}
	return s.store.ListByType(ctx, localityType)
}

// Search returns localities whose normalized name starts with the query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*models.Locality, error) {
	prefix := pstrings.NormalizeName(query)
	if prefix == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "search query is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.store.Search(ctx, prefix, limit)
}
