// Package dedup detects duplicate person records before they are created.
// All operations are read-only; the person service decides what to do with
// the verdicts.
package dedup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"pessoas/internal/dedup/metrics"
	"pessoas/internal/dedup/models"
	"pessoas/internal/dedup/tracer"
	person "pessoas/internal/person/models"
	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/platform/sentinel"
)

// Defaults applied when no option overrides them.
const (
	DefaultThreshold           = 0.8
	DefaultBirthDateWindowDays = 7
)

// Operation labels reported to metrics.
const (
	opCheck        = "check_duplicate"
	opFind         = "find_potential_duplicates"
	opByIdentifier = "check_by_identifier"
	opValidate     = "validate_creation"
)

// PersonDirectory is the read-only slice of the person store the dedup
// service needs.
type PersonDirectory interface {
	FindByNormalizedName(ctx context.Context, normalized string, birthDate id.BirthDate) (*person.Person, error)
	ListNameCandidates(ctx context.Context, normalized string) ([]*person.Person, error)
	ListBirthDateCandidates(ctx context.Context, birthDate id.BirthDate, windowDays int) ([]*person.Person, error)
	FindByIdentifier(ctx context.Context, identType id.IdentifierType, value string) (*person.Person, error)
}

// Service scores existing people against incoming names and birth dates.
type Service struct {
	directory  PersonDirectory
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     tracer.Tracer
	threshold  float64
	windowDays int
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithThreshold sets the default similarity threshold used by ValidateCreation.
func WithThreshold(threshold float64) Option {
	return func(s *Service) {
		s.threshold = threshold
	}
}

// WithBirthDateWindow sets how many days apart two birth dates may be and
// still count as similar.
func WithBirthDateWindow(days int) Option {
	return func(s *Service) {
		s.windowDays = days
	}
}

// New constructs a Service over the given person directory.
func New(directory PersonDirectory, opts ...Option) *Service {
	s := &Service{
		directory:  directory,
		logger:     slog.Default(),
		tracer:     tracer.NewNoop(),
		threshold:  DefaultThreshold,
		windowDays: DefaultBirthDateWindowDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckDuplicate looks for a person whose normalized name matches exactly.
// When birthDate is set it must match exactly as well. Misses surface as
// sentinel.ErrNotFound from the store.
func (s *Service) CheckDuplicate(ctx context.Context, name person.PersonName, birthDate id.BirthDate) (*person.Person, error) {
	normalized := name.Normalized()
	ctx, span := s.tracer.Start(ctx, tracer.SpanCheckDuplicate,
		tracer.String(tracer.AttrNameHash, tracer.HashName(normalized)),
		tracer.Bool(tracer.AttrHasBirthDate, !birthDate.IsZero()),
	)
	start := time.Now()

	if normalized == "" {
		err := dErrors.New(dErrors.CodeInvalidInput, "name is required for duplicate check")
		span.End(err)
		s.record(opCheck, metrics.OutcomeError, start)
		return nil, err
	}

	match, err := s.directory.FindByNormalizedName(ctx, normalized, birthDate)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			span.End(nil)
			s.record(opCheck, metrics.OutcomeMiss, start)
		} else {
			span.End(err)
			s.record(opCheck, metrics.OutcomeError, start)
		}
		return nil, err
	}
	span.End(nil)
	s.record(opCheck, metrics.OutcomeHit, start)
	return match, nil
}

// FindPotentialDuplicates returns every active person scoring at or above
// threshold against the given name and optional birth date, best match first.
func (s *Service) FindPotentialDuplicates(ctx context.Context, name person.PersonName, birthDate id.BirthDate, threshold float64) ([]models.DuplicateResult, error) {
	normalized := name.Normalized()
	ctx, span := s.tracer.Start(ctx, tracer.SpanFindDuplicates,
		tracer.String(tracer.AttrNameHash, tracer.HashName(normalized)),
		tracer.Bool(tracer.AttrHasBirthDate, !birthDate.IsZero()),
		tracer.Float64(tracer.AttrThreshold, threshold),
	)
	start := time.Now()

	if threshold < 0 || threshold > 1 {
		err := dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("similarity threshold %v outside [0, 1]", threshold))
		span.End(err)
		s.record(opFind, metrics.OutcomeError, start)
		return nil, err
	}
	if normalized == "" {
		err := dErrors.New(dErrors.CodeInvalidInput, "name is required for duplicate search")
		span.End(err)
		s.record(opFind, metrics.OutcomeError, start)
		return nil, err
	}

	candidates, err := s.fetchCandidates(ctx, normalized, birthDate)
	if err != nil {
		span.End(err)
		s.record(opFind, metrics.OutcomeError, start)
		return nil, err
	}

	results := s.score(normalized, birthDate, candidates, threshold)

	span.SetAttributes(
		tracer.Int(tracer.AttrCandidates, len(candidates)),
		tracer.Int(tracer.AttrMatches, len(results)),
	)
	span.End(nil)
	outcome := metrics.OutcomeMiss
	if len(results) > 0 {
		outcome = metrics.OutcomeHit
	}
	s.record(opFind, outcome, start)
	if s.metrics != nil {
		s.metrics.ObserveSearch(len(candidates), len(results))
	}
	return results, nil
}

// CheckDuplicateByIdentifier looks up a person by an exact external
// identifier pair. Values are opaque and compared byte for byte.
func (s *Service) CheckDuplicateByIdentifier(ctx context.Context, identType id.IdentifierType, externalID string) (*person.Person, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCheckByIdentifier,
		tracer.String(tracer.AttrIdentifierTyp, string(identType)),
	)
	start := time.Now()

	if !identType.IsValid() {
		err := dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown identifier type %q", identType))
		span.End(err)
		s.record(opByIdentifier, metrics.OutcomeError, start)
		return nil, err
	}
	if externalID == "" {
		err := dErrors.New(dErrors.CodeInvalidInput, "external id is required")
		span.End(err)
		s.record(opByIdentifier, metrics.OutcomeError, start)
		return nil, err
	}

	match, err := s.directory.FindByIdentifier(ctx, identType, externalID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			span.End(nil)
			s.record(opByIdentifier, metrics.OutcomeMiss, start)
		} else {
			span.End(err)
			s.record(opByIdentifier, metrics.OutcomeError, start)
		}
		return nil, err
	}
	span.End(nil)
	s.record(opByIdentifier, metrics.OutcomeHit, start)
	return match, nil
}

// ValidateCreation decides whether a person with the given name and birth
// date may be created. An exact match always blocks. Similar matches block
// unless allowSimilar is set, in which case they are surfaced for review.
func (s *Service) ValidateCreation(ctx context.Context, name person.PersonName, birthDate id.BirthDate, allowSimilar bool) (models.ValidationResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanValidateCreation,
		tracer.String(tracer.AttrNameHash, tracer.HashName(name.Normalized())),
		tracer.Bool(tracer.AttrHasBirthDate, !birthDate.IsZero()),
	)
	start := time.Now()

	exact, err := s.CheckDuplicate(ctx, name, birthDate)
	switch {
	case err == nil:
		dup, resErr := models.NewDuplicateResult(exact, 1.0, models.ReasonExactMatch)
		if resErr != nil {
			span.End(resErr)
			return models.ValidationResult{}, resErr
		}
		if s.metrics != nil {
			s.metrics.CreationsBlockedTotal.Inc()
		}
		result := models.ValidationResult{
			CanCreate:  false,
			Duplicates: []models.DuplicateResult{dup},
			Message:    "a person with this name and birth date already exists",
		}
		span.SetAttributes(tracer.Bool(tracer.AttrCanCreate, false))
		span.End(nil)
		s.record(opValidate, metrics.OutcomeHit, start)
		return result, nil
	case !errors.Is(err, sentinel.ErrNotFound):
		span.End(err)
		s.record(opValidate, metrics.OutcomeError, start)
		return models.ValidationResult{}, err
	}

	duplicates, err := s.FindPotentialDuplicates(ctx, name, birthDate, s.threshold)
	if err != nil {
		span.End(err)
		s.record(opValidate, metrics.OutcomeError, start)
		return models.ValidationResult{}, err
	}

	result := models.ValidationResult{CanCreate: true, Duplicates: duplicates}
	if len(duplicates) > 0 {
		if allowSimilar {
			result.Message = "similar people exist; creation explicitly allowed"
			if s.metrics != nil {
				s.metrics.SimilarOverridesTotal.Inc()
			}
		} else {
			result.CanCreate = false
			result.Message = fmt.Sprintf("%d similar people found; pass allow_similar to create anyway", len(duplicates))
			if s.metrics != nil {
				s.metrics.CreationsBlockedTotal.Inc()
			}
		}
	}

	span.SetAttributes(
		tracer.Bool(tracer.AttrCanCreate, result.CanCreate),
		tracer.Int(tracer.AttrMatches, len(duplicates)),
	)
	span.End(nil)
	outcome := metrics.OutcomeMiss
	if len(duplicates) > 0 {
		outcome = metrics.OutcomeHit
	}
	s.record(opValidate, outcome, start)
	return result, nil
}

// fetchCandidates pulls name-index and birth-date-window candidates in
// parallel and merges them by person key.
func (s *Service) fetchCandidates(ctx context.Context, normalized string, birthDate id.BirthDate) ([]*person.Person, error) {
	var (
		byName []*person.Person
		byDate []*person.Person
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byName, err = s.directory.ListNameCandidates(gctx, normalized)
		return err
	})
	if !birthDate.IsZero() {
		g.Go(func() error {
			var err error
			byDate, err = s.directory.ListBirthDateCandidates(gctx, birthDate, s.windowDays)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[id.PersonKey]struct{}, len(byName)+len(byDate))
	merged := make([]*person.Person, 0, len(byName)+len(byDate))
	for _, p := range append(byName, byDate...) {
		if _, dup := seen[p.Key]; dup {
			continue
		}
		seen[p.Key] = struct{}{}
		merged = append(merged, p)
	}
	return merged, nil
}

// score filters candidates by threshold and orders them best match first.
func (s *Service) score(normalized string, birthDate id.BirthDate, candidates []*person.Person, threshold float64) []models.DuplicateResult {
	results := make([]models.DuplicateResult, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Status == id.PersonStatusMerged {
			continue
		}

		candidateNorm := candidate.Name.Normalized()
		exactName := candidateNorm == normalized
		nameScore := 1.0
		if !exactName {
			nameScore = nameSimilarity(normalized, candidateNorm)
		}

		hasDate := !birthDate.IsZero() && !candidate.BirthDate.IsZero()
		dateScore := birthDateProximity(birthDate, candidate.BirthDate, s.windowDays)
		exactDate := hasDate && birthDate.Equal(candidate.BirthDate)

		score := combinedScore(nameScore, dateScore, hasDate)
		if score < threshold {
			continue
		}

		var reason models.MatchReason
		switch {
		case exactName && exactDate:
			reason = models.ReasonExactMatch
		case exactName && hasDate:
			reason = models.ReasonExactNameSimilarBirthDate
		case exactDate:
			reason = models.ReasonSimilarNameExactBirthDate
		case hasDate:
			reason = models.ReasonSimilarNameSimilarBirthDate
		default:
			reason = models.ReasonSimilarName
		}

		result, err := models.NewDuplicateResult(candidate, score, reason)
		if err != nil {
			// Scores are produced by the similarity functions and stay in
			// range; a failure here is a programming error worth logging.
			s.logger.Error("dropping candidate with out-of-range score",
				"person_key", candidate.Key.String(), "score", score)
			continue
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Person.Key.String() < results[j].Person.Key.String()
	})
	return results
}

func (s *Service) record(operation, outcome string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordCheck(operation, outcome)
	s.metrics.ObserveDuration(operation, time.Since(start).Seconds())
}
