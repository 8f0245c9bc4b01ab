// Package service implements the person commands and queries. Mutations go
// through the PersonStoreTx boundary; creation consults the dedup service
// before anything is persisted.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pessoas/internal/audit"
	dedupmodels "pessoas/internal/dedup/models"
	"pessoas/internal/person/metrics"
	"pessoas/internal/person/models"
	"pessoas/internal/person/store"
	id "pessoas/pkg/domain"
	"pessoas/pkg/domain/document"
	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/requestcontext"
)

// List defaults keep unbounded scans off the store.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// DuplicateChecker is the slice of the dedup service the person module needs.
type DuplicateChecker interface {
	ValidateCreation(ctx context.Context, name models.PersonName, birthDate id.BirthDate, allowSimilar bool) (dedupmodels.ValidationResult, error)
}

// AuditPublisher records what happened to a person record.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates person lifecycle commands.
type Service struct {
	store   store.Store
	tx      PersonStoreTx
	dedup   DuplicateChecker
	logger  *slog.Logger
	auditor AuditPublisher
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(st store.Store, tx PersonStoreTx, dedup DuplicateChecker, opts ...Option) *Service {
	s := &Service{store: st, tx: tx, dedup: dedup, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create runs the duplicate check and persists a new person. Exact duplicates
// always block; similar matches block unless the request allows them.
func (s *Service) Create(ctx context.Context, req *models.CreatePersonRequest) (*models.Person, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		s.count("create", metrics.ResultError)
		return nil, err
	}

	name, err := req.Name()
	if err != nil {
		s.count("create", metrics.ResultError)
		return nil, err
	}
	var birthDate id.BirthDate
	if req.BirthDate != "" {
		birthDate, _ = id.ParseBirthDate(req.BirthDate)
	}
	gender, _ := id.ParseGender(req.Gender)

	verdict, err := s.dedup.ValidateCreation(ctx, name, birthDate, req.AllowSimilar)
	if err != nil {
		s.count("create", metrics.ResultError)
		return nil, err
	}
	if !verdict.CanCreate {
		s.emit(ctx, audit.Event{
			Action: audit.ActionDuplicateCheckBlocked,
			Reason: verdict.Message,
		})
		s.count("create", metrics.ResultError)
		return nil, dErrors.New(dErrors.CodeDuplicatePerson, blockedMessage(verdict))
	}

	now := requestcontext.Now(ctx)
	person := models.NewPerson(name, birthDate, gender, now)

	err = s.tx.RunInTx(ctx, func(ctx context.Context, st store.Store) error {
		return st.Create(ctx, person)
	})
	if err != nil {
		s.count("create", metrics.ResultError)
		return nil, err
	}

	s.emit(ctx, audit.Event{
		PersonKey: person.Key,
		Action:    audit.ActionPersonCreated,
	})
	s.count("create", metrics.ResultOK)
	if s.metrics != nil {
		s.metrics.PeopleCreatedTotal.Inc()
	}
	return person, nil
}

// Get returns one person by key.
func (s *Service) Get(ctx context.Context, key id.PersonKey) (*models.Person, error) {
	if key.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person key is required")
	}
	return s.store.Get(ctx, key)
}

// List returns a page of people, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Person, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, limit, offset)
}

// Rename replaces the person's name.
func (s *Service) Rename(ctx context.Context, key id.PersonKey, req *models.RenamePersonRequest) (*models.Person, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		s.count("rename", metrics.ResultError)
		return nil, err
	}
	name, err := req.Name()
	if err != nil {
		s.count("rename", metrics.ResultError)
		return nil, err
	}

	person, err := s.mutate(ctx, "rename", key, func(p *models.Person) error {
		return p.Rename(name, requestcontext.Now(ctx))
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, audit.Event{PersonKey: key, Action: audit.ActionPersonRenamed})
	return person, nil
}

// Deactivate retires an active person without deleting the record.
func (s *Service) Deactivate(ctx context.Context, key id.PersonKey, reason string) (*models.Person, error) {
	person, err := s.mutate(ctx, "deactivate", key, func(p *models.Person) error {
		if err := p.CanDeactivate(); err != nil {
			return err
		}
		p.ApplyDeactivate(requestcontext.Now(ctx))
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, audit.Event{PersonKey: key, Action: audit.ActionPersonDeactivated, Reason: reason})
	return person, nil
}

// Reactivate returns an inactive person to Active.
func (s *Service) Reactivate(ctx context.Context, key id.PersonKey, reason string) (*models.Person, error) {
	person, err := s.mutate(ctx, "reactivate", key, func(p *models.Person) error {
		if err := p.CanReactivate(); err != nil {
			return err
		}
		p.ApplyReactivate(requestcontext.Now(ctx))
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, audit.Event{PersonKey: key, Action: audit.ActionPersonReactivated, Reason: reason})
	return person, nil
}

// Merge folds the source person into the target. The source keeps its record
// with status Merged and its identifiers move to the target, all within one
// transaction.
func (s *Service) Merge(ctx context.Context, sourceKey id.PersonKey, req *models.MergePersonRequest) (*models.Person, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		s.count("merge", metrics.ResultError)
		return nil, err
	}
	targetKey, err := id.ParsePersonKey(req.TargetKey)
	if err != nil {
		s.count("merge", metrics.ResultError)
		return nil, err
	}
	if sourceKey.IsNil() {
		s.count("merge", metrics.ResultError)
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person key is required")
	}

	now := requestcontext.Now(ctx)
	var source *models.Person
	err = s.tx.RunInTx(ctx, func(ctx context.Context, st store.Store) error {
		var err error
		source, err = st.Get(ctx, sourceKey)
		if err != nil {
			return err
		}
		target, err := st.Get(ctx, targetKey)
		if err != nil {
			return err
		}
		if err := source.CanMergeInto(target); err != nil {
			return err
		}

		// Repoint identifiers before the source loses them.
		identifiers := source.Identifiers
		source.ApplyMergeInto(target, now)
		for _, ident := range identifiers {
			if err := target.AddIdentifier(ident, now); err != nil {
				return err
			}
		}

		if err := st.Update(ctx, source); err != nil {
			return err
		}
		return st.Update(ctx, target)
	})
	if err != nil {
		s.count("merge", metrics.ResultError)
		return nil, err
	}

	s.emit(ctx, audit.Event{
		PersonKey: sourceKey,
		Action:    audit.ActionPersonMerged,
		Reason:    fmt.Sprintf("merged into %s: %s", targetKey, req.Reason),
	})
	s.count("merge", metrics.ResultOK)
	if s.metrics != nil {
		s.metrics.PeopleMergedTotal.Inc()
	}
	return source, nil
}

// AddIdentifier attaches an external identifier, validating CPF and CNPJ
// checksums for those types.
func (s *Service) AddIdentifier(ctx context.Context, key id.PersonKey, req *models.AddIdentifierRequest) (*models.Person, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		s.count("add_identifier", metrics.ResultError)
		return nil, err
	}
	identType, err := id.ParseIdentifierType(req.Type)
	if err != nil {
		s.count("add_identifier", metrics.ResultError)
		return nil, err
	}
	if err := validateDocument(identType, req.Value); err != nil {
		if s.metrics != nil {
			s.metrics.DocumentRejectionsTotal.WithLabelValues(string(identType)).Inc()
		}
		s.count("add_identifier", metrics.ResultError)
		return nil, err
	}

	person, err := s.mutate(ctx, "add_identifier", key, func(p *models.Person) error {
		return p.AddIdentifier(models.ExternalIdentifier{Type: identType, Value: req.Value}, requestcontext.Now(ctx))
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, audit.Event{
		PersonKey: key,
		Action:    audit.ActionIdentifierAdded,
		Reason:    string(identType),
	})
	if s.metrics != nil {
		s.metrics.IdentifiersAddedTotal.WithLabelValues(string(identType)).Inc()
	}
	return person, nil
}

// RemoveIdentifier detaches an external identifier.
func (s *Service) RemoveIdentifier(ctx context.Context, key id.PersonKey, identType id.IdentifierType, value string) (*models.Person, error) {
	if !identType.IsValid() {
		s.count("remove_identifier", metrics.ResultError)
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid identifier type")
	}
	person, err := s.mutate(ctx, "remove_identifier", key, func(p *models.Person) error {
		return p.RemoveIdentifier(identType, value, requestcontext.Now(ctx))
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, audit.Event{
		PersonKey: key,
		Action:    audit.ActionIdentifierRemoved,
		Reason:    string(identType),
	})
	return person, nil
}

// mutate loads a person, applies fn, and persists the result in one
// transaction.
func (s *Service) mutate(ctx context.Context, command string, key id.PersonKey, fn func(p *models.Person) error) (*models.Person, error) {
	if key.IsNil() {
		s.count(command, metrics.ResultError)
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person key is required")
	}

	var person *models.Person
	err := s.tx.RunInTx(ctx, func(ctx context.Context, st store.Store) error {
		var err error
		person, err = st.Get(ctx, key)
		if err != nil {
			return err
		}
		if err := fn(person); err != nil {
			return err
		}
		return st.Update(ctx, person)
	})
	if err != nil {
		s.count(command, metrics.ResultError)
		return nil, err
	}
	s.count(command, metrics.ResultOK)
	return person, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.Warn("audit emit failed",
			"action", string(event.Action),
			"error", err,
		)
	}
}

func (s *Service) count(command, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordCommand(command, result)
}

// validateDocument applies checksum validation for document-backed
// identifier types. Other types carry opaque values.
func validateDocument(identType id.IdentifierType, value string) error {
	switch identType {
	case id.IdentifierTypeCPF:
		return document.ValidateCPF(value)
	case id.IdentifierTypeCNPJ:
		return document.ValidateCNPJ(value)
	default:
		return nil
	}
}

// blockedMessage folds the duplicate keys into the rejection so callers can
// review them without a second query.
func blockedMessage(verdict dedupmodels.ValidationResult) string {
	keys := make([]string, 0, len(verdict.Duplicates))
	for _, dup := range verdict.Duplicates {
		keys = append(keys, dup.Person.Key.String())
	}
	if len(keys) == 0 {
		return verdict.Message
	}
	return verdict.Message + " (candidates: " + strings.Join(keys, ", ") + ")"
}
