// Package service implements the consent ledger's transition processor.
//
// Transitions execute strictly one at a time: the service owns a mutex that
// imposes the total order the event log reflects. Every transition validates
// its declared inputs first, then mutates the owned store, then appends to
// the log — a rejected transition therefore has zero observable side
// effects. No transition ever iterates a stored collection; all work is
// bounded by the transition's own inputs.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/fourtytwo42/healthChains-sub004/internal/eventlog"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/metrics"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/store"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/validate"
	dErrors "github.com/fourtytwo42/healthChains-sub004/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

// Store defines the persistence interface for the ledger's keyed
// collections. See internal/ledger/store for the error contract.
type Store interface {
	InsertConsent(ctx context.Context, rec *models.ConsentRecord) (models.ConsentID, error)
	Consent(ctx context.Context, id models.ConsentID) (*models.ConsentRecord, error)
	MarkRevoked(ctx context.Context, id models.ConsentID) error

	InsertRequest(ctx context.Context, req *models.AccessRequest) (models.RequestID, error)
	Request(ctx context.Context, id models.RequestID) (*models.AccessRequest, error)
	ResolveRequest(ctx context.Context, id models.RequestID, status models.RequestStatus) error

	ConsentsBySubject(ctx context.Context, subject models.Address) ([]models.ConsentID, error)
	ConsentsByConsumer(ctx context.Context, consumer models.Address) ([]models.ConsentID, error)
	RequestsBySubject(ctx context.Context, subject models.Address) ([]models.RequestID, error)
}

// Option configures the Service.
type Option func(*Service)

// Service is the single-writer transition processor.
type Service struct {
	mu        sync.Mutex
	store     Store
	log       eventlog.Log
	publisher *eventlog.Publisher
	limits    validate.Limits
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() int64
}

// NewService wires the transition processor to its owned store and the
// append-only log.
func NewService(st Store, log eventlog.Log, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:  st,
		log:    log,
		logger: logger,
		limits: validate.DefaultLimits(),
		tracer: otel.Tracer("healthchains/ledger"),
		now:    func() int64 { return time.Now().Unix() },
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithLimits overrides the deployment validation bounds.
func WithLimits(l validate.Limits) Option {
	return func(s *Service) { s.limits = l }
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithPublisher sets the fan-out publisher for accepted entries.
func WithPublisher(p *eventlog.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock injects the current-time source. Tests use this to advance time
// past expiry without sleeping.
func WithClock(now func() int64) Option {
	return func(s *Service) { s.now = now }
}

// Grant creates a consent from subject to consumer and returns the assigned
// id.
func (s *Service) Grant(ctx context.Context, subject, consumer models.Address, dataCategory string, expiresAt int64, purpose string) (models.ConsentID, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.grant")
	defer span.End()

	subject = subject.Canonical()
	consumer = consumer.Canonical()
	now := s.now()

	if err := s.validateGrant(subject, consumer, dataCategory, expiresAt, purpose, now); err != nil {
		return 0, s.reject(span, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.insertConsent(ctx, subject, consumer, dataCategory, expiresAt, purpose, now)
	if err != nil {
		return 0, s.reject(span, err)
	}
	if err := s.emit(ctx, eventlog.Granted(*rec)); err != nil {
		return 0, s.reject(span, err)
	}
	s.incrementGrants(dataCategory)
	return rec.ID, nil
}

// GrantBatch creates N consents from subject in one atomic transition. The
// whole batch is validated before any element is applied: if any element
// fails, nothing is inserted and nothing is emitted.
func (s *Service) GrantBatch(ctx context.Context, subject models.Address, consumers []models.Address, dataCategories []string, expiries []int64, purposes []string) ([]models.ConsentID, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.grant_batch")
	defer span.End()

	subject = subject.Canonical()
	now := s.now()

	// Batch bounds come first so no per-element or size arithmetic runs on
	// an unchecked length.
	if err := validate.Batch(s.limits.MaxBatchSize, len(consumers), len(dataCategories), len(expiries), len(purposes)); err != nil {
		return nil, s.reject(span, err)
	}
	for i := range consumers {
		consumers[i] = consumers[i].Canonical()
		if err := s.validateGrant(subject, consumers[i], dataCategories[i], expiries[i], purposes[i], now); err != nil {
			return nil, s.reject(span, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]models.ConsentID, 0, len(consumers))
	entries := make([]eventlog.Entry, 0, len(consumers)+1)
	for i := range consumers {
		rec, err := s.insertConsent(ctx, subject, consumers[i], dataCategories[i], expiries[i], purposes[i], now)
		if err != nil {
			return nil, s.reject(span, err)
		}
		ids = append(ids, rec.ID)
		entries = append(entries, eventlog.Granted(*rec))
	}
	entries = append(entries, eventlog.BatchGranted(subject, ids, now))
	if err := s.emit(ctx, entries...); err != nil {
		return nil, s.reject(span, err)
	}

	for _, cat := range dataCategories {
		s.incrementGrants(cat)
	}
	if s.metrics != nil {
		s.metrics.ObserveBatchSize(len(ids))
	}
	return ids, nil
}

// Revoke flips the consent's active flag to false. Only the record's subject
// may revoke, and only once: a second revoke fails with already_inactive so
// callers can detect double-revocation attempts.
func (s *Service) Revoke(ctx context.Context, id models.ConsentID, caller models.Address) error {
	ctx, span := s.tracer.Start(ctx, "ledger.revoke")
	defer span.End()

	caller = caller.Canonical()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Consent(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.reject(span, dErrors.New(dErrors.CodeNotFound, "no consent record for id"))
		}
		return s.reject(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read consent"))
	}
	if rec.Subject != caller {
		return s.reject(span, dErrors.New(dErrors.CodeUnauthorized, "caller is not the record's subject"))
	}
	if !rec.Active {
		return s.reject(span, dErrors.New(dErrors.CodeAlreadyInactive, "consent already revoked"))
	}

	if err := s.store.MarkRevoked(ctx, id); err != nil {
		return s.reject(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke consent"))
	}
	if err := s.emit(ctx, eventlog.Revoked(id, rec.Subject, s.now())); err != nil {
		return s.reject(span, err)
	}
	if s.metrics != nil {
		s.metrics.IncrementRevocations()
	}
	return nil
}

// Request creates a pending access request from requester to subject.
func (s *Service) Request(ctx context.Context, requester, subject models.Address, dataCategory, purpose string, expiresAt int64) (models.RequestID, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.request")
	defer span.End()

	requester = requester.Canonical()
	subject = subject.Canonical()
	now := s.now()

	if err := s.validateGrant(requester, subject, dataCategory, expiresAt, purpose, now); err != nil {
		return 0, s.reject(span, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req := &models.AccessRequest{
		Requester:    requester,
		Subject:      subject,
		DataCategory: dataCategory,
		Purpose:      purpose,
		RequestedAt:  now,
		ExpiresAt:    expiresAt,
		Status:       models.RequestPending,
	}
	if _, err := s.store.InsertRequest(ctx, req); err != nil {
		return 0, s.reject(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save access request"))
	}
	if err := s.emit(ctx, eventlog.Requested(*req)); err != nil {
		return 0, s.reject(span, err)
	}
	if s.metrics != nil {
		s.metrics.IncrementRequests()
	}
	return req.ID, nil
}

// Respond resolves a pending request. Only the request's subject may
// respond, and only once. If the request's own expiry has passed, the
// resolution is forced to denied regardless of approve — a stale request can
// never mint a consent. Approval atomically creates a new consent from the
// request's own parameters before the request is marked approved.
func (s *Service) Respond(ctx context.Context, id models.RequestID, caller models.Address, approve bool) error {
	ctx, span := s.tracer.Start(ctx, "ledger.respond")
	defer span.End()

	caller = caller.Canonical()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.store.Request(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.reject(span, dErrors.New(dErrors.CodeNotFound, "no access request for id"))
		}
		return s.reject(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read access request"))
	}
	if req.Subject != caller {
		return s.reject(span, dErrors.New(dErrors.CodeUnauthorized, "caller is not the request's subject"))
	}
	if req.Resolved {
		return s.reject(span, dErrors.New(dErrors.CodeAlreadyProcessed, "request already resolved"))
	}

	if approve && !req.Stale(now) {
		rec, err := s.insertConsent(ctx, req.Subject, req.Requester, req.DataCategory, req.ExpiresAt, req.Purpose, now)
		if err != nil {
			return s.reject(span, err)
		}
		if err := s.store.ResolveRequest(ctx, id, models.RequestApproved); err != nil {
			return s.reject(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve access request"))
		}
		if err := s.emit(ctx, eventlog.Granted(*rec), eventlog.Approved(id, req.Subject, now)); err != nil {
			return s.reject(span, err)
		}
		s.incrementGrants(req.DataCategory)
		if s.metrics != nil {
			s.metrics.IncrementResponses("approved")
		}
		return nil
	}

	if approve && s.logger != nil {
		s.logger.WarnContext(ctx, "stale access request force-denied",
			"request_id", uint64(id),
			"expires_at", req.ExpiresAt,
			"now", now,
		)
	}
	if err := s.store.ResolveRequest(ctx, id, models.RequestDenied); err != nil {
		return s.reject(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve access request"))
	}
	if err := s.emit(ctx, eventlog.Denied(id, req.Subject, now)); err != nil {
		return s.reject(span, err)
	}
	if s.metrics != nil {
		s.metrics.IncrementResponses("denied")
	}
	return nil
}

// Lookup returns the stored consent record. Note that the stored active flag
// may diverge from the effective status once expiry passes; use Active or
// ComputeStatus for the effective view.
func (s *Service) Lookup(ctx context.Context, id models.ConsentID) (*models.ConsentRecord, error) {
	rec, err := s.store.Consent(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no consent record for id")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read consent")
	}
	return rec, nil
}

// LookupRequest returns the stored access request.
func (s *Service) LookupRequest(ctx context.Context, id models.RequestID) (*models.AccessRequest, error) {
	req, err := s.store.Request(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no access request for id")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read access request")
	}
	return req, nil
}

// Active reports the effective activity of the consent at the current time:
// the stored flag combined with the expiration predicate.
func (s *Service) Active(ctx context.Context, id models.ConsentID) (bool, error) {
	rec, err := s.Lookup(ctx, id)
	if err != nil {
		return false, err
	}
	return rec.ActiveAt(s.now()), nil
}

// ListBySubject returns the subject's consent ids from the reverse index.
// The index is append-only: callers must check each record's activity and
// expiry per id, never infer them from index membership.
func (s *Service) ListBySubject(ctx context.Context, subject models.Address) ([]models.ConsentID, error) {
	ids, err := s.store.ConsentsBySubject(ctx, subject.Canonical())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consents")
	}
	return ids, nil
}

// ListByConsumer returns the consumer's consent ids from the reverse index.
func (s *Service) ListByConsumer(ctx context.Context, consumer models.Address) ([]models.ConsentID, error) {
	ids, err := s.store.ConsentsByConsumer(ctx, consumer.Canonical())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consents")
	}
	return ids, nil
}

// ListRequestsBySubject returns the subject's access request ids.
func (s *Service) ListRequestsBySubject(ctx context.Context, subject models.Address) ([]models.RequestID, error) {
	ids, err := s.store.RequestsBySubject(ctx, subject.Canonical())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list access requests")
	}
	return ids, nil
}

// validateGrant runs the shared validation shape of grant and request
// transitions: two distinct well-formed parties, bounded strings, and a
// future-or-never expiry inside the representable range.
func (s *Service) validateGrant(a, b models.Address, dataCategory string, expiresAt int64, purpose string, now int64) error {
	if err := validate.Address(a); err != nil {
		return err
	}
	if err := validate.Address(b); err != nil {
		return err
	}
	if err := validate.Distinct(a, b); err != nil {
		return err
	}
	if err := validate.BoundedString("data_category", dataCategory, s.limits.MaxStringLength); err != nil {
		return err
	}
	if err := validate.BoundedString("purpose", purpose, s.limits.MaxStringLength); err != nil {
		return err
	}
	return validate.FutureOrNever(expiresAt, now, s.limits.MaxTimestamp)
}

// insertConsent writes a validated record into the owned store. Callers hold
// the transition mutex.
func (s *Service) insertConsent(ctx context.Context, subject, consumer models.Address, dataCategory string, expiresAt int64, purpose string, now int64) (*models.ConsentRecord, error) {
	rec := &models.ConsentRecord{
		Subject:      subject,
		Consumer:     consumer,
		DataCategory: dataCategory,
		Purpose:      purpose,
		GrantedAt:    now,
		ExpiresAt:    expiresAt,
		Active:       true,
	}
	if _, err := s.store.InsertConsent(ctx, rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save consent")
	}
	return rec, nil
}

// emit appends accepted entries to the log in order, then fans each out.
func (s *Service) emit(ctx context.Context, entries ...eventlog.Entry) error {
	for i := range entries {
		if err := s.log.Append(ctx, &entries[i]); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append event")
		}
		s.publisher.Publish(entries[i])
	}
	return nil
}

func (s *Service) reject(span trace.Span, err error) error {
	span.RecordError(err)
	if s.metrics != nil {
		s.metrics.IncrementRejections(string(dErrors.CodeOf(err)))
	}
	return err
}

func (s *Service) incrementGrants(dataCategory string) {
	if s.metrics != nil {
		s.metrics.IncrementGrants(dataCategory)
	}
}
