package store

import (
	"context"
	"sync"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
)

// InMemoryStore keeps the ledger collections in maps. Addresses used as map
// keys must already be canonical; the transition processor normalizes them
// on entry.
type InMemoryStore struct {
	mu sync.RWMutex

	consents map[models.ConsentID]*models.ConsentRecord
	requests map[models.RequestID]*models.AccessRequest

	bySubjectConsents  map[models.Address][]models.ConsentID
	byConsumerConsents map[models.Address][]models.ConsentID
	bySubjectRequests  map[models.Address][]models.RequestID

	nextConsentID models.ConsentID
	nextRequestID models.RequestID
}

// New constructs an empty in-memory ledger store.
func New() *InMemoryStore {
	return &InMemoryStore{
		consents:           make(map[models.ConsentID]*models.ConsentRecord),
		requests:           make(map[models.RequestID]*models.AccessRequest),
		bySubjectConsents:  make(map[models.Address][]models.ConsentID),
		byConsumerConsents: make(map[models.Address][]models.ConsentID),
		bySubjectRequests:  make(map[models.Address][]models.RequestID),
	}
}

func (s *InMemoryStore) InsertConsent(_ context.Context, rec *models.ConsentRecord) (models.ConsentID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextConsentID
	s.nextConsentID++

	copyRec := *rec
	s.consents[rec.ID] = &copyRec
	s.bySubjectConsents[rec.Subject] = append(s.bySubjectConsents[rec.Subject], rec.ID)
	s.byConsumerConsents[rec.Consumer] = append(s.byConsumerConsents[rec.Consumer], rec.ID)
	return rec.ID, nil
}

func (s *InMemoryStore) Consent(_ context.Context, id models.ConsentID) (*models.ConsentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.consents[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyRec := *rec
	return &copyRec, nil
}

func (s *InMemoryStore) MarkRevoked(_ context.Context, id models.ConsentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.consents[id]
	if !ok {
		return ErrNotFound
	}
	rec.Active = false
	return nil
}

func (s *InMemoryStore) InsertRequest(_ context.Context, req *models.AccessRequest) (models.RequestID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = s.nextRequestID
	s.nextRequestID++

	copyReq := *req
	s.requests[req.ID] = &copyReq
	s.bySubjectRequests[req.Subject] = append(s.bySubjectRequests[req.Subject], req.ID)
	return req.ID, nil
}

func (s *InMemoryStore) Request(_ context.Context, id models.RequestID) (*models.AccessRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyReq := *req
	return &copyReq, nil
}

func (s *InMemoryStore) ResolveRequest(_ context.Context, id models.RequestID, status models.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return ErrNotFound
	}
	req.Status = status
	req.Resolved = true
	return nil
}

func (s *InMemoryStore) ConsentsBySubject(_ context.Context, subject models.Address) ([]models.ConsentID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ConsentID{}, s.bySubjectConsents[subject]...), nil
}

func (s *InMemoryStore) ConsentsByConsumer(_ context.Context, consumer models.Address) ([]models.ConsentID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ConsentID{}, s.byConsumerConsents[consumer]...), nil
}

func (s *InMemoryStore) RequestsBySubject(_ context.Context, subject models.Address) ([]models.RequestID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.RequestID{}, s.bySubjectRequests[subject]...), nil
}
