package store

import (
	"context"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
	dErrors "github.com/fourtytwo42/healthChains-sub004/pkg/domain-errors"
)

// ErrNotFound keeps storage-specific 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// Store owns the ledger's keyed collections: consent records, access
// requests, and the three append-only reverse indices. Ids are assigned
// sequentially per namespace and never reused. Index entries are pushed and
// never removed — presence in an index says nothing about activity, which
// must always be checked against the record itself.
//
// Error Contract:
//   - Consent/Request return ErrNotFound when no record exists for the id
//   - Insert methods assign the next id, write it back to the record, and
//     return it
//   - Every method returns copies; callers can never mutate stored state
//     except through MarkRevoked/ResolveRequest
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
