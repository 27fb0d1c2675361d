// Package eventlog defines the append-only, totally ordered stream of
// accepted ledger transitions. Entries are immutable once appended; read
// models and external indexers reconstruct state by folding the stream.
package eventlog

import (
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
)

// Kind discriminates log entries. There is deliberately no "expired" kind:
// expiry is a derived predicate, never an event.
type Kind string

const (
	KindGranted      Kind = "granted"
	KindBatchGranted Kind = "batch_granted"
	KindRevoked      Kind = "revoked"
	KindRequested    Kind = "requested"
	KindApproved     Kind = "approved"
	KindDenied       Kind = "denied"
)

// Entry is one accepted transition. Fields are populated per kind; unused
// fields keep their zero values. Seq is assigned by the log on append and
// establishes the total order.
type Entry struct {
	Seq     uint64         `json:"seq"`
	Kind    Kind           `json:"kind"`
	At      int64          `json:"at"`
	Subject models.Address `json:"subject"`

	ConsentID  models.ConsentID   `json:"consent_id"`            // granted, revoked
	ConsentIDs []models.ConsentID `json:"consent_ids,omitempty"` // batch_granted
	RequestID  models.RequestID   `json:"request_id"`            // requested, approved, denied

	Consumer     models.Address `json:"consumer,omitempty"`      // granted
	Requester    models.Address `json:"requester,omitempty"`     // requested
	DataCategory string         `json:"data_category,omitempty"` // granted, requested
	Purpose      string         `json:"purpose,omitempty"`       // granted, requested
	ExpiresAt    int64          `json:"expires_at,omitempty"`    // granted, requested
}

// Granted records the creation of a consent.
func Granted(rec models.ConsentRecord) Entry {
	return Entry{
		Kind:         KindGranted,
		At:           rec.GrantedAt,
		Subject:      rec.Subject,
		ConsentID:    rec.ID,
		Consumer:     rec.Consumer,
		DataCategory: rec.DataCategory,
		Purpose:      rec.Purpose,
		ExpiresAt:    rec.ExpiresAt,
	}
}

// BatchGranted summarizes a batch grant. It is a query convenience only;
// the per-item granted entries remain the source of truth.
func BatchGranted(subject models.Address, ids []models.ConsentID, at int64) Entry {
	return Entry{Kind: KindBatchGranted, At: at, Subject: subject, ConsentIDs: ids}
}

// Revoked records a subject revoking one of their consents.
func Revoked(id models.ConsentID, subject models.Address, at int64) Entry {
	return Entry{Kind: KindRevoked, At: at, Subject: subject, ConsentID: id}
}

// Requested records a consumer soliciting a grant.
func Requested(q models.AccessRequest) Entry {
	return Entry{
		Kind:         KindRequested,
		At:           q.RequestedAt,
		Subject:      q.Subject,
		RequestID:    q.ID,
		Requester:    q.Requester,
		DataCategory: q.DataCategory,
		Purpose:      q.Purpose,
		ExpiresAt:    q.ExpiresAt,
	}
}

// Approved records a subject approving an access request.
func Approved(id models.RequestID, subject models.Address, at int64) Entry {
	return Entry{Kind: KindApproved, At: at, Subject: subject, RequestID: id}
}

// Denied records a subject denying an access request, or a stale request
// being force-denied at response time.
func Denied(id models.RequestID, subject models.Address, at int64) Entry {
	return Entry{Kind: KindDenied, At: at, Subject: subject, RequestID: id}
}
