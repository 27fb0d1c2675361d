package models

// NeverExpires is the sentinel expiry meaning a grant does not lapse.
const NeverExpires int64 = 0

// IsExpired is the expiration predicate. It is the only place expiry logic
// lives: the ledger, direct lookups, and the read model all consult it.
// Staleness is always recomputed against the caller-supplied now, never
// written back into a record, so no transition ever has to sweep a
// subject's accumulated grants.
func IsExpired(expiresAt, now int64) bool {
	return expiresAt != NeverExpires && expiresAt < now
}

// ConsentRecord captures one grant from a subject to a consumer.
//
// # Lifecycle
//
// A record is created only by an accepted grant transition. The Active flag
// flips true→false exactly once, only via a revoke by the record's subject.
// Records are never deleted and never otherwise mutated. A record does NOT
// self-transition on expiry: the stored flag and the effective status are
// allowed to diverge, and readers must combine the flag with IsExpired.
type ConsentRecord struct {
	ID           ConsentID `json:"id"`
	Subject      Address   `json:"subject"`
	Consumer     Address   `json:"consumer"`
	DataCategory string    `json:"data_category"`
	Purpose      string    `json:"purpose"`
	GrantedAt    int64     `json:"granted_at"`
	ExpiresAt    int64     `json:"expires_at"` // 0 = never expires
	Active       bool      `json:"active"`
}

// ActiveAt reports the effective activity of the record at now: the stored
// flag AND the expiration predicate.
func (r ConsentRecord) ActiveAt(now int64) bool {
	return r.Active && !IsExpired(r.ExpiresAt, now)
}

// ComputeStatus reports the consent lifecycle state at the provided time.
func (r ConsentRecord) ComputeStatus(now int64) Status {
	if !r.Active {
		return StatusRevoked
	}
	if IsExpired(r.ExpiresAt, now) {
		return StatusExpired
	}
	return StatusActive
}

// AccessRequest captures a consumer soliciting a grant from a subject.
//
// A request transitions pending→approved or pending→denied exactly once,
// only via a respond transition by the subject. Approval atomically creates
// a new ConsentRecord from the request's own parameters; it never mutates an
// existing one. A request whose own expiry has passed can no longer be
// approved — the respond transition forces such responses to denied.
type AccessRequest struct {
	ID           RequestID     `json:"id"`
	Requester    Address       `json:"requester"`
	Subject      Address       `json:"subject"`
	DataCategory string        `json:"data_category"`
	Purpose      string        `json:"purpose"`
	RequestedAt  int64         `json:"requested_at"`
	ExpiresAt    int64         `json:"expires_at"` // 0 = never expires
	Status       RequestStatus `json:"status"`
	Resolved     bool          `json:"resolved"`
}

// Stale reports whether the request's own expiry has passed at now.
func (q AccessRequest) Stale(now int64) bool {
	return IsExpired(q.ExpiresAt, now)
}
