// Package readmodel reconstructs "currently active grants" by folding the
// ordered event log. It runs outside the ledger's serialization boundary and
// never reaches into the ledger's storage: the log format and the expiration
// predicate are its only contracts with the core.
package readmodel

import (
	"sort"

	"github.com/fourtytwo42/healthChains-sub004/internal/eventlog"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
)

// Grant is the read model's view of one granted consent.
type Grant struct {
	ID           models.ConsentID `json:"id"`
	Subject      models.Address   `json:"subject"`
	Consumer     models.Address   `json:"consumer"`
	DataCategory string           `json:"data_category"`
	Purpose      string           `json:"purpose"`
	GrantedAt    int64            `json:"granted_at"`
	ExpiresAt    int64            `json:"expires_at"`
}

// Query selects grants for one subject, optionally narrowed to a consumer
// and/or data category. Zero values mean "any".
type Query struct {
	Subject      models.Address
	Consumer     models.Address
	DataCategory string
}

// Projection is the fold state. It keys candidates by consent id, which is
// what makes the fold idempotent: an at-least-once reader replaying
// duplicated or overlapping ranges converges on the same sets, and the
// result depends only on membership, never on replay order — granted and
// revoked entries for an id are never contradicted by later entries of the
// same kind.
type Projection struct {
	grants  map[models.ConsentID]Grant
	revoked map[models.ConsentID]struct{}
}

// NewProjection returns an empty fold.
func NewProjection() *Projection {
	return &Projection{
		grants:  make(map[models.ConsentID]Grant),
		revoked: make(map[models.ConsentID]struct{}),
	}
}

// Apply folds one entry. Batch summaries and request lifecycle entries carry
// no grant state of their own (the per-item granted entries are the source
// of truth), so they fold to nothing.
func (p *Projection) Apply(e eventlog.Entry) {
	switch e.Kind {
	case eventlog.KindGranted:
		if _, seen := p.grants[e.ConsentID]; seen {
			return
		}
		p.grants[e.ConsentID] = Grant{
			ID:           e.ConsentID,
			Subject:      e.Subject,
			Consumer:     e.Consumer,
			DataCategory: e.DataCategory,
			Purpose:      e.Purpose,
			GrantedAt:    e.At,
			ExpiresAt:    e.ExpiresAt,
		}
	case eventlog.KindRevoked:
		p.revoked[e.ConsentID] = struct{}{}
	}
}

// Fold applies a slice of entries in order.
func (p *Projection) Fold(entries []eventlog.Entry) {
	for _, e := range entries {
		p.Apply(e)
	}
}

// ActiveFor answers "what is currently active for the query's subject as of
// now": granted minus revoked minus expired, sorted by id.
func (p *Projection) ActiveFor(q Query, now int64) []Grant {
	subject := q.Subject.Canonical()
	consumer := q.Consumer.Canonical()

	var out []Grant
	for id, g := range p.grants {
		if g.Subject != subject {
			continue
		}
		if q.Consumer != "" && g.Consumer != consumer {
			continue
		}
		if q.DataCategory != "" && g.DataCategory != q.DataCategory {
			continue
		}
		if _, gone := p.revoked[id]; gone {
			continue
		}
		if models.IsExpired(g.ExpiresAt, now) {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActiveIDs is ActiveFor reduced to the id set, for cross-model agreement
// checks.
func (p *Projection) ActiveIDs(subject models.Address, now int64) map[models.ConsentID]struct{} {
	ids := make(map[models.ConsentID]struct{})
	for _, g := range p.ActiveFor(Query{Subject: subject}, now) {
		ids[g.ID] = struct{}{}
	}
	return ids
}

// Unresolved returns revoked ids that never appeared in a granted entry.
// A non-empty result means the emitter wrote an inconsistent log — a logic
// error to be surfaced by integrity checks, not recovered from silently.
func (p *Projection) Unresolved() []models.ConsentID {
	var out []models.ConsentID
	for id := range p.revoked {
		if _, ok := p.grants[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len reports the number of granted candidates folded so far.
func (p *Projection) Len() int {
	return len(p.grants)
}
