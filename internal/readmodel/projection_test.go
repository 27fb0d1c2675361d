package readmodel

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fourtytwo42/healthChains-sub004/internal/eventlog"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/service"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/store"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/validate"
)

const (
	addrA = models.Address("0x00112233445566778899aabbccddeeff00112233")
	addrB = models.Address("0xffeeddccbbaa99887766554433221100ffeeddcc")
	addrC = models.Address("0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")

	baseNow = int64(1_700_000_000)
)

type ProjectionSuite struct {
	suite.Suite
}

func TestProjectionSuite(t *testing.T) {
	suite.Run(t, new(ProjectionSuite))
}

func granted(id models.ConsentID, subject, consumer models.Address, expiresAt int64) eventlog.Entry {
	return eventlog.Entry{
		Kind:         eventlog.KindGranted,
		At:           baseNow,
		Subject:      subject,
		ConsentID:    id,
		Consumer:     consumer,
		DataCategory: "labs",
		Purpose:      "treatment",
		ExpiresAt:    expiresAt,
	}
}

func revoked(id models.ConsentID, subject models.Address) eventlog.Entry {
	return eventlog.Entry{Kind: eventlog.KindRevoked, At: baseNow, Subject: subject, ConsentID: id}
}

func activeIDs(grants []Grant) []models.ConsentID {
	ids := make([]models.ConsentID, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.ID)
	}
	return ids
}

func (s *ProjectionSuite) TestFold_GrantedMinusRevoked() {
	p := NewProjection()
	p.Fold([]eventlog.Entry{
		granted(0, addrA, addrB, models.NeverExpires),
		granted(1, addrA, addrC, models.NeverExpires),
		revoked(0, addrA),
	})

	got := p.ActiveFor(Query{Subject: addrA}, baseNow)
	s.Equal([]models.ConsentID{1}, activeIDs(got))
}

// TestFold_IdempotentUnderDuplication: folding a log and folding the same
// log with an arbitrary prefix replayed produce identical active sets. This
// is what an at-least-once reader relies on.
func (s *ProjectionSuite) TestFold_IdempotentUnderDuplication() {
	log := []eventlog.Entry{
		granted(0, addrA, addrB, models.NeverExpires),
		granted(1, addrA, addrC, baseNow+3600),
		revoked(0, addrA),
		granted(2, addrA, addrB, models.NeverExpires),
	}

	clean := NewProjection()
	clean.Fold(log)

	for prefix := 1; prefix <= len(log); prefix++ {
		dup := NewProjection()
		dup.Fold(log)
		dup.Fold(log[:prefix])

		s.Equal(
			clean.ActiveIDs(addrA, baseNow),
			dup.ActiveIDs(addrA, baseNow),
			"prefix of %d duplicated entries changed the fold", prefix,
		)
	}
}

// TestFold_OrderInsensitive: the active set depends only on which entries
// were folded, not on the order they arrived in.
func (s *ProjectionSuite) TestFold_OrderInsensitive() {
	forward := []eventlog.Entry{
		granted(0, addrA, addrB, models.NeverExpires),
		granted(1, addrA, addrC, models.NeverExpires),
		revoked(1, addrA),
	}
	backward := []eventlog.Entry{forward[2], forward[1], forward[0]}

	a, b := NewProjection(), NewProjection()
	a.Fold(forward)
	b.Fold(backward)

	s.Equal(a.ActiveIDs(addrA, baseNow), b.ActiveIDs(addrA, baseNow))
}

// TestActiveFor_ExpiryEvaluatedAtQueryTime: there is no expiry entry kind;
// staleness is recomputed against the supplied clock on every query.
func (s *ProjectionSuite) TestActiveFor_ExpiryEvaluatedAtQueryTime() {
	p := NewProjection()
	p.Fold([]eventlog.Entry{granted(0, addrA, addrB, baseNow+100)})

	s.Equal([]models.ConsentID{0}, activeIDs(p.ActiveFor(Query{Subject: addrA}, baseNow)))
	s.Equal([]models.ConsentID{0}, activeIDs(p.ActiveFor(Query{Subject: addrA}, baseNow+100)), "expiry boundary is exclusive")
	s.Empty(p.ActiveFor(Query{Subject: addrA}, baseNow+101))
}

func (s *ProjectionSuite) TestActiveFor_Filters() {
	p := NewProjection()
	p.Fold([]eventlog.Entry{
		granted(0, addrA, addrB, models.NeverExpires),
		{Kind: eventlog.KindGranted, At: baseNow, Subject: addrA, ConsentID: 1, Consumer: addrC, DataCategory: "imaging", Purpose: "research"},
		granted(2, addrC, addrB, models.NeverExpires),
	})

	s.Run("by consumer", func() {
		got := p.ActiveFor(Query{Subject: addrA, Consumer: addrB}, baseNow)
		s.Equal([]models.ConsentID{0}, activeIDs(got))
	})

	s.Run("by data category", func() {
		got := p.ActiveFor(Query{Subject: addrA, DataCategory: "imaging"}, baseNow)
		s.Equal([]models.ConsentID{1}, activeIDs(got))
	})

	s.Run("consumer casing canonicalized", func() {
		upper := models.Address("0xFFEEDDCCBBAA99887766554433221100FFEEDDCC")
		got := p.ActiveFor(Query{Subject: addrA, Consumer: upper}, baseNow)
		s.Equal([]models.ConsentID{0}, activeIDs(got))
	})
}

func (s *ProjectionSuite) TestUnresolved_FlagsRevokeWithoutGrant() {
	p := NewProjection()
	p.Fold([]eventlog.Entry{
		granted(0, addrA, addrB, models.NeverExpires),
		revoked(0, addrA),
		revoked(7, addrA),
	})

	s.Equal([]models.ConsentID{7}, p.Unresolved())
}

func (s *ProjectionSuite) TestBatchAndRequestEntriesFoldToNothing() {
	p := NewProjection()
	p.Fold([]eventlog.Entry{
		{Kind: eventlog.KindBatchGranted, Subject: addrA, ConsentIDs: []models.ConsentID{0, 1}},
		{Kind: eventlog.KindRequested, Subject: addrA, Requester: addrB},
		{Kind: eventlog.KindApproved, Subject: addrA, RequestID: 0},
		{Kind: eventlog.KindDenied, Subject: addrA, RequestID: 1},
	})

	s.Zero(p.Len())
	s.Empty(p.ActiveFor(Query{Subject: addrA}, baseNow))
}

// CrossModelSuite drives the real transition processor and checks that the
// folded read model agrees with the ledger's per-record effective status at
// every step.
type CrossModelSuite struct {
	suite.Suite
	store   *store.InMemoryStore
	log     *eventlog.InMemoryLog
	service *service.Service
	now     int64
}

func (s *CrossModelSuite) SetupTest() {
	s.store = store.New()
	s.log = eventlog.NewInMemoryLog()
	s.now = baseNow
	s.service = service.NewService(
		s.store,
		s.log,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		service.WithClock(func() int64 { return s.now }),
		service.WithLimits(validate.DefaultLimits()),
	)
}

func TestCrossModelSuite(t *testing.T) {
	suite.Run(t, new(CrossModelSuite))
}

// assertAgreement folds the current log and checks, for every consent id the
// ledger knows for the subject, that read-model membership equals the stored
// flag combined with the expiration predicate.
func (s *CrossModelSuite) assertAgreement(subject models.Address) {
	ctx := context.Background()

	entries, err := s.log.Entries(ctx)
	s.Require().NoError(err)

	p := NewProjection()
	p.Fold(entries)
	s.Require().Empty(p.Unresolved())

	folded := p.ActiveIDs(subject, s.now)

	ids, err := s.service.ListBySubject(ctx, subject)
	s.Require().NoError(err)
	for _, id := range ids {
		rec, err := s.service.Lookup(ctx, id)
		s.Require().NoError(err)
		_, inModel := folded[id]
		s.Equal(rec.ActiveAt(s.now), inModel, "read model disagrees with ledger for id %d", id)
	}
}

func (s *CrossModelSuite) TestAgreementAcrossLifecycle() {
	ctx := context.Background()

	id0, err := s.service.Grant(ctx, addrA, addrB, "labs", models.NeverExpires, "treatment")
	s.Require().NoError(err)
	_, err = s.service.Grant(ctx, addrA, addrC, "imaging", s.now+100, "research")
	s.Require().NoError(err)
	s.assertAgreement(addrA)

	s.Require().NoError(s.service.Revoke(ctx, id0, addrA))
	s.assertAgreement(addrA)

	s.now += 200 // the imaging grant lapses
	s.assertAgreement(addrA)

	reqID, err := s.service.Request(ctx, addrB, addrA, "labs", "treatment", models.NeverExpires)
	s.Require().NoError(err)
	s.Require().NoError(s.service.Respond(ctx, reqID, addrA, true))
	s.assertAgreement(addrA)
}

func (s *CrossModelSuite) TestRefresher_RebuildServesFoldedState() {
	ctx := context.Background()

	id, err := s.service.Grant(ctx, addrA, addrB, "labs", models.NeverExpires, "treatment")
	s.Require().NoError(err)
	_, err = s.service.Grant(ctx, addrA, addrC, "imaging", models.NeverExpires, "research")
	s.Require().NoError(err)

	r := NewRefresher(s.log, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	s.Require().NoError(r.Rebuild(ctx))

	got := r.ActiveFor(Query{Subject: addrA}, s.now)
	s.Len(got, 2)

	// The refresher serves a snapshot: changes land on the next rebuild.
	s.Require().NoError(s.service.Revoke(ctx, id, addrA))
	s.Len(r.ActiveFor(Query{Subject: addrA}, s.now), 2)

	s.Require().NoError(r.Rebuild(ctx))
	got = r.ActiveFor(Query{Subject: addrA}, s.now)
	s.Require().Len(got, 1)
	s.Equal(addrC, got[0].Consumer)
}
