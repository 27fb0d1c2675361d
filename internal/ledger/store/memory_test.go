package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
)

const (
	subjectA  = models.Address("0x00112233445566778899aabbccddeeff00112233")
	consumerB = models.Address("0xffeeddccbbaa99887766554433221100ffeeddcc")
)

func TestInMemoryStore_ConsentIDsSequentialFromZero(t *testing.T) {
	ctx := context.Background()
	s := New()

	for want := models.ConsentID(0); want < 3; want++ {
		id, err := s.InsertConsent(ctx, &models.ConsentRecord{Subject: subjectA, Consumer: consumerB, Active: true})
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestInMemoryStore_RequestIDsAreSeparateNamespace(t *testing.T) {
	ctx := context.Background()
	s := New()

	cid, err := s.InsertConsent(ctx, &models.ConsentRecord{Subject: subjectA, Consumer: consumerB, Active: true})
	require.NoError(t, err)
	rid, err := s.InsertRequest(ctx, &models.AccessRequest{Requester: consumerB, Subject: subjectA, Status: models.RequestPending})
	require.NoError(t, err)

	assert.Equal(t, models.ConsentID(0), cid)
	assert.Equal(t, models.RequestID(0), rid, "request ids start from zero independently of consent ids")
}

func TestInMemoryStore_ReverseIndicesAppendOnly(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.InsertConsent(ctx, &models.ConsentRecord{Subject: subjectA, Consumer: consumerB, Active: true})
	require.NoError(t, err)
	require.NoError(t, s.MarkRevoked(ctx, id))

	bySubject, err := s.ConsentsBySubject(ctx, subjectA)
	require.NoError(t, err)
	assert.Equal(t, []models.ConsentID{id}, bySubject, "revocation must not remove the id from the index")

	byConsumer, err := s.ConsentsByConsumer(ctx, consumerB)
	require.NoError(t, err)
	assert.Equal(t, []models.ConsentID{id}, byConsumer)
}

func TestInMemoryStore_CopyOnReturn(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.InsertConsent(ctx, &models.ConsentRecord{Subject: subjectA, Consumer: consumerB, Active: true})
	require.NoError(t, err)

	rec, err := s.Consent(ctx, id)
	require.NoError(t, err)
	rec.Active = false

	again, err := s.Consent(ctx, id)
	require.NoError(t, err)
	assert.True(t, again.Active, "mutating a returned record must not touch stored state")
}

func TestInMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Consent(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Request(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.MarkRevoked(ctx, 42), ErrNotFound)
	assert.ErrorIs(t, s.ResolveRequest(ctx, 42, models.RequestDenied), ErrNotFound)
}

func TestInMemoryStore_ResolveRequest(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.InsertRequest(ctx, &models.AccessRequest{Requester: consumerB, Subject: subjectA, Status: models.RequestPending})
	require.NoError(t, err)
	require.NoError(t, s.ResolveRequest(ctx, id, models.RequestApproved))

	req, err := s.Request(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, req.Status)
	assert.True(t, req.Resolved)
}
