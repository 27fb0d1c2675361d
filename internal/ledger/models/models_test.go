package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsExpired pins the expiration predicate. Every reader in the system
// routes through this single function, so its edge behavior (zero sentinel,
// boundary equality) is load-bearing.
func TestIsExpired(t *testing.T) {
	t.Run("zero means never expires", func(t *testing.T) {
		assert.False(t, IsExpired(NeverExpires, 1))
		assert.False(t, IsExpired(NeverExpires, 1<<52))
	})

	t.Run("strictly before now is expired", func(t *testing.T) {
		assert.True(t, IsExpired(99, 100))
	})

	t.Run("equal to now is not yet expired", func(t *testing.T) {
		assert.False(t, IsExpired(100, 100))
	})

	t.Run("after now is not expired", func(t *testing.T) {
		assert.False(t, IsExpired(101, 100))
	})
}

// TestConsentRecord_ActiveAt verifies that effective activity is the stored
// flag combined with the predicate, in both orders of divergence.
func TestConsentRecord_ActiveAt(t *testing.T) {
	rec := ConsentRecord{Active: true, ExpiresAt: 500}

	assert.True(t, rec.ActiveAt(400))
	assert.False(t, rec.ActiveAt(501), "stored flag stays true but record reads inactive past expiry")

	rec.Active = false
	assert.False(t, rec.ActiveAt(400), "revoked record is inactive even before expiry")
}

func TestConsentRecord_ComputeStatus(t *testing.T) {
	rec := ConsentRecord{Active: true, ExpiresAt: 500}

	assert.Equal(t, StatusActive, rec.ComputeStatus(400))
	assert.Equal(t, StatusExpired, rec.ComputeStatus(600))

	rec.Active = false
	// Revocation wins over expiry in reporting.
	assert.Equal(t, StatusRevoked, rec.ComputeStatus(600))
}

func TestAddress(t *testing.T) {
	t.Run("well-formed", func(t *testing.T) {
		assert.True(t, Address("0x00112233445566778899aabbccddeeff00112233").WellFormed())
		assert.True(t, Address("0x00112233445566778899AABBCCDDEEFF00112233").WellFormed())
	})

	t.Run("malformed", func(t *testing.T) {
		assert.False(t, Address("").WellFormed())
		assert.False(t, Address("0x1234").WellFormed())
		assert.False(t, Address("00112233445566778899aabbccddeeff00112233").WellFormed())
		assert.False(t, Address("0x00112233445566778899aabbccddeeff0011223g").WellFormed())
	})

	t.Run("zero detection", func(t *testing.T) {
		assert.True(t, Address("").IsZero())
		assert.True(t, ZeroAddress.IsZero())
		assert.True(t, Address("0x0000000000000000000000000000000000000000").IsZero())
		assert.False(t, Address("0x00112233445566778899aabbccddeeff00112233").IsZero())
	})

	t.Run("canonical form folds case", func(t *testing.T) {
		a := Address("0xAABBccdd445566778899aabbccddeeff00112233")
		b := Address("0xaabbCCDD445566778899aabbccddeeff00112233")
		assert.Equal(t, a.Canonical(), b.Canonical())
	})
}
