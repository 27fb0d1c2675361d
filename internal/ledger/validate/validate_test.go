package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
	dErrors "github.com/fourtytwo42/healthChains-sub004/pkg/domain-errors"
)

const (
	addrA = models.Address("0x00112233445566778899aabbccddeeff00112233")
	addrB = models.Address("0xffeeddccbbaa99887766554433221100ffeeddcc")
)

func TestAddress(t *testing.T) {
	assert.NoError(t, Address(addrA))

	err := Address(models.ZeroAddress)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidAddress))

	err = Address("0xnothex")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidAddress))
}

func TestDistinct(t *testing.T) {
	assert.NoError(t, Distinct(addrA, addrB))

	err := Distinct(addrA, addrA)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeSelfTarget))

	// Case variants of the same hex address are the same principal.
	upper := models.Address("0x00112233445566778899AABBCCDDEEFF00112233")
	err = Distinct(addrA, upper)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeSelfTarget))
}

func TestBoundedString(t *testing.T) {
	assert.NoError(t, BoundedString("purpose", "treatment", 16))

	err := BoundedString("purpose", "", 16)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeEmptyString))

	err = BoundedString("purpose", "an overly long purpose string", 16)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeStringTooLong))
}

func TestFutureOrNever(t *testing.T) {
	const now, max = 1_000, 1 << 53

	t.Run("never sentinel accepted", func(t *testing.T) {
		assert.NoError(t, FutureOrNever(models.NeverExpires, now, max))
	})

	t.Run("future accepted", func(t *testing.T) {
		assert.NoError(t, FutureOrNever(now+1, now, max))
	})

	t.Run("now rejected as past", func(t *testing.T) {
		err := FutureOrNever(now, now, max)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimestampInPast))
	})

	t.Run("overflowing value rejected, not truncated", func(t *testing.T) {
		err := FutureOrNever(max+1, now, max)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimestampOutOfRange))
	})

	t.Run("negative value out of range", func(t *testing.T) {
		err := FutureOrNever(-5, now, max)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimestampOutOfRange))
	})
}

func TestBatch(t *testing.T) {
	t.Run("valid batch", func(t *testing.T) {
		assert.NoError(t, Batch(50, 3, 3, 3, 3))
	})

	t.Run("empty batch", func(t *testing.T) {
		err := Batch(50, 0, 0, 0)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeEmptyBatch))
	})

	t.Run("mismatched parallel arrays", func(t *testing.T) {
		err := Batch(50, 3, 2, 3)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeLengthMismatch))
	})

	t.Run("over the configured limit", func(t *testing.T) {
		err := Batch(2, 3, 3, 3)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBatchTooLarge))
	})
}
