// Package validate holds the pure input checks performed before any ledger
// transition touches state. Every rejection carries a distinct domain error
// code so callers can tell malformed inputs apart programmatically.
package validate

import (
	"fmt"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
	dErrors "github.com/fourtytwo42/healthChains-sub004/pkg/domain-errors"
)

// Limits are the deployment-configured validation bounds. They are carried
// as values, never compiled-in constants.
type Limits struct {
	MaxBatchSize    int
	MaxStringLength int
	MaxTimestamp    int64
}

// DefaultLimits mirror the documented deployment defaults. MaxTimestamp is
// 2^53-1 so expiry values survive JSON round-trips losslessly.
func DefaultLimits() Limits {
	return Limits{
		MaxBatchSize:    50,
		MaxStringLength: 256,
		MaxTimestamp:    1<<53 - 1,
	}
}

// Address rejects zero-valued or malformed principal addresses.
func Address(a models.Address) error {
	if a.IsZero() {
		return dErrors.New(dErrors.CodeInvalidAddress, "zero address")
	}
	if !a.WellFormed() {
		return dErrors.New(dErrors.CodeInvalidAddress, fmt.Sprintf("malformed address %q", a))
	}
	return nil
}

// Distinct rejects transitions where both parties resolve to the same
// principal (subject==consumer, requester==subject).
func Distinct(a, b models.Address) error {
	if a.Canonical() == b.Canonical() {
		return dErrors.New(dErrors.CodeSelfTarget, "subject and counterparty must differ")
	}
	return nil
}

// BoundedString rejects empty strings and strings over maxLen bytes.
func BoundedString(field, s string, maxLen int) error {
	if s == "" {
		return dErrors.New(dErrors.CodeEmptyString, fmt.Sprintf("%s must not be empty", field))
	}
	if len(s) > maxLen {
		return dErrors.New(dErrors.CodeStringTooLong, fmt.Sprintf("%s exceeds %d bytes", field, maxLen))
	}
	return nil
}

// FutureOrNever accepts the never-expires sentinel (0); otherwise the
// timestamp must sit inside the representable range and strictly after now.
// Values that would overflow the range are rejected, never truncated.
func FutureOrNever(ts, now, maxTimestamp int64) error {
	if ts == models.NeverExpires {
		return nil
	}
	if ts < 0 || ts > maxTimestamp {
		return dErrors.New(dErrors.CodeTimestampOutOfRange, fmt.Sprintf("timestamp %d outside representable range", ts))
	}
	if ts <= now {
		return dErrors.New(dErrors.CodeTimestampInPast, fmt.Sprintf("timestamp %d is not in the future", ts))
	}
	return nil
}

// Batch rejects empty batches, mismatched parallel-array lengths, and
// batches over maxBatch. It runs before any per-element work so that no
// size arithmetic can be reached with an unchecked batch length.
func Batch(maxBatch int, lengths ...int) error {
	if len(lengths) == 0 || lengths[0] == 0 {
		return dErrors.New(dErrors.CodeEmptyBatch, "batch must not be empty")
	}
	for _, n := range lengths[1:] {
		if n != lengths[0] {
			return dErrors.New(dErrors.CodeLengthMismatch, "parallel batch arrays must have equal length")
		}
	}
	if lengths[0] > maxBatch {
		return dErrors.New(dErrors.CodeBatchTooLarge, fmt.Sprintf("batch of %d exceeds limit %d", lengths[0], maxBatch))
	}
	return nil
}
