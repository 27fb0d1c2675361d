package models

import "strings"

// Address identifies a principal on the ledger. Addresses are 0x-prefixed,
// 40-hex-digit strings; the zero address is reserved and never a valid
// principal.
type Address string

// ZeroAddress is the reserved null principal.
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

const addressHexLen = 40

// IsZero reports whether the address is empty or the reserved zero value.
func (a Address) IsZero() bool {
	return a == "" || a.canonical() == ZeroAddress
}

// WellFormed reports whether the address parses as 0x + 40 hex digits.
func (a Address) WellFormed() bool {
	s := string(a.canonical())
	if len(s) != 2+addressHexLen || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, c := range s[2:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func (a Address) canonical() Address {
	return Address(strings.ToLower(strings.TrimSpace(string(a))))
}

// Canonical returns the lowercase, trimmed form used as a map key. Two
// addresses that differ only in hex casing must index the same principal.
func (a Address) Canonical() Address {
	return a.canonical()
}

// ConsentID is a ledger-assigned sequential consent identifier.
type ConsentID uint64

// RequestID is a ledger-assigned sequential access-request identifier.
// Requests and consents use independent id namespaces.
type RequestID uint64

// Status is the effective lifecycle state of a consent at a point in time.
// It is always computed from the stored record plus the expiration
// predicate, never stored.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

// RequestStatus is the resolution state of an access request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
)
