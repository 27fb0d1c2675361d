package handler

import (
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
	"github.com/fourtytwo42/healthChains-sub004/internal/readmodel"
)

// GrantResponse returns the assigned consent id.
type GrantResponse struct {
	ID models.ConsentID `json:"id"`
}

// GrantBatchResponse returns the assigned ids in input order.
type GrantBatchResponse struct {
	IDs []models.ConsentID `json:"ids"`
}

// AccessRequestResponse returns the assigned request id.
type AccessRequestResponse struct {
	ID models.RequestID `json:"id"`
}

// ConsentResponse renders a stored record together with its effective
// status at response time. The stored active flag and the effective status
// can legitimately disagree once expiry passes; clients get both.
type ConsentResponse struct {
	ID           models.ConsentID `json:"id"`
	Subject      models.Address   `json:"subject"`
	Consumer     models.Address   `json:"consumer"`
	DataCategory string           `json:"data_category"`
	Purpose      string           `json:"purpose"`
	GrantedAt    int64            `json:"granted_at"`
	ExpiresAt    int64            `json:"expires_at"`
	Active       bool             `json:"active"`
	Status       models.Status    `json:"status"`
}

func newConsentResponse(rec *models.ConsentRecord, now int64) ConsentResponse {
	return ConsentResponse{
		ID:           rec.ID,
		Subject:      rec.Subject,
		Consumer:     rec.Consumer,
		DataCategory: rec.DataCategory,
		Purpose:      rec.Purpose,
		GrantedAt:    rec.GrantedAt,
		ExpiresAt:    rec.ExpiresAt,
		Active:       rec.Active,
		Status:       rec.ComputeStatus(now),
	}
}

// RequestResponse renders a stored access request.
type RequestResponse struct {
	ID           models.RequestID     `json:"id"`
	Requester    models.Address       `json:"requester"`
	Subject      models.Address       `json:"subject"`
	DataCategory string               `json:"data_category"`
	Purpose      string               `json:"purpose"`
	RequestedAt  int64                `json:"requested_at"`
	ExpiresAt    int64                `json:"expires_at"`
	Status       models.RequestStatus `json:"status"`
}

func newRequestResponse(req *models.AccessRequest) RequestResponse {
	return RequestResponse{
		ID:           req.ID,
		Requester:    req.Requester,
		Subject:      req.Subject,
		DataCategory: req.DataCategory,
		Purpose:      req.Purpose,
		RequestedAt:  req.RequestedAt,
		ExpiresAt:    req.ExpiresAt,
		Status:       req.Status,
	}
}

// ConsentListResponse returns reverse-index membership. Membership alone
// says nothing about activity; clients follow up per id.
type ConsentListResponse struct {
	IDs []models.ConsentID `json:"ids"`
}

// RequestListResponse returns the subject's access request ids.
type RequestListResponse struct {
	IDs []models.RequestID `json:"ids"`
}

// ActiveGrantsResponse is the read model's answer, stamped with the time it
// was evaluated at.
type ActiveGrantsResponse struct {
	Grants []readmodel.Grant `json:"grants"`
	AsOf   int64             `json:"as_of"`
}
