package handler

import (
	s "github.com/fourtytwo42/healthChains-sub004/pkg/string"
)

// GrantRequest creates one consent from the authenticated caller (the
// subject) to a consumer. Shape checks live in the validate tags; domain
// rules (address form, self-targeting, bounds) belong to the service.
type GrantRequest struct {
	Consumer     string `json:"consumer" validate:"required"`
	DataCategory string `json:"data_category" validate:"required"`
	ExpiresAt    int64  `json:"expires_at" validate:"gte=0"`
	Purpose      string `json:"purpose" validate:"required"`
}

func (r *GrantRequest) Sanitize() {
	s.TrimStrings(&r.Consumer, &r.DataCategory, &r.Purpose)
}

// GrantBatchRequest carries the batch as parallel arrays, mirroring the
// service transition. Length agreement and batch bounds are deliberately
// left to the service so the rejection codes stay uniform.
type GrantBatchRequest struct {
	Consumers      []string `json:"consumers"`
	DataCategories []string `json:"data_categories"`
	ExpiresAt      []int64  `json:"expires_at"`
	Purposes       []string `json:"purposes"`
}

func (r *GrantBatchRequest) Sanitize() {
	s.TrimSlice(r.Consumers)
	s.TrimSlice(r.DataCategories)
	s.TrimSlice(r.Purposes)
}

// AccessRequestRequest files an access request from the authenticated caller
// (the requester) against a subject.
type AccessRequestRequest struct {
	Subject      string `json:"subject" validate:"required"`
	DataCategory string `json:"data_category" validate:"required"`
	ExpiresAt    int64  `json:"expires_at" validate:"gte=0"`
	Purpose      string `json:"purpose" validate:"required"`
}

func (r *AccessRequestRequest) Sanitize() {
	s.TrimStrings(&r.Subject, &r.DataCategory, &r.Purpose)
}

// RespondRequest resolves a pending access request. Approve is a pointer so
// a missing field fails validation instead of silently denying.
type RespondRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}
