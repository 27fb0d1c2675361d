// Package handler is the ledger's thin HTTP layer. It decodes and
// shape-checks requests, resolves the caller from the auth context, and
// delegates every decision to the service; no business rule lives here.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
	"github.com/fourtytwo42/healthChains-sub004/internal/platform/middleware"
	"github.com/fourtytwo42/healthChains-sub004/internal/readmodel"
	respond "github.com/fourtytwo42/healthChains-sub004/internal/transport/http/json"
	"github.com/fourtytwo42/healthChains-sub004/internal/transport/http/shared"
	dErrors "github.com/fourtytwo42/healthChains-sub004/pkg/domain-errors"
	"github.com/fourtytwo42/healthChains-sub004/pkg/validation"
)

// Service defines the ledger operations the HTTP layer needs.
type Service interface {
	Grant(ctx context.Context, subject, consumer models.Address, dataCategory string, expiresAt int64, purpose string) (models.ConsentID, error)
	GrantBatch(ctx context.Context, subject models.Address, consumers []models.Address, dataCategories []string, expiries []int64, purposes []string) ([]models.ConsentID, error)
	Revoke(ctx context.Context, id models.ConsentID, caller models.Address) error
	Request(ctx context.Context, requester, subject models.Address, dataCategory, purpose string, expiresAt int64) (models.RequestID, error)
	Respond(ctx context.Context, id models.RequestID, caller models.Address, approve bool) error
	Lookup(ctx context.Context, id models.ConsentID) (*models.ConsentRecord, error)
	LookupRequest(ctx context.Context, id models.RequestID) (*models.AccessRequest, error)
	ListBySubject(ctx context.Context, subject models.Address) ([]models.ConsentID, error)
	ListByConsumer(ctx context.Context, consumer models.Address) ([]models.ConsentID, error)
	ListRequestsBySubject(ctx context.Context, subject models.Address) ([]models.RequestID, error)
}

// ActiveGrantsReader serves the folded read model.
type ActiveGrantsReader interface {
	ActiveFor(q readmodel.Query, now int64) []readmodel.Grant
}

// Handler handles ledger endpoints.
type Handler struct {
	logger *slog.Logger
	ledger Service
	reader ActiveGrantsReader
	now    func() int64
}

// New creates a ledger Handler.
func New(ledger Service, reader ActiveGrantsReader, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		ledger: ledger,
		reader: reader,
		now:    func() int64 { return time.Now().Unix() },
	}
}

// Register mounts the ledger routes on the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/consents", h.handleGrant)
	r.Post("/consents/batch", h.handleGrantBatch)
	r.Get("/consents/{id}", h.handleLookup)
	r.Post("/consents/{id}/revoke", h.handleRevoke)

	r.Post("/requests", h.handleRequest)
	r.Get("/requests/{id}", h.handleLookupRequest)
	r.Post("/requests/{id}/respond", h.handleRespond)

	r.Get("/subjects/{address}/consents", h.handleListBySubject)
	r.Get("/subjects/{address}/requests", h.handleListRequests)
	r.Get("/subjects/{address}/active-grants", h.handleActiveGrants)
	r.Get("/consumers/{address}/consents", h.handleListByConsumer)
}

func (h *Handler) handleGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.Caller(ctx)

	var req GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "failed to decode grant request", err)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Sanitize()
	if err := validation.Validate(&req); err != nil {
		h.warn(ctx, "invalid grant request", err)
		shared.WriteError(w, err)
		return
	}

	id, err := h.ledger.Grant(ctx, caller, models.Address(req.Consumer), req.DataCategory, req.ExpiresAt, req.Purpose)
	if err != nil {
		h.warn(ctx, "grant rejected", err)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, GrantResponse{ID: id})
}

func (h *Handler) handleGrantBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.Caller(ctx)

	var req GrantBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "failed to decode batch grant request", err)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Sanitize()

	consumers := make([]models.Address, len(req.Consumers))
	for i, c := range req.Consumers {
		consumers[i] = models.Address(c)
	}

	ids, err := h.ledger.GrantBatch(ctx, caller, consumers, req.DataCategories, req.ExpiresAt, req.Purposes)
	if err != nil {
		h.warn(ctx, "batch grant rejected", err)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, GrantBatchResponse{IDs: ids})
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.consentID(w, r)
	if !ok {
		return
	}

	rec, err := h.ledger.Lookup(ctx, id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, newConsentResponse(rec, h.now()))
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.Caller(ctx)

	id, ok := h.consentID(w, r)
	if !ok {
		return
	}

	if err := h.ledger.Revoke(ctx, id, caller); err != nil {
		h.warn(ctx, "revoke rejected", err)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.Caller(ctx)

	var req AccessRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "failed to decode access request", err)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Sanitize()
	if err := validation.Validate(&req); err != nil {
		h.warn(ctx, "invalid access request", err)
		shared.WriteError(w, err)
		return
	}

	id, err := h.ledger.Request(ctx, caller, models.Address(req.Subject), req.DataCategory, req.Purpose, req.ExpiresAt)
	if err != nil {
		h.warn(ctx, "access request rejected", err)
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, AccessRequestResponse{ID: id})
}

func (h *Handler) handleLookupRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.requestID(w, r)
	if !ok {
		return
	}

	req, err := h.ledger.LookupRequest(ctx, id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, newRequestResponse(req))
}

func (h *Handler) handleRespond(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.Caller(ctx)

	id, ok := h.requestID(w, r)
	if !ok {
		return
	}

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.warn(ctx, "failed to decode respond request", err)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		h.warn(ctx, "invalid respond request", err)
		shared.WriteError(w, err)
		return
	}

	if err := h.ledger.Respond(ctx, id, caller, *req.Approve); err != nil {
		h.warn(ctx, "respond rejected", err)
		shared.WriteError(w, err)
		return
	}

	result, err := h.ledger.LookupRequest(ctx, id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, newRequestResponse(result))
}

func (h *Handler) handleListBySubject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ids, err := h.ledger.ListBySubject(ctx, models.Address(chi.URLParam(r, "address")))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, ConsentListResponse{IDs: ids})
}

func (h *Handler) handleListByConsumer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ids, err := h.ledger.ListByConsumer(ctx, models.Address(chi.URLParam(r, "address")))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, ConsentListResponse{IDs: ids})
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ids, err := h.ledger.ListRequestsBySubject(ctx, models.Address(chi.URLParam(r, "address")))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, RequestListResponse{IDs: ids})
}

// handleActiveGrants serves the read model's view: currently active grants
// for the subject, optionally narrowed by consumer and/or data category.
// The answer reflects the last completed rebuild.
func (h *Handler) handleActiveGrants(w http.ResponseWriter, r *http.Request) {
	q := readmodel.Query{
		Subject:      models.Address(chi.URLParam(r, "address")),
		Consumer:     models.Address(r.URL.Query().Get("consumer")),
		DataCategory: r.URL.Query().Get("data_category"),
	}

	now := h.now()
	grants := h.reader.ActiveFor(q, now)
	if grants == nil {
		grants = []readmodel.Grant{}
	}

	respond.WriteJSON(w, http.StatusOK, ActiveGrantsResponse{Grants: grants, AsOf: now})
}

func (h *Handler) consentID(w http.ResponseWriter, r *http.Request) (models.ConsentID, bool) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "id must be an unsigned integer"))
		return 0, false
	}
	return models.ConsentID(n), true
}

func (h *Handler) requestID(w http.ResponseWriter, r *http.Request) (models.RequestID, bool) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "id must be an unsigned integer"))
		return 0, false
	}
	return models.RequestID(n), true
}

func (h *Handler) warn(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"error", err,
		"request_id", middleware.GetRequestID(ctx),
	)
}
