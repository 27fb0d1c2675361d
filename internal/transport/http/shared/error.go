package shared

import (
	"errors"
	"net/http"

	"github.com/fourtytwo42/healthChains-sub004/internal/transport/http/json"
	dErrors "github.com/fourtytwo42/healthChains-sub004/pkg/domain-errors"
)

// WriteError translates transport-agnostic domain errors into HTTP status
// codes and a stable JSON error envelope. The body always carries the
// domain code so API clients can branch on rejections programmatically.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		response := map[string]string{
			"error": string(domainErr.Code),
		}
		if domainErr.Message != "" {
			response["message"] = domainErr.Message
		}
		json.WriteJSON(w, StatusFor(domainErr.Code), response)
		return
	}

	json.WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": string(dErrors.CodeInternal),
	})
}

// StatusFor maps a domain error code to its HTTP status. All validation
// rejections are client errors; transition rejections distinguish missing,
// forbidden, and conflicting state.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeUnauthorized:
		return http.StatusForbidden
	case dErrors.CodeAlreadyInactive, dErrors.CodeAlreadyProcessed:
		return http.StatusConflict
	case dErrors.CodeInvalidAddress,
		dErrors.CodeSelfTarget,
		dErrors.CodeEmptyString,
		dErrors.CodeStringTooLong,
		dErrors.CodeTimestampInPast,
		dErrors.CodeTimestampOutOfRange,
		dErrors.CodeEmptyBatch,
		dErrors.CodeLengthMismatch,
		dErrors.CodeBatchTooLarge,
		dErrors.CodeBadRequest,
		dErrors.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
