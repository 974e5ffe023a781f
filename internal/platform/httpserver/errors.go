package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authdomainerrors "requisite/contexts/identity-access/auth-service/domain/errors"
	authhttp "requisite/contexts/identity-access/auth-service/transport/http"
	trackingdomainerrors "requisite/contexts/requirements/tracking-service/domain/errors"
	"requisite/internal/platform/schema"
)

// validationFailureBody is the structured 400 payload carrying the full
// validation result. Always attributable to caller input, never retryable.
type validationFailureBody struct {
	Code   string                       `json:"code"`
	Valid  bool                         `json:"valid"`
	Errors map[string]schema.FieldError `json:"errors"`
}

// writeDomainError is the single terminal mapping from the error taxonomy to
// HTTP statuses. Caller errors surface with detail; programmer and system
// errors are logged server-side and surfaced opaquely.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var authConflict *authdomainerrors.ConflictError
	var trackingConflict *trackingdomainerrors.ConflictError

	switch {
	case errors.Is(err, authdomainerrors.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "not_authenticated", "not authenticated")
	case errors.Is(err, authdomainerrors.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "not_authorized", "not authorized")
	case errors.As(err, &authConflict):
		writeConflict(w, authConflict.Reason)
	case errors.As(err, &trackingConflict):
		writeConflict(w, trackingConflict.Reason)
	case errors.Is(err, authdomainerrors.ErrUserExists):
		writeConflict(w, "userName")
	case errors.Is(err, authdomainerrors.ErrUserNotFound),
		errors.Is(err, authdomainerrors.ErrMemberNotFound),
		errors.Is(err, trackingdomainerrors.ErrOrganizationNotFound),
		errors.Is(err, trackingdomainerrors.ErrProductNotFound),
		errors.Is(err, trackingdomainerrors.ErrFeatureNotFound),
		errors.Is(err, trackingdomainerrors.ErrStoryNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, trackingdomainerrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, authdomainerrors.ErrMissingIdentity):
		s.logger.Error("pipeline ordering defect",
			"event", "http_pipeline_defect",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	default:
		s.logger.Error("unhandled pipeline error",
			"event", "http_unhandled_error",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) writeValidationFailure(w http.ResponseWriter, result schema.Result) {
	writeJSON(w, http.StatusBadRequest, validationFailureBody{
		Code:   "validation_failed",
		Valid:  false,
		Errors: result.Errors,
	})
}

func writeConflict(w http.ResponseWriter, reason string) {
	writeJSON(w, http.StatusConflict, authhttp.ErrorResponse{
		Code:           "conflict",
		Message:        "conflict",
		ConflictReason: reason,
	})
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, authhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
