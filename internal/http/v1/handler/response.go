package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"hackathon-manager/internal/apperrors"
)

type (
	ErrorResponse struct {
		Error ErrorDetail `json:"error"`
	}

	ErrorDetail struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// writeDomainError maps the error taxonomy to HTTP in one place, so the
// status for a given failure never depends on which handler surfaced it.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrHackathonNotFound),
		errors.Is(err, apperrors.ErrTeamNotFound),
		errors.Is(err, apperrors.ErrSubmissionNotFound),
		errors.Is(err, apperrors.ErrMemberNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", unwrapMessage(err))

	case errors.Is(err, apperrors.ErrNotAuthenticated),
		errors.Is(err, apperrors.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "NOT_AUTHENTICATED", unwrapMessage(err))

	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrProfileIncomplete),
		errors.Is(err, apperrors.ErrNotTeamMember),
		errors.Is(err, apperrors.ErrNotTeamLeader),
		errors.Is(err, apperrors.ErrHackathonNotStarted):
		writeError(w, http.StatusForbidden, "PERMISSION_DENIED", unwrapMessage(err))

	case errors.Is(err, apperrors.ErrSubmissionExists):
		writeError(w, http.StatusConflict, "SUBMISSION_EXISTS", unwrapMessage(err))

	case errors.Is(err, apperrors.ErrInvalidStatusFilter),
		errors.Is(err, apperrors.ErrTitleRequired),
		errors.Is(err, apperrors.ErrInvalidSchedule),
		errors.Is(err, apperrors.ErrHackathonExists),
		errors.Is(err, apperrors.ErrTeamNameRequired),
		errors.Is(err, apperrors.ErrTeamNameTaken),
		errors.Is(err, apperrors.ErrTeamFull),
		errors.Is(err, apperrors.ErrAlreadyInTeam),
		errors.Is(err, apperrors.ErrLeaderCannotExit),
		errors.Is(err, apperrors.ErrHackathonNotOngoing),
		errors.Is(err, apperrors.ErrWrongTeam),
		errors.Is(err, apperrors.ErrScoreOutOfRange),
		errors.Is(err, apperrors.ErrSubmissionTitleRequired),
		errors.Is(err, apperrors.ErrSubmissionURLRequired):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", unwrapMessage(err))

	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// unwrapMessage digs out the sentinel's text, dropping the op prefixes the
// layers wrapped around it.
func unwrapMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
