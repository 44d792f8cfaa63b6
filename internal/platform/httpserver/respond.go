package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	accounterrors "helvetia/contexts/identity/account-service/domain/errors"
	messagingerrors "helvetia/contexts/engagement/messaging-service/domain/errors"
	notificationerrors "helvetia/contexts/engagement/notification-service/domain/errors"
	applicationerrors "helvetia/contexts/marketplace/application-service/domain/errors"
	campaignerrors "helvetia/contexts/marketplace/campaign-service/domain/errors"
	contracterrors "helvetia/contexts/marketplace/contract-service/domain/errors"
	cliperrors "helvetia/contexts/studio/clip-service/domain/errors"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeDomainError maps service sentinel errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounterrors.ErrInvalidCredentials),
		errors.Is(err, accounterrors.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, campaignerrors.ErrNotAuthorized),
		errors.Is(err, applicationerrors.ErrNotAuthorized),
		errors.Is(err, contracterrors.ErrNotAuthorized),
		errors.Is(err, messagingerrors.ErrNotAuthorized),
		errors.Is(err, notificationerrors.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, campaignerrors.ErrCampaignNotFound),
		errors.Is(err, campaignerrors.ErrStepNotFound),
		errors.Is(err, applicationerrors.ErrApplicationNotFound),
		errors.Is(err, applicationerrors.ErrCampaignNotFound),
		errors.Is(err, contracterrors.ErrContractNotFound),
		errors.Is(err, messagingerrors.ErrConversationNotFound),
		errors.Is(err, notificationerrors.ErrNotificationNotFound),
		errors.Is(err, accounterrors.ErrUserNotFound),
		errors.Is(err, accounterrors.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, applicationerrors.ErrDuplicateApplication),
		errors.Is(err, contracterrors.ErrDuplicateContract),
		errors.Is(err, messagingerrors.ErrDuplicateConversation),
		errors.Is(err, accounterrors.ErrEmailTaken),
		errors.Is(err, campaignerrors.ErrIdempotencyKeyConflict):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, campaignerrors.ErrInvalidStateTransition),
		errors.Is(err, campaignerrors.ErrStepOrderViolation),
		errors.Is(err, campaignerrors.ErrContractNotSigned),
		errors.Is(err, applicationerrors.ErrCampaignNotOpen),
		errors.Is(err, applicationerrors.ErrInvalidStatusChange),
		errors.Is(err, contracterrors.ErrInvalidContractState):
		writeError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, campaignerrors.ErrInvalidCampaignInput),
		errors.Is(err, campaignerrors.ErrIdempotencyKeyRequired),
		errors.Is(err, applicationerrors.ErrInvalidApplicationInput),
		errors.Is(err, contracterrors.ErrInvalidContractInput),
		errors.Is(err, messagingerrors.ErrInvalidMessageInput),
		errors.Is(err, notificationerrors.ErrInvalidNotificationInput),
		errors.Is(err, accounterrors.ErrInvalidAccountInput),
		errors.Is(err, cliperrors.ErrInvalidClipInput),
		errors.Is(err, cliperrors.ErrInvalidTrimRange):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, accounterrors.ErrSessionLoadTimeout):
		writeError(w, http.StatusGatewayTimeout, err.Error())

	case errors.Is(err, cliperrors.ErrEngineFailure):
		writeError(w, http.StatusBadGateway, err.Error())

	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
