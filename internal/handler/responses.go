package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quistberg/ladle/internal/domain"
	"github.com/quistberg/ladle/internal/game"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgRunNotFoundError    = "Run not found"

	ErrMsgWrongSelectionError    = "Select the right number of items first"
	ErrMsgNotEnoughMoneyError    = "Not enough money"
	ErrMsgCounterFullError       = "The countertop is full"
	ErrMsgDayInactiveError       = "The kitchen is closed right now"
	ErrMsgFeedbackPendingError   = "Collect the pending feedback first"
	ErrMsgNoCustomerError        = "Nobody is waiting to be served"
	ErrMsgBossDisallowedError    = "That won't work on this guest"
	ErrMsgApplianceLockedError   = "That appliance hasn't been unlocked yet"
	ErrMsgNotUnlockedError       = "That ingredient isn't in your pantry"
	ErrMsgNoSuchRecipeError      = "Nothing happens"
	ErrMsgInventoryFullError     = "Your consumable pouch is full"
	ErrMsgNotOwnedError          = "You don't have that consumable"
	ErrMsgBindedUnselectedError  = "Mandatory payment items must be accepted"
	ErrMsgRunOverError           = "The run is over"
	ErrMsgPoolEmptyError         = "Nothing left to offer"
	ErrMsgUnknownContentError    = "Unknown item"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// user-facing messages. Invalid player actions are 4xx and never mutate.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, game.ErrRunNotFound):
		return http.StatusNotFound, ErrMsgRunNotFoundError
	case errors.Is(err, domain.ErrWrongSelection):
		return http.StatusBadRequest, ErrMsgWrongSelectionError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrCounterFull):
		return http.StatusBadRequest, ErrMsgCounterFullError
	case errors.Is(err, domain.ErrDayInactive):
		return http.StatusConflict, ErrMsgDayInactiveError
	case errors.Is(err, domain.ErrFeedbackPending):
		return http.StatusConflict, ErrMsgFeedbackPendingError
	case errors.Is(err, domain.ErrNoCustomer):
		return http.StatusConflict, ErrMsgNoCustomerError
	case errors.Is(err, domain.ErrBossDisallowed):
		return http.StatusBadRequest, ErrMsgBossDisallowedError
	case errors.Is(err, domain.ErrApplianceLocked):
		return http.StatusForbidden, ErrMsgApplianceLockedError
	case errors.Is(err, domain.ErrNotUnlocked):
		return http.StatusBadRequest, ErrMsgNotUnlockedError
	case errors.Is(err, domain.ErrNoSuchRecipe):
		return http.StatusBadRequest, ErrMsgNoSuchRecipeError
	case errors.Is(err, domain.ErrInventoryFull):
		return http.StatusBadRequest, ErrMsgInventoryFullError
	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusBadRequest, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrBindedUnselected):
		return http.StatusBadRequest, ErrMsgBindedUnselectedError
	case errors.Is(err, domain.ErrRunOver):
		return http.StatusGone, ErrMsgRunOverError
	case errors.Is(err, domain.ErrPoolEmpty):
		return http.StatusBadRequest, ErrMsgPoolEmptyError
	case errors.Is(err, domain.ErrUnknownFood),
		errors.Is(err, domain.ErrUnknownConsumable),
		errors.Is(err, domain.ErrUnknownArtifact):
		return http.StatusBadRequest, ErrMsgUnknownContentError
	}

	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
