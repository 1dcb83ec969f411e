package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/tradestack/tradestack-api/internal/usecase"
)

// verboseErrors adds the underlying error to response bodies. Only ever
// enabled in development; production callers get the generic message.
var verboseErrors bool

func SetVerboseErrors(enabled bool) {
	verboseErrors = enabled
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondUseCaseError maps use case errors to HTTP responses. Domain
// errors carry a message safe to show callers; technical errors are
// logged and replaced by a generic message.
func respondUseCaseError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case usecase.CodeNotFound:
			status = http.StatusNotFound
		case usecase.CodeUnauthorized:
			status = http.StatusUnauthorized
		case usecase.CodeUpstream:
			status = http.StatusInternalServerError
		}
		respondJSON(w, status, errorResponse{Error: domainErr.Message, Code: domainErr.Code})
		return
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		if techErr.Code == usecase.CodeUpstream {
			respondJSON(w, http.StatusInternalServerError, errorResponse{
				Error:   techErr.Message,
				Code:    techErr.Code,
				Details: errorDetails(techErr),
			})
			return
		}
		log.Printf("[HTTP] technical error: %v", techErr)
		respondJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "internal server error",
			Details: errorDetails(techErr),
		})
		return
	}

	log.Printf("[HTTP] unexpected error: %v", err)
	respondJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "internal server error",
		Details: errorDetails(err),
	})
}

func errorDetails(err error) string {
	if !verboseErrors {
		return ""
	}
	return err.Error()
}
