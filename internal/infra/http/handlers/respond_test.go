package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradestack/tradestack-api/internal/usecase"
)

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespond_TechnicalErrorHidesDetails(t *testing.T) {
	SetVerboseErrors(false)

	w := httptest.NewRecorder()
	respondUseCaseError(w, &usecase.TechnicalError{Code: "DB_ERROR", Message: "pq: connection reset"})

	assert.Equal(t, 500, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "internal server error", body.Error)
	assert.Empty(t, body.Details)
}

func TestRespond_DevelopmentIncludesDetails(t *testing.T) {
	SetVerboseErrors(true)
	defer SetVerboseErrors(false)

	w := httptest.NewRecorder()
	respondUseCaseError(w, &usecase.TechnicalError{Code: "DB_ERROR", Message: "pq: connection reset"})

	assert.Equal(t, 500, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "internal server error", body.Error)
	assert.Equal(t, "pq: connection reset", body.Details)
}

func TestRespond_UpstreamErrorIs500(t *testing.T) {
	SetVerboseErrors(false)

	w := httptest.NewRecorder()
	respondUseCaseError(w, &usecase.TechnicalError{Code: usecase.CodeUpstream, Message: "AI providers unavailable"})

	assert.Equal(t, 500, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "AI providers unavailable", body.Error)
	assert.Equal(t, usecase.CodeUpstream, body.Code)
}

func TestRespond_DomainErrorStatusMapping(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{usecase.CodeValidation, 400},
		{usecase.CodeConflict, 400},
		{usecase.CodeNotFound, 404},
		{usecase.CodeUnauthorized, 401},
		{usecase.CodeUpstream, 500},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		respondUseCaseError(w, &usecase.DomainError{Code: tc.code, Message: "nope"})
		assert.Equal(t, tc.want, w.Code, tc.code)
	}
}
