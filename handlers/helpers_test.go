package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordlehub/wordle-tournaments/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"tournament not found", services.ErrTournamentNotFound, http.StatusNotFound},
		{"user not found", services.ErrUserNotFound, http.StatusNotFound},
		{"username taken", services.ErrAuthUsernameTaken, http.StatusConflict},
		{"invalid date range", services.ErrTournamentInvalidDateRange, http.StatusBadRequest},
		{"no languages", services.ErrTournamentNoLanguages, http.StatusBadRequest},
		{"bad credentials", services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{"roster frozen", services.ErrTournamentAlreadyStarted, http.StatusForbidden},
		{"private add denied", services.ErrPrivateTournamentAddForbidden, http.StatusForbidden},
		{"public add denied", services.ErrPublicTournamentAddForbidden, http.StatusForbidden},
		{"view denied", services.ErrTournamentViewForbidden, http.StatusForbidden},
		{"unexpected error", errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			mapServiceErrorToHTTP(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// Причина отказа политики должна уходить клиенту дословно.
func TestForbiddenResponseCarriesReasonVerbatim(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tournaments/1/participants", nil)

	mapServiceErrorToHTTP(rec, req, services.ErrPublicTournamentAddForbidden)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a non-owner may only add themselves to a public tournament", body.Error)
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Body = http.NoBody

	var dst struct{}
	err := readJSON(rec, req, &dst)
	assert.EqualError(t, err, "body must not be empty")
}
