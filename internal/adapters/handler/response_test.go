package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AchilleasB/salon-booking/booking-service/internal/core/domain"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unauthenticated", domain.NewError(domain.ErrUnauthenticated, "Yetkisiz"), http.StatusUnauthorized, "Yetkisiz"},
		{"unauthorized", domain.NewError(domain.ErrUnauthorized, "Yetkisiz"), http.StatusForbidden, "Yetkisiz"},
		{"forbidden", domain.NewError(domain.ErrForbidden, "Olmaz"), http.StatusForbidden, "Olmaz"},
		{"invalid", domain.NewError(domain.ErrInvalidInput, "Eksik"), http.StatusBadRequest, "Eksik"},
		{"bare_not_found", domain.ErrNotFound, http.StatusNotFound, msgNotFound},
		{"conflict", domain.NewError(domain.ErrConflict, "Var"), http.StatusConflict, "Var"},
		{"unclassified", errors.New("pq: connection refused"), http.StatusInternalServerError, msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, zap.NewNop(), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string // empty means rejected
	}{
		{`150`, "150"},
		{`80.5`, "80.5"},
		{` 1e2 `, "100"},
		{`"150"`, ""},
		{`null`, ""},
		{`true`, ""},
		{``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := parsePrice(json.RawMessage(tt.raw))
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
