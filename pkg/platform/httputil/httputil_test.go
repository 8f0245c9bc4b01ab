package httputil

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/platform/sentinel"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", dErrors.New(dErrors.CodeNotFound, "no such person"), http.StatusNotFound, "not_found"},
		{"validation", dErrors.New(dErrors.CodeValidation, "first name required"), http.StatusBadRequest, "validation_failed"},
		{"duplicate person", dErrors.New(dErrors.CodeDuplicatePerson, "exact duplicate exists"), http.StatusConflict, "duplicate_person"},
		{"invalid document", dErrors.New(dErrors.CodeInvalidDocument, "CPF checksum failed"), http.StatusBadRequest, "invalid_document"},
		{"invalid state", dErrors.New(dErrors.CodeInvalidState, "person already merged"), http.StatusPreconditionFailed, "invalid_state"},
		{"raw sentinel not found", sentinel.ErrNotFound, http.StatusNotFound, "not_found"},
		{"raw sentinel conflict", sentinel.ErrConflict, http.StatusConflict, "conflict"},
		{"unknown error", io.ErrUnexpectedEOF, http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantCode)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}

type prepReq struct {
	Name string `json:"name"`
}

func (r *prepReq) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r *prepReq) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("decodes, normalizes and validates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"  Maria "}`))
		rr := httptest.NewRecorder()
		decoded, ok := DecodeAndPrepare[prepReq](rr, req, logger, context.Background(), "req-1")
		require.True(t, ok)
		assert.Equal(t, "Maria", decoded.Name)
	})

	t.Run("writes validation failure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"   "}`))
		rr := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[prepReq](rr, req, logger, context.Background(), "req-2")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("writes bad request on malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		rr := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[prepReq](rr, req, logger, context.Background(), "req-3")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
