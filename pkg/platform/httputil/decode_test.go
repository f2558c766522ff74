package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "chaincerts/pkg/domain-errors"
)

type orgRequest struct {
	OrgID string `json:"org_id"`
}

func (r *orgRequest) Normalize() {
	r.OrgID = strings.TrimSpace(r.OrgID)
}

func (r *orgRequest) Validate() error {
	if r.OrgID == "" {
		return errors.New("org_id is required")
	}
	return nil
}

type conflictKind int

func (k conflictKind) Error() string { return "organization already added" }
func (k conflictKind) ErrorCode() int { return int(k) }

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("normalizes before validating", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"org_id":"  ORG1 "}`))
		w := httptest.NewRecorder()

		result, ok := DecodeAndPrepare[orgRequest](w, req, logger, ctx, "req-1")

		require.True(t, ok)
		assert.Equal(t, "ORG1", result.OrgID)
	})

	t.Run("plain validation error maps to 400 validation_error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"org_id":"   "}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[orgRequest](w, req, logger, ctx, "req-1")

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_error", decodeBody(t, w).Error)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"org_id":"ORG1","admin":true}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[orgRequest](w, req, logger, ctx, "req-1")

		assert.False(t, ok)
		assert.Equal(t, "bad_request", decodeBody(t, w).Error)
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{invalid`))
		w := httptest.NewRecorder()

		result, ok := DecodeJSON[orgRequest](w, req, logger, ctx, "req-1")

		assert.False(t, ok)
		assert.Nil(t, result)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWriteError(t *testing.T) {
	t.Run("domain error carries status and description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeNotFound, "chaincert not found"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "not_found", body.Error)
		assert.Equal(t, "chaincert not found", body.Description)
		assert.Zero(t, body.Kind)
	})

	t.Run("kinded error exposes numeric kind", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, &dErrors.Error{Code: dErrors.CodeConflict, Message: "organization already added", Err: conflictKind(4)})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 4, decodeBody(t, w).Kind)
	})

	t.Run("unknown errors become opaque 500s", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "internal_error", body.Error)
		assert.Empty(t, body.Description)
	})

	t.Run("precondition maps to 412", func(t *testing.T) {
		assert.Equal(t, http.StatusPreconditionFailed, DomainCodeToHTTPStatus(dErrors.CodePrecondition))
	})
}
