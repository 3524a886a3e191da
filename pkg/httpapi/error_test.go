package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteError(rec, http.StatusBadGateway, "api down", map[string]string{"request_id": "r-1"}))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, CodeUpstreamUnavailable, env.Code)
	assert.Equal(t, "api down", env.Message)
	assert.Equal(t, "r-1", env.Meta["request_id"])
}

func TestWriteJSON_NilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusNoContent, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCodeFor(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeFor(http.StatusNotFound))
	assert.Equal(t, CodeMethodNotAllowed, CodeFor(http.StatusMethodNotAllowed))
	assert.Equal(t, CodeBadRequest, CodeFor(http.StatusConflict))
	assert.Equal(t, CodeInternal, CodeFor(http.StatusInternalServerError))
	assert.Equal(t, CodeUpstreamUnavailable, CodeFor(http.StatusServiceUnavailable))
}
