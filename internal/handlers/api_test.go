package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/doceo/internal/models"
)

func getHealth(t *testing.T, service *mockIndexerService) map[string]interface{} {
	t.Helper()
	handler := NewAPIHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.HealthHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthHandler_CorpusReady(t *testing.T) {
	body := getHealth(t, &mockIndexerService{
		stats: &models.IndexStats{TotalDocuments: 11, Generation: "gen_current"},
	})

	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "doceo", body["service"])
	assert.Equal(t, "ready", body["corpus"])
	assert.Equal(t, float64(11), body["documents"])
}

func TestHealthHandler_CorpusEmpty(t *testing.T) {
	body := getHealth(t, &mockIndexerService{stats: &models.IndexStats{}})

	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "empty", body["corpus"])
	assert.NotContains(t, body, "documents")
}

func TestHealthHandler_CorpusUnavailable(t *testing.T) {
	body := getHealth(t, &mockIndexerService{statsErr: errors.New("db closed")})

	assert.Equal(t, "unavailable", body["corpus"])
}

func TestVersionHandler(t *testing.T) {
	handler := NewAPIHandler(&mockIndexerService{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.VersionHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "doceo", body["service"])
	assert.NotEmpty(t, body["version"])
	assert.NotEmpty(t, body["go_version"])
}
