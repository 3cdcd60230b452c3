package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/lyftr/webhook-service/internal/model"
	"github.com/lyftr/webhook-service/internal/store"
)

func TestHealthLive(t *testing.T) {
	assert := assert.New(t)
	ts := newTestServer(t)

	rec := ts.get("/health/live")
	assert.Equal(http.StatusOK, rec.Code)
	assert.JSONEq(`{"status":"alive"}`, rec.Body.String())
}

func TestHealthReady(t *testing.T) {
	assert := assert.New(t)
	ts := newTestServer(t)

	rec := ts.get("/health/ready")
	assert.Equal(http.StatusOK, rec.Code)
	assert.JSONEq(`{"status":"ready"}`, rec.Body.String())
}

func TestHealthReadyMissingSecret(t *testing.T) {
	assert := assert.New(t)

	messages, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { messages.Close() })

	server := echo.New()
	server.GET("/health/ready", HealthReady("   ", messages))

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(http.StatusServiceUnavailable, rec.Code)

	var response model.ErrorResponse
	decode(t, rec, &response)
	assert.NotEmpty(response.Detail)
}

func TestHealthReadyStoreDown(t *testing.T) {
	assert := assert.New(t)
	ts := newTestServer(t)

	ts.messages.Close()

	rec := ts.get("/health/ready")
	assert.Equal(http.StatusServiceUnavailable, rec.Code)

	var response model.ErrorResponse
	decode(t, rec, &response)
	assert.Equal("service not ready", response.Detail)
}
