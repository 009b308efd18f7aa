package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrolytics/cropsense/internal/cache"
)

// ─── mock cache ──────────────────────────────────────────────────────────────

type testCache struct {
	pingErr error
}

func (c *testCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }
func (c *testCache) Get(_ context.Context, _ string) ([]byte, bool, error)            { return nil, false, nil }
func (c *testCache) Delete(_ context.Context, _ string) error                         { return nil }
func (c *testCache) Ping(_ context.Context) error                                     { return c.pingErr }
func (c *testCache) IncrWithExpiry(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 1, nil
}

var _ cache.Cache = (*testCache)(nil)

// ─── health handler tests ───────────────────────────────────────────────────

func TestHealthHandler_OK(t *testing.T) {
	h := healthHandler(&testCache{})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
	services := data["services"].(map[string]any)
	assert.Equal(t, "ok", services["cache"])
}

func TestHealthHandler_CacheDegraded(t *testing.T) {
	h := healthHandler(&testCache{pingErr: errors.New("redis down")})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "DEGRADED", errObj["code"])
}

// ─── run() config validation tests ──────────────────────────────────────────

func TestRun_FailsOnInvalidPort(t *testing.T) {
	t.Setenv("CROPSENSE_PORT", "70000")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRun_FailsOnInvalidRedisURL(t *testing.T) {
	t.Setenv("REDIS_URL", "not-a-valid-url")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create redis cache")
}

func TestRun_FailsOnMissingCatalogFile(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("CROP_CATALOG_PATH", "/nonexistent/crops.json")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load crop catalog")
}

// ─── shutdown timeout constant test ─────────────────────────────────────────

func TestShutdownTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, shutdownTimeout)
}
