package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeHealthChecker struct {
	err error
}

func (f fakeHealthChecker) HealthCheck(ctx context.Context) error {
	return f.err
}

func TestHealthCheck_Healthy(t *testing.T) {
	e := newTestEcho()
	c, rec := newRequestContext(e, http.MethodGet, "/health", "", nil)

	err := NewHealthCheckHandler(fakeHealthChecker{}).HealthCheck(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	e := newTestEcho()
	c, rec := newRequestContext(e, http.MethodGet, "/health", "", nil)

	err := NewHealthCheckHandler(fakeHealthChecker{err: errors.New("connection refused")}).HealthCheck(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SYSTEM_003", decodeErrorCode(rec))
}
