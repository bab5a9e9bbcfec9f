package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestChecker_Run(t *testing.T) {
	tests := []struct {
		name     string
		critical CheckFunc
		optional CheckFunc
		expected Status
	}{
		{name: "all healthy", critical: ok, optional: ok, expected: StatusHealthy},
		{name: "optional down", critical: ok, optional: down, expected: StatusDegraded},
		{name: "critical down", critical: down, optional: ok, expected: StatusUnhealthy},
		{name: "both down", critical: down, optional: down, expected: StatusUnhealthy},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := NewChecker("test")
			c.AddCheck("database", true, test.critical)
			c.AddCheck("redis", false, test.optional)

			results, status := c.Run(context.Background())
			assert.Equal(t, test.expected, status)
			assert.Len(t, results, 2)
		})
	}
}

func TestChecker_Routes(t *testing.T) {
	c := NewChecker("v1")
	c.AddCheck("database", true, ok)
	c.AddCheck("redis", false, down)

	e := echo.New()
	c.RegisterRoutes(e)

	rec := get(e, "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(e, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	c.SetReady(true)
	rec = get(e, "/health/ready")
	require.Equal(t, http.StatusOK, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, StatusDegraded, body.Status)
	assert.Equal(t, "v1", body.Version)
	assert.Equal(t, StatusUnhealthy, body.Checks["redis"].Status)
	assert.Equal(t, "connection refused", body.Checks["redis"].Message)

	rec = get(e, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
