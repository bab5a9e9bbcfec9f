package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/logging"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = Error(logging.NewNopLogger())
	e.Use(Context())
	e.Use(Logger(logging.NewNopLogger()))
	return e
}

func serve(e *echo.Echo, method, path string, header map[string]string) (*httptest.ResponseRecorder, ErrorResponse) {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestContext_RequestID(t *testing.T) {
	e := newEcho()
	e.GET("/steps/:id", func(c echo.Context) error {
		ctx := c.Request().Context()
		return c.JSON(http.StatusOK, map[string]string{
			"request_id": context.GetRequestID(ctx),
			"step_id":    context.GetStepID(ctx),
			"route":      context.GetRoute(ctx),
		})
	})

	rec, _ := serve(e, http.MethodGet, "/steps/ns_12345", map[string]string{echo.HeaderXRequestID: "req-7"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"request_id": "req-7", "step_id": "ns_12345", "route": "/steps/:id"}`, rec.Body.String())
	assert.Equal(t, "req-7", rec.Header().Get(echo.HeaderXRequestID))

	rec, _ = serve(e, http.MethodGet, "/steps/ns_12345", nil)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}

func TestError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
		kind    any
	}{
		{
			name:    "usage",
			err:     errors.NewUsageError("step has not been trained").AddStep("ns_1"),
			code:    http.StatusBadRequest,
			message: "step 'ns_1'",
			kind:    "usage",
		},
		{
			name:    "type mismatch",
			err:     errors.NewTypeMismatchError("column is not numeric").AddStep("ns_1").AddColumn("label"),
			code:    http.StatusUnprocessableEntity,
			message: "column is not numeric",
			kind:    "type_mismatch",
		},
		{
			name:    "http error",
			err:     httperror.NewHTTPError(http.StatusNotFound, "trained step not found"),
			code:    http.StatusNotFound,
			message: "trained step not found",
		},
		{
			name:    "echo error",
			err:     echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"),
			code:    http.StatusMethodNotAllowed,
			message: "nope",
		},
		{
			name:    "unknown error",
			err:     assert.AnError,
			code:    http.StatusInternalServerError,
			message: "Internal Server Error",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := newEcho()
			e.GET("/fail", func(c echo.Context) error { return test.err })

			rec, body := serve(e, http.MethodGet, "/fail", map[string]string{echo.HeaderXRequestID: "req-1"})
			assert.Equal(t, test.code, rec.Code)
			assert.Contains(t, body.Message, test.message)
			assert.Equal(t, "req-1", body.RequestID)
			if test.kind != nil {
				assert.Equal(t, test.kind, body.Meta["kind"])
			}
		})
	}
}
