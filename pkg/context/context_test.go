package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, LogFields(ctx))

	ctx = SetRequestID(ctx, "req-1")
	ctx = SetStepID(ctx, "ns_ab12c")
	ctx = SetMethod(ctx, "POST")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "ns_ab12c", GetStepID(ctx))
	assert.Equal(t, "POST", GetMethod(ctx))
	assert.Empty(t, GetRoute(ctx))

	assert.Equal(t, map[string]any{
		"request_id": "req-1",
		"step_id":    "ns_ab12c",
		"method":     "POST",
	}, LogFields(ctx))
}
