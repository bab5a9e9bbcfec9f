// Package context carries request-scoped values used in logs and error bodies.
package context

import "context"

type ContextKey string

var (
	RequestIDKey = ContextKey("X-Request-Id")
	StepIDKey    = ContextKey("X-Step-Id")
	MethodKey    = ContextKey("X-Method")
	RouteKey     = ContextKey("X-Route")
)

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	return get(ctx, RequestIDKey)
}

func SetStepID(ctx context.Context, stepID string) context.Context {
	return context.WithValue(ctx, StepIDKey, stepID)
}

func GetStepID(ctx context.Context) string {
	return get(ctx, StepIDKey)
}

func SetMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, MethodKey, method)
}

func GetMethod(ctx context.Context) string {
	return get(ctx, MethodKey)
}

func SetRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, RouteKey, route)
}

func GetRoute(ctx context.Context) string {
	return get(ctx, RouteKey)
}

// LogFields returns the values set on ctx, keyed for structured logs.
func LogFields(ctx context.Context) map[string]any {
	fields := map[string]any{}
	for key, value := range map[string]string{
		"request_id": GetRequestID(ctx),
		"step_id":    GetStepID(ctx),
		"method":     GetMethod(ctx),
		"route":      GetRoute(ctx),
	} {
		if value != "" {
			fields[key] = value
		}
	}
	return fields
}

func get(ctx context.Context, key ContextKey) string {
	value, ok := ctx.Value(key).(string)
	if !ok {
		return ""
	}
	return value
}
