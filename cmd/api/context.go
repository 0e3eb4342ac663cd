package main

import (
	"context"
	"net/http"
)

type contextKey string

const requestIDKey contextKey = "requestID"

// contextWithRequestID returns a copy of ctx carrying the request id.
func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// requestIDFrom retrieves the request id from the request context.
func requestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
