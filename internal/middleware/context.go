package middleware

import (
	"context"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyRequestID ctxKey = "req_id"
	ctxKeyIsHTMX    ctxKey = "is_htmx"
	ctxKeySession   ctxKey = "session"
	ctxKeyStaff     ctxKey = "staff"
	ctxKeyLocaleFB  ctxKey = "locale_fallback"
)

// WithRequestID stores request id in context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestID gets request id from context
func RequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyRequestID).(string)
	return v, ok
}

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// Staff represents an authenticated staff member (or logged-in buyer).
type Staff struct {
	ID    string   `json:"id"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// WithStaff stores the staff identity in context.
func WithStaff(ctx context.Context, s *Staff) context.Context {
	return context.WithValue(ctx, ctxKeyStaff, s)
}

// StaffFromContext returns the staff identity if present.
func StaffFromContext(ctx context.Context) *Staff {
	if v := ctx.Value(ctxKeyStaff); v != nil {
		if s, ok := v.(*Staff); ok {
			return s
		}
	}
	return nil
}
