package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextIdentityKey ctxKey = "identity"

// Identity is the verified caller handed to us by the identity provider.
// LineID is the external subject and the join key into users.line_id.
type Identity struct {
	UserID int64  `json:"user_id,omitempty"`
	LineID string `json:"line_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
}

func (i *Identity) IsStaff() bool {
	return i != nil && (i.Role == "HOSPITAL_STAFF" || i.Role == "ADMIN")
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	id, ok := ctx.Value(ContextIdentityKey).(*Identity)
	return id, ok && id != nil
}

func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ContextIdentityKey, id)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
