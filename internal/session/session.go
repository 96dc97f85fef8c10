// Package session models the per-visit session context: created once when a
// browser session starts, read-only afterwards.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Context is the immutable session value attached to a visit.
type Context struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
}

// New creates a session context with a fresh id.
func New() Context {
	return Context{
		ID:        newID(time.Now().UTC()),
		StartedAt: time.Now().UTC(),
	}
}

// newID mirrors the wire format the site has always used for session ids.
func newID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("sess_%d_%s", now.UnixMilli(), suffix)
}

// Valid reports whether the id looks like a session id this service issued.
func Valid(id string) bool {
	return strings.HasPrefix(id, "sess_") && len(id) > len("sess_")
}

type ctxKey string

const sessionKey ctxKey = "brandsite.session"

// WithContext stores the session in ctx.
func WithContext(ctx context.Context, s Context) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext extracts the session if present.
func FromContext(ctx context.Context) (Context, bool) {
	val := ctx.Value(sessionKey)
	if val == nil {
		return Context{}, false
	}
	s, ok := val.(Context)
	return s, ok && s.ID != ""
}
