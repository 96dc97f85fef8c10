package middleware

import (
	"net/http"

	"github.com/safehaven/brandsite/internal/session"
)

// SessionHeader carries the visitor's session id on API calls.
const SessionHeader = "X-Session-Id"

// Session attaches the request's session context, minting a new session id
// when the client did not send one. The assigned id is echoed back so the
// client can persist it.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.Context{ID: r.Header.Get(SessionHeader)}
		if !session.Valid(sess.ID) {
			sess = session.New()
		}
		w.Header().Set(SessionHeader, sess.ID)
		next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sess)))
	})
}
