package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader is the header carrying the request correlation ID.
const requestIDHeader = "X-Request-Id"

// RequestID returns middleware that assigns a UUID to every request lacking
// one and echoes it on the response, so a failed page load can be matched
// to its server-side log lines.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
				r.Header.Set(requestIDHeader, id)
			}
			w.Header().Set(requestIDHeader, id)
			next.ServeHTTP(w, r)
		})
	}
}
