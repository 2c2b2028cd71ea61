package httpx

import (
	"net/http"
	"strings"

	"github.com/vanessaike/social-feed-graphql-api/internal/service/auth"
)

// corsHeaders allows any origin and short-circuits preflight requests with a
// bare 200.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// withIdentity inspects the Authorization header and, when a bearer token
// verifies, attaches the caller's identity to the request context. A missing,
// malformed or expired token leaves the request anonymous; resolvers decide
// what anonymity means for each operation.
func (r *Router) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if token := bearerToken(req.Header.Get("Authorization")); token != "" {
			ident, err := r.auth.Identify(token)
			if err != nil {
				r.logger.Debug("bearer token rejected", "error", err, "path", req.URL.Path)
			} else {
				req = req.WithContext(auth.WithIdentity(req.Context(), ident))
			}
		}
		next.ServeHTTP(w, req)
	})
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
