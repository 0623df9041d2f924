package middleware

import (
	"net/http"
)

// SelfMiddleware rejects requests whose route parameter "param" differs from the verified identity.
// It must run after AuthMiddleware.
func SelfMiddleware(param string) func(http.Handler) http.Handler {
	return selfGuard(func(r *http.Request) string {
		return URLParam(r, param)
	})
}

// SelfQueryMiddleware is SelfMiddleware for a query string parameter
func SelfQueryMiddleware(param string) func(http.Handler) http.Handler {
	return selfGuard(func(r *http.Request) string {
		return r.URL.Query().Get(param)
	})
}

func selfGuard(identity func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			if identity(r) != email {
				writeError(w, http.StatusForbidden, forbiddenMessage)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
