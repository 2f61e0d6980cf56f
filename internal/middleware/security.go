// AngelaMos | 2026
// security.go

package middleware

import "net/http"

// SecurityHeaders sets API-safe response headers. HSTS is only emitted in
// production, where TLS termination is guaranteed upstream.
func SecurityHeaders(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Content-Security-Policy",
				"default-src 'none'; frame-ancestors 'none'; base-uri 'none'")

			if production {
				h.Set("Strict-Transport-Security",
					"max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
