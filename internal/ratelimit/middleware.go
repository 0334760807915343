package ratelimit

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// exemptPaths are liveness endpoints that skip the limiter entirely, before
// any identity computation.
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/healthz": {},
	"/ping":    {},
}

// ClientIP derives the caller identity: first X-Forwarded-For entry, then
// X-Real-IP, then the connection address, then a sentinel. The forwarded
// headers are trusted unconditionally, exactly like the deployment behind the
// site's reverse proxy expects; without a trusted-proxy allowlist a direct
// caller can spoof its identity, which is a known weakness of this ordering.
func ClientIP(r *http.Request) string {
	hdr := r.Header.Get("X-Forwarded-For")
	if hdr == "" {
		hdr = r.Header.Get("X-Real-IP")
	}
	if hdr != "" {
		if ip := strings.TrimSpace(strings.Split(hdr, ",")[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "0.0.0.0"
}

// Middleware enforces the per-IP quota on every request except the liveness
// paths. Accepted responses carry the X-RateLimit-* headers; rejected ones
// get a structured 429 and never reach the next handler.
func Middleware(l *Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			dec, err := l.Check(r.Context(), ClientIP(r))
			if err != nil {
				// A broken counter backend should not take the site down.
				log.Printf("ratelimit: counter store error, allowing request: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !dec.Allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Too Many Requests"})
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(dec.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
			w.Header().Set("X-RateLimit-Window", strconv.Itoa(int(dec.Window.Seconds())))
			next.ServeHTTP(w, r)
		})
	}
}
