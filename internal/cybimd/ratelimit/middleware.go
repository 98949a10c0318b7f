package ratelimit

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// Middleware creates HTTP middleware enforcing a named limit type on
// every request that passes through it. Health endpoints are exempt.
func Middleware(service Service, limitType string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/healthz") || strings.HasPrefix(r.URL.Path, "/readyz") {
				next.ServeHTTP(w, r)
				return
			}

			key := LimitKey{
				Type:     limitType,
				RemoteIP: realIP(r),
			}

			if err := service.Allow(r.Context(), key); err != nil {
				if errors.Is(err, ErrLimitExceeded) {
					reqID := middleware.GetReqID(r.Context())
					logger.Warn("request rejected by rate limit",
						"requestId", reqID,
						"path", r.URL.Path,
						"method", r.Method,
						"remoteIP", key.RemoteIP,
					)
					retryAfter := int(service.GetLimit(limitType).Period.Seconds())
					if retryAfter < 1 {
						retryAfter = 1
					}
					w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusTooManyRequests)
					fmt.Fprintf(w, `{"error":"rate_limit_exceeded","message":"Too many requests, please retry after %d seconds"}`, retryAfter)
					return
				}
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// realIP extracts the client IP from proxy headers with a RemoteAddr
// fallback
func realIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if parts := strings.Split(xff, ","); len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}
