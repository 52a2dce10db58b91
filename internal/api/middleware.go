// Borderwatch - Geographic Security Intelligence and Risk Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/borderwatch

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/borderwatch/internal/auth"
	"github.com/tomtom215/borderwatch/internal/logging"
	"github.com/tomtom215/borderwatch/internal/metrics"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the token claims attached by the auth
// middleware, or nil when the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*auth.Claims)
	return claims
}

// RequestID assigns each request an ID, echoes it in the X-Request-ID
// header, and attaches it to the logging context.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = logging.GenerateRequestID()
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger logs one structured line per request with method, path,
// status, and latency.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logging.Ctx(r.Context()).Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.statusCode).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("request completed")
		})
	}
}

// Metrics records per-endpoint request counts, latencies, and the active
// request gauge. The endpoint label uses the routing pattern, not the raw
// path, to keep cardinality bounded.
func Metrics(endpoint string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			metrics.APIActiveRequests.Inc()
			defer metrics.APIActiveRequests.Dec()

			ww := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			metrics.ObserveAPIRequest(r.Method, endpoint, ww.statusCode, time.Since(start))
		})
	}
}

// statusResponseWriter captures the response status for logging and
// metrics.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Authenticator guards routes with JWT bearer tokens and role permissions.
// When auth is disabled in configuration every request passes through
// unauthenticated.
type Authenticator struct {
	jwt     *auth.JWTManager
	enabled bool
}

// NewAuthenticator builds the middleware factory. A nil manager is only
// valid when enabled is false.
func NewAuthenticator(jwt *auth.JWTManager, enabled bool) *Authenticator {
	return &Authenticator{jwt: jwt, enabled: enabled}
}

// Require returns middleware that rejects requests lacking a valid bearer
// token holding the permission.
func (a *Authenticator) Require(perm auth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.enabled {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := a.claimsFromRequest(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !claims.Role.Can(perm) {
				logging.Ctx(r.Context()).Warn().
					Str("username", claims.Username).
					Str("role", string(claims.Role)).
					Str("permission", string(perm)).
					Str("path", r.URL.Path).
					Msg("access denied")
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *Authenticator) claimsFromRequest(r *http.Request) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return nil, auth.ErrInvalidCredentials
	}
	return a.jwt.ValidateToken(token)
}
