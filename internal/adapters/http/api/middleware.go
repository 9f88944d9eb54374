// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/okian/textcase/pkg/logger"
	"github.com/okian/textcase/pkg/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// HeaderRequestID carries the per-request correlation id.
const HeaderRequestID = "X-Request-ID"

// HTTP status code constants.
const (
	statusBadRequest    = 400
	statusNotFound      = 404
	statusInternalError = 500
)

// RequestIDMiddleware reuses an incoming X-Request-ID or generates one, echoes
// it on the response and stores it in the request context for logging.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

// CORSMiddleware sets the allowed origin on every response and answers
// preflight requests for any path the router knows. Allowed methods come from
// the routes registered on that path. Preflights for unknown paths fall
// through to the router's 404.
func CORSMiddleware(router *mux.Router, origin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				h.Add("Vary", "Origin")
			}
			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			_, methods, ok := routeInfo(router, r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			if !slices.Contains(methods, http.MethodOptions) {
				methods = append(methods, http.MethodOptions)
			}
			h.Set("Access-Control-Allow-Methods", strings.Join(methods, ","))
			if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				h.Set("Access-Control-Allow-Headers", reqHeaders)
			}
			w.WriteHeader(http.StatusOK)
		})
	}
}

// MetricsMiddleware records Prometheus metrics for every request that reaches
// router, labelled by route template or "unmatched".
func MetricsMiddleware(router *mux.Router) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			endpoint, _, ok := routeInfo(router, r)
			if !ok {
				endpoint = endpointUnmatched
			}
			durationMs := float64(time.Since(start).Microseconds()) / 1000
			statusCodeStr := strconv.Itoa(wrapped.statusCode)

			metrics.RecordHTTPRequest(endpoint, r.Method, statusCodeStr)
			metrics.RecordHTTPRequestDuration(endpoint, r.Method, statusCodeStr, durationMs)
			if wrapped.statusCode >= statusBadRequest {
				metrics.RecordHTTPError(endpoint, getErrorType(wrapped.statusCode))
			}
		})
	}
}

const endpointUnmatched = "unmatched"

// routeInfo finds the routes whose path matches r regardless of method. It
// returns the first matching template and the methods registered across all
// of them. ok is false when no route serves the path.
func routeInfo(router *mux.Router, r *http.Request) (string, []string, bool) {
	var (
		template string
		methods  []string
		found    bool
	)
	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		var match mux.RouteMatch
		if !route.Match(r, &match) && !errors.Is(match.MatchErr, mux.ErrMethodMismatch) {
			return nil
		}
		tpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		if !found {
			template = tpl
			found = true
		}
		if ms, err := route.GetMethods(); err == nil {
			for _, m := range ms {
				if !slices.Contains(methods, m) {
					methods = append(methods, m)
				}
			}
		}
		return nil
	})
	return template, methods, found
}

// getErrorType returns a standardized error type based on HTTP status code.
func getErrorType(statusCode int) string {
	switch {
	case statusCode >= statusInternalError:
		return "server_error"
	case statusCode == statusNotFound:
		return "not_found"
	case statusCode >= statusBadRequest:
		return "client_error"
	default:
		return "unknown"
	}
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}
