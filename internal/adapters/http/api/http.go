// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/textcase/internal/app"
	"github.com/okian/textcase/pkg/logger"
	"github.com/okian/textcase/pkg/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Envelope status values.
const (
	statusSuccess = "success"
	statusError   = "error"
)

const defaultMaxBodyBytes = 1 << 20

// Transformer is what the data handler needs from the business layer.
type Transformer interface {
	Transform(ctx context.Context, method, input any) (service.Result, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	dataHandler  *DataHandler
	logger       logger.Logger
	corsOrigin   string
	metricsPath  string
	maxBodyBytes int64
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used for request error paths.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCORSOrigin sets the Access-Control-Allow-Origin value.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		if origin != "" {
			s.corsOrigin = origin
		}
	}
}

// WithMetricsPath sets where Prometheus metrics are served. An empty path
// disables the route.
func WithMetricsPath(path string) Option {
	return func(s *Server) {
		s.metricsPath = path
	}
}

// WithMaxBodyBytes bounds the POST /data body.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(svc Transformer, opts ...Option) *Server {
	s := &Server{
		corsOrigin:   "*",
		metricsPath:  "/metrics",
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.dataHandler = NewDataHandler(svc, s.logger)
	s.dataHandler.maxBodyBytes = s.maxBodyBytes
	return s
}

// Register attaches the API routes to r.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.HandleFunc("/data", s.dataHandler.HandlePostData).Methods(http.MethodPost)
	if s.metricsPath != "" {
		r.Handle(s.metricsPath, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).
			Methods(http.MethodGet)
	}
}

// Handler wraps the fully assembled router in the middleware chain. The chain
// sits outside the router, so unmatched paths and method mismatches get the
// same request id, CORS headers and metrics as routed requests.
func (s *Server) Handler(r *mux.Router) http.Handler {
	if r == nil {
		panic("router is nil")
	}
	return RequestIDMiddleware(
		MetricsMiddleware(r)(
			CORSMiddleware(r, s.corsOrigin)(r),
		),
	)
}

// dataResponse is the envelope for POST /data. Exactly one of Result and
// Message is set, and Status says which.
type dataResponse struct {
	Status  string  `json:"status"`
	Result  *string `json:"result,omitempty"`
	Message string  `json:"message,omitempty"`
}

func successResponse(result string) dataResponse {
	return dataResponse{Status: statusSuccess, Result: &result}
}

func errorResponse(message string) dataResponse {
	return dataResponse{Status: statusError, Message: message}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
