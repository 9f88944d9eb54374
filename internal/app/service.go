// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"

	"github.com/okian/textcase/internal/domain/textcase"
	"github.com/okian/textcase/pkg/logger"
	"github.com/okian/textcase/pkg/metrics"
)

// methodLabelUnknown is the metrics label used when the method did not parse.
const methodLabelUnknown = "unknown"

// Recorder receives transform metrics.
type Recorder interface {
	RecordTransform(method, outcome string)
	RecordTransformInput(method string, size int)
}

// Result is the outcome of a successful transform.
type Result struct {
	Method textcase.Method
	Text   string
}

// Service performs case transforms for the HTTP API. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	logger   logger.Logger
	recorder Recorder
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets where transform metrics go. Defaults to the global
// metrics manager.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// New constructs a new Service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.recorder == nil {
		s.recorder = metrics.Default()
	}
	return s
}

// Transform resolves method and applies it to input. Both arguments are
// decoded JSON values and may be nil when the field was absent. Errors wrap
// textcase.ErrInvalidMethod or textcase.ErrTransformFailure.
func (s *Service) Transform(ctx context.Context, method, input any) (Result, error) {
	m, err := textcase.ParseMethod(method)
	if err != nil {
		s.recorder.RecordTransform(methodLabelUnknown, metrics.OutcomeInvalidMethod)
		return Result{}, err
	}

	out, err := textcase.Apply(m, input)
	if err != nil {
		s.recorder.RecordTransform(m.String(), metrics.OutcomeTransformError)
		return Result{}, err
	}

	// Apply only succeeds for string input.
	size := len(input.(string))
	s.recorder.RecordTransform(m.String(), metrics.OutcomeSuccess)
	s.recorder.RecordTransformInput(m.String(), size)
	if s.logger != nil {
		s.logger.Debug(ctx, "transform applied",
			logger.String("method", m.String()),
			logger.Int("input_bytes", size),
		)
	}
	return Result{Method: m, Text: out}, nil
}
