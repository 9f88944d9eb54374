package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/textcase/internal/domain/textcase"
	"github.com/okian/textcase/pkg/logger"
)

// Client-facing error messages.
const (
	MessageNoJSON        = "No JSON received"
	MessageInvalidMethod = "Invalid method"
	MessageInternalError = "Internal server error"
)

// Request field names.
const (
	fieldMethod    = "method"
	fieldTextInput = "text_input"
)

// DataHandler handles the case transform endpoint.
type DataHandler struct {
	svc          Transformer
	logger       logger.Logger
	maxBodyBytes int64
}

// NewDataHandler creates a new data handler. A nil logger falls back to the
// global one.
func NewDataHandler(svc Transformer, log logger.Logger) *DataHandler {
	if log == nil {
		log = logger.Get()
	}
	return &DataHandler{svc: svc, logger: log, maxBodyBytes: defaultMaxBodyBytes}
}

// HandlePostData handles POST /data requests.
func (h *DataHandler) HandlePostData(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_data"
	ctx := r.Context()

	fields, err := h.decodeObject(w, r)
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrMalformedRequest, err))
		return
	}

	res, err := h.svc.Transform(ctx, fields[fieldMethod], fields[fieldTextInput])
	if err != nil {
		h.fail(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, successResponse(res.Text))
}

// decodeObject reads the body and returns its top-level fields. Anything that
// is not a non-empty JSON object is rejected.
func (h *DataHandler) decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	const op = "api.decode_object"
	if r.Body == nil {
		return nil, NewKind(op, ErrEmptyBody)
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, NewKind(op, ErrEmptyBody)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok || len(obj) == 0 {
		return nil, NewKind(op, ErrNotObject)
	}
	return obj, nil
}

// fail logs err and writes the matching error envelope.
func (h *DataHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "Error processing request", logger.Error(err))
	} else {
		h.logger.Error(r.Context(), message, logger.Error(err))
	}
	writeJSON(w, status, errorResponse(message))
}

// classify maps an error kind onto a status code and client message.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMalformedRequest):
		return http.StatusBadRequest, MessageNoJSON
	case errors.Is(err, textcase.ErrInvalidMethod):
		return http.StatusBadRequest, MessageInvalidMethod
	default:
		return http.StatusInternalServerError, MessageInternalError
	}
}
