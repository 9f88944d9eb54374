// Package site serves the plain-text liveness page at the root path.
package site

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"
)

// IndexBody is the fixed body returned by GET /.
const IndexBody = "Index Page"

// Register attaches the root route to r.
func Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}

	root := NewRootHandler()
	r.HandleFunc("/", root.HandleRoot).Methods(http.MethodGet, http.MethodHead)
}

// RootHandler handles root path requests
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests. It keeps no state, so the answer never
// depends on earlier traffic.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = io.WriteString(w, IndexBody)
}
