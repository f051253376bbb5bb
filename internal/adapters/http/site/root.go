// Package site serves the embedded demo console.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded demo console to mux. Registered last so
// API routes keep precedence over the catch-all root pattern.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("/", http.FileServer(FS()))
}
