// Package mcp exposes frequency control to AI assistants over the Model
// Context Protocol.
package mcp

import "errors"

var (
	// ErrMissingControlService is returned when the control service is not provided.
	ErrMissingControlService = errors.New("mcp: control service is required")

	// ErrMissingBackendService is returned when the backend service is not provided.
	ErrMissingBackendService = errors.New("mcp: backend service is required")
)
