package tui

import "errors"

// ErrMissingControlService is returned when the control service is not provided.
var ErrMissingControlService = errors.New("tui: control service is required")

// ErrMissingBackendService is returned when the backend service is not provided.
var ErrMissingBackendService = errors.New("tui: backend service is required")
