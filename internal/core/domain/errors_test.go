package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNoArguments", ErrNoArguments},
		{"ErrInvalidArgument", ErrInvalidArgument},
		{"ErrOutOfRange", ErrOutOfRange},
		{"ErrInvalidBackend", ErrInvalidBackend},
		{"ErrInternal", ErrInternal},
		{"ErrBackendNotSupported", ErrBackendNotSupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestTypedErrors_Unwrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{"invalid argument", &InvalidArgumentError{Value: "abc", Context: "min"}, ErrInvalidArgument, `invalid argument "abc" for min`},
		{"out of range", &OutOfRangeError{Value: 150, Min: 0, Max: 100}, ErrOutOfRange, "value 150 out of range [0,100]"},
		{"invalid backend", &InvalidBackendError{Name: "acme"}, ErrInvalidBackend, `invalid backend "acme"`},
		{"not supported", &BackendNotSupportedError{Name: "cpufreq"}, ErrBackendNotSupported, `backend "cpufreq" not supported on this system`},
		{"internal", &InternalError{Component: "cpufreq"}, ErrInternal, "internal error in cpufreq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.Equal(t, tt.message, tt.err.Error())

			wrapped := fmt.Errorf("context: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
		})
	}
}

func TestInternalError_KeepsCause(t *testing.T) {
	err := &InternalError{Component: "sysfs", Err: fs.ErrNotExist}

	assert.True(t, errors.Is(err, ErrInternal))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "sysfs")
}

func TestInternal(t *testing.T) {
	assert.NoError(t, Internal("x", nil))

	wrapped := Internal("cpufreq", fs.ErrPermission)
	var ie *InternalError
	assert.True(t, errors.As(wrapped, &ie))
	assert.Equal(t, "cpufreq", ie.Component)

	// already classified errors pass through unchanged
	outOfRange := &OutOfRangeError{Value: 1}
	assert.Same(t, outOfRange, Internal("cpufreq", outOfRange))

	// no double wrapping
	assert.Same(t, wrapped, Internal("other", wrapped))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{nil, ExitSuccess},
		{ErrNoArguments, ExitNoArguments},
		{&InvalidArgumentError{Value: "x"}, ExitInvalidArgument},
		{&OutOfRangeError{Value: 101}, ExitOutOfRange},
		{&InvalidBackendError{Name: "x"}, ExitInvalidBackend},
		{&BackendNotSupportedError{Name: "x"}, ExitBackendNotSupported},
		{&InternalError{Component: "x"}, ExitInternalError},
		{errors.New("anything else"), ExitInternalError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestExitCodes_AreDistinct(t *testing.T) {
	codes := []int{
		ExitSuccess, ExitNoArguments, ExitInvalidArgument, ExitOutOfRange,
		ExitInvalidBackend, ExitInternalError, ExitBackendNotSupported,
	}
	seen := make(map[int]bool)
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate exit code %d", c)
		seen[c] = true
	}
}
