package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	t.Parallel()

	err := NewConfigError("routes[0].path", "must not be empty")
	assert.Contains(t, err.Error(), "routes[0].path")
	assert.Contains(t, err.Error(), "must not be empty")
	assert.True(t, errors.Is(err, ErrConfigInvalid))
}

func TestConfigError_NoField(t *testing.T) {
	t.Parallel()

	err := NewConfigError("", "something broke")
	assert.Equal(t, "config error: something broke", err.Error())
}

func TestConfigError_WithCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("yaml: line 3: mapping values are not allowed")
	err := NewConfigErrorWithCause("routes", "parse failed", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("route validation failed")
	err.AddField("path", "must start with /")

	assert.Contains(t, err.Error(), "route validation failed")
	assert.Contains(t, err.Error(), "path")
	assert.True(t, errors.Is(err, ErrConfigInvalid))
}

func TestValidationError_NilFields(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Message: "bad"}
	err.AddField("key", "oops")
	assert.Equal(t, "oops", err.Fields["key"])
}

func TestDuplicateRouteError(t *testing.T) {
	t.Parallel()

	err := NewDuplicateRouteError("/download", "id")
	assert.Contains(t, err.Error(), "/download")
	assert.Contains(t, err.Error(), "id")
	assert.True(t, errors.Is(err, ErrDuplicateRoute))

	var dup *DuplicateRouteError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "/download", dup.Path)
	assert.Equal(t, "id", dup.QueryKey)
}

func TestDuplicateRouteError_EmptyKey(t *testing.T) {
	t.Parallel()

	err := NewDuplicateRouteError("/status", "")
	assert.Contains(t, err.Error(), "/status")
	assert.NotContains(t, err.Error(), "with key")
}

func TestDuplicateRouteError_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("register: %w", NewDuplicateRouteError("/a", ""))
	assert.True(t, errors.Is(err, ErrDuplicateRoute))
}

func TestConflictingDispositionError(t *testing.T) {
	t.Parallel()

	err := NewConflictingDispositionError("/report", "")
	assert.Contains(t, err.Error(), "/report")
	assert.Contains(t, err.Error(), "mutually exclusive")
	assert.True(t, errors.Is(err, ErrConflictingDispo))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	base := errors.New("base")
	wrapped := WrapError(base, "context")
	assert.Equal(t, "context: base", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))
}

func TestWrapError_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, WrapError(nil, "context"))
}
