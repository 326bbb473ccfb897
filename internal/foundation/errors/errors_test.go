package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "kss.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		assert.Equal(t, "[config:fatal] invalid configuration", err.Error())

		file, exists := err.Context().GetString("file")
		require.True(t, exists)
		assert.Equal(t, "kss.yaml", file)
	})

	t.Run("Sentinel causes survive classification", func(t *testing.T) {
		sentinel := errors.New("sentinel")
		err := fmt.Errorf("outer: %w", WrapError(sentinel, CategoryBuilder, "wrapped").Build())

		assert.ErrorIs(t, err, sentinel)
		assert.True(t, IsClassified(err))
		assert.True(t, HasCategory(err, CategoryBuilder))
		assert.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
	})

	t.Run("WithContext does not mutate the original", func(t *testing.T) {
		base := BuilderError("mismatch").WithContext("required", "3.0").Build()
		derived := base.WithContext("declared", "2.0")

		_, ok := base.Context().Get("declared")
		assert.False(t, ok)
		declared, ok := ContextString(derived, "declared")
		require.True(t, ok)
		assert.Equal(t, "2.0", declared)
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
			retry    RetryStrategy
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal, RetryNever},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal, RetryNever},
			{"BuilderError", BuilderError("test"), CategoryBuilder, SeverityFatal, RetryUserAction},
			{"GitError", GitError("test"), CategoryGit, SeverityError, RetryBackoff},
			{"BuildError", BuildError("test"), CategoryBuild, SeverityFatal, RetryNever},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError, RetryBackoff},
			{"AlreadyExistsError", AlreadyExistsError("test"), CategoryAlreadyExists, SeverityError, RetryUserAction},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal, RetryNever},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				assert.Equal(t, tt.category, err.Category())
				assert.Equal(t, tt.severity, err.Severity())
				assert.Equal(t, tt.retry, err.RetryStrategy())
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	ctx1 := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	ctx2 := ErrorContext{}.Set("key2", 42).Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	v1, _ := merged.GetString("key1")
	assert.Equal(t, "value1", v1)
	v2, _ := merged.Get("key2")
	assert.Equal(t, 42, v2)
	shared, _ := merged.GetString("shared")
	assert.Equal(t, "overridden", shared)

	var nilCtx ErrorContext
	_, ok := nilCtx.Get("missing")
	assert.False(t, ok)
}

func TestClassifiedError_LevelAndUserAction(t *testing.T) {
	assert.Equal(t, slog.LevelError, ConfigError("x").Build().Level())
	assert.Equal(t, slog.LevelWarn, NewError(CategoryBuilder, "x").Warning().Build().Level())
	assert.Equal(t, slog.LevelInfo, NewError(CategoryRuntime, "x").WithSeverity(SeverityInfo).Build().Level())

	assert.True(t, AlreadyExistsError("x").Build().NeedsUserAction())
	assert.True(t, BuilderError("x").Build().NeedsUserAction())
	assert.False(t, GitError("x").Build().NeedsUserAction())
	assert.True(t, GitError("x").Build().CanRetry())
	assert.False(t, GitError("x").WithRetry(RetryNever).Build().CanRetry())
}
