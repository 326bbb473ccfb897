// Package errors provides the classified error primitives shared by the
// kssbuilder packages.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, builder, filesystem, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - RetryStrategy: whether a caller may retry
//   - ClassifiedError: structured error with category, severity, context and cause
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing formatting for the CLI
//
// Example usage:
//
//	err := errors.WrapError(ErrIncompatibleBuilderVersion, errors.CategoryBuilder, "builder API mismatch").
//		WithContext("required", "3.0").
//		WithContext("declared", declared).
//		Build()
//
// A ClassifiedError unwraps to its cause, so sentinel comparison with the
// standard library errors.Is keeps working through the classification layer.
package errors
