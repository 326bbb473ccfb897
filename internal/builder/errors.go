package builder

import (
	"errors"
	"fmt"

	ferrors "git.home.luguber.info/inful/kssbuilder/internal/foundation/errors"
)

var (
	// ErrInvalidReferenceType is returned when a builder reference is neither
	// a constructor nor a locator string.
	ErrInvalidReferenceType = errors.New("invalid builder reference type")

	// ErrIncompatibleBuilderVersion is returned when a builder does not
	// implement the required contract version.
	ErrIncompatibleBuilderVersion = errors.New("incompatible builder version")

	// ErrModuleNotFound is returned when a locator names no known module.
	ErrModuleNotFound = errors.New("builder module not found")

	// ErrNoBuilder is returned in strict mode when a module exports nothing
	// that can be constructed.
	ErrNoBuilder = errors.New("module does not export a builder")
)

func invalidReference(ref any) error {
	return ferrors.ValidationError("a builder must be a constructor or a module locator").
		WithCause(ErrInvalidReferenceType).
		WithContext("type", fmt.Sprintf("%T", ref)).
		Build()
}

func incompatible(required, declared string) error {
	msg := fmt.Sprintf("expected the builder to implement builder API version %s; version %q is being used instead",
		required, declared)
	return ferrors.BuilderError(msg).
		WithCause(ErrIncompatibleBuilderVersion).
		WithContext("required", required).
		WithContext("declared", declared).
		Build()
}

func moduleNotFound(locator string) error {
	return ferrors.NewError(ferrors.CategoryNotFound, "cannot find builder module").
		WithCause(ErrModuleNotFound).
		WithContext("locator", locator).
		Build()
}
