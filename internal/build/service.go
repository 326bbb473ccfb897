package build

import (
	"context"
	"time"
)

// Service is the canonical interface for executing style guide builds.
type Service interface {
	// Run executes a complete build: load → configure → init → discover →
	// parse → prepare → build.
	Run(ctx context.Context, req Request) (*Result, error)
}

// Request contains all inputs required to execute a build.
type Request struct {
	// Builder is the builder reference handed to the loader. When nil, the
	// "builder" config value is used, then the default builder.
	Builder any

	// Config holds raw option values, merged into the builder's configuration
	// before normalization.
	Config map[string]any
}

// Result contains the outcome of a build execution.
type Result struct {
	// Status indicates overall build outcome.
	Status Status

	// BuildID identifies this build in logs and output.
	BuildID string

	// API is the contract version the loaded builder declares.
	API string

	// Destination is the normalized output directory.
	Destination string

	// Files is the count of source files parsed.
	Files int

	// Sections is the count of sections after hierarchy completion.
	Sections int

	// Synthesized is the count of parent sections added by completion.
	Synthesized int

	// Duration is the total build execution time.
	Duration time.Duration

	// StartTime is when the build started.
	StartTime time.Time

	// EndTime is when the build completed.
	EndTime time.Time
}

// Status represents the outcome of a build execution.
type Status string

const (
	// StatusSuccess indicates the build completed successfully.
	StatusSuccess Status = "success"

	// StatusFailed indicates the build encountered an error.
	StatusFailed Status = "failed"

	// StatusCancelled indicates the build was cancelled.
	StatusCancelled Status = "cancelled"
)

// IsTerminal returns true if the status represents a final state.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusCancelled
}

// IsSuccess returns true if the build completed successfully.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}
