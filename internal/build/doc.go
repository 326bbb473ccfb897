// Package build provides the canonical style guide build pipeline.
//
// A build loads a builder, hands it the raw configuration, discovers and
// parses the source models, then runs the builder's Init, Prepare, and Build
// hooks in order. All execution paths (one-shot CLI builds and watch-mode
// rebuilds) route through Service.
//
// The package also defines sentinel errors for classifying stage failures.
// They are wrapped with context at the call site.
package build
