package build

import "errors"

// Sentinel domain errors used to classify stage failures.
var (
	ErrNoSources = errors.New("kssbuilder: no source directory configured")
	ErrDiscovery = errors.New("kssbuilder: discovery error")
	ErrParse     = errors.New("kssbuilder: parse error")
)
