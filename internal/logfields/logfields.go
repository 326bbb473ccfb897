// Package logfields holds the canonical slog attribute keys used across kssbuilder.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyBuilder    = "builder"
	KeyAPIVersion = "api_version"
	KeyReference  = "reference"
	KeyPath       = "path"
	KeyStage      = "stage"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr       { return slog.String(KeyBuildID, id) }
func Builder(name string) slog.Attr     { return slog.String(KeyBuilder, name) }
func APIVersion(v string) slog.Attr     { return slog.String(KeyAPIVersion, v) }
func Reference(ref string) slog.Attr    { return slog.String(KeyReference, ref) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func URL(u string) slog.Attr            { return slog.String(KeyURL, u) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
