// Package config holds the small set of knobs the checker driver exposes,
// wired to cobra flags the way cottand-ile's cmd/build.go wires its own
// --log-level flag.
package config

import "log/slog"

// Options configures one run of the checker (cmd/articcheck).
type Options struct {
	// LogLevel controls internal/corelog's verbosity.
	LogLevel slog.Level

	// MaxResolveDepth bounds impl-resolver recursion as a hard backstop on
	// top of its visited-set cycle detection (spec.md §9's open question on
	// impl-resolver recursion; SPEC_FULL.md §14(a)).
	MaxResolveDepth int

	// AmbiguousBoundsIsError controls whether an inconsistent TypeBounds at
	// scope exit (spec.md §4.5) is reported as a hard error or a warning.
	AmbiguousBoundsIsError bool
}

// Default returns the Options a bare invocation of the checker runs with.
func Default() Options {
	return Options{
		LogLevel:               slog.LevelError,
		MaxResolveDepth:        64,
		AmbiguousBoundsIsError: true,
	}
}
