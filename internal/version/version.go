// Package version resolves package versions from the binary's embedded
// build information.
package version

import "runtime/debug"

// Fallback is returned when no version can be resolved, e.g. when running
// from source with `go run` or in a test binary.
const Fallback = "dev"

// Resolve returns the version of the named module as recorded in the
// running binary's build info.
//
// The main module and all dependencies are consulted. Returns [Fallback]
// when build info is unavailable or carries no usable version.
func Resolve(modulePath string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Fallback
	}

	if info.Main.Path == modulePath {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
		return Fallback
	}

	for _, dep := range info.Deps {
		if dep.Path == modulePath && dep.Version != "" {
			return dep.Version
		}
	}

	return Fallback
}
