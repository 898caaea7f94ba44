// Package version exposes build information set at link time.
package version

// Set with -ldflags "-X github.com/rshade/streamtable/pkg/version.version=...".
var version = "dev" //nolint:gochecknoglobals // Link-time variable.

// GetVersion returns the release version, or "dev" for local builds.
func GetVersion() string {
	return version
}
