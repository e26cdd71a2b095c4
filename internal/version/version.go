// Package version holds the build version.
package version

import "runtime/debug"

// Version is overridden at build time:
//
//	go build -ldflags "-X mirpair/internal/version.Version=v1.2.3" ./cmd/mirpair
var Version = "dev"

// String returns Version, or the module version recorded by the Go
// toolchain when Version was not set.
func String() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}
