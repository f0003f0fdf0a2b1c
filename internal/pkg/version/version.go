// Package version reports the build version of the tool.
//
// Release builds inject the version with
//
//	-ldflags "-X github.com/qbicsoftware/sample-service/internal/pkg/version.version=v1.2.3"
package version

import (
	"runtime/debug"

	"golang.org/x/mod/semver"
)

const develVersion = "(devel)"

var version = ""

// String returns the canonical semantic version of the running binary.
func String() string {
	if semver.IsValid(version) {
		return semver.Canonical(version)
	}
	if info, ok := debug.ReadBuildInfo(); ok && semver.IsValid(info.Main.Version) {
		return info.Main.Version
	}
	return develVersion
}
