package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Default target triples per host platform family.
const (
	TargetLinux   = "x86_64-unknown-linux-gnu"
	TargetWindows = "x86_64-pc-windows-msvc"
	TargetDarwin  = "x86_64-apple-darwin"
)

// DefaultTarget returns the target triple built when none is requested.
// goos is a GOOS value, normally runtime.GOOS.
func DefaultTarget(goos string) (string, error) {
	switch goos {
	case "linux":
		return TargetLinux, nil
	case "windows":
		return TargetWindows, nil
	case "darwin":
		return TargetDarwin, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnsupportedPlatform, ""), "goos", goos)
	}
}

// IsWindowsTarget reports whether a target triple produces Windows binaries.
func IsWindowsTarget(target string) bool {
	return strings.Contains(target, "pc-windows")
}

// ExecutableName returns the file name of an executable for the given target.
func ExecutableName(name, target string) string {
	if IsWindowsTarget(target) {
		return name + ".exe"
	}
	return name
}

// ProfileDirName returns the toolchain profile directory for the build mode.
func ProfileDirName(release bool) string {
	if release {
		return "release"
	}
	return "debug"
}
