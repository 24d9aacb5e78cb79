package cli

import "runtime/debug"

// version can be set by the linker.
var version string

// Version returns the release version the binary was built as.  If the
// linker did not set one, the module version from the build info is
// used; binaries built from a working tree report "unknown".
func Version() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "unknown"
}
