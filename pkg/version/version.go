package version

// Version is the semantic version of the build, overridden via ldflags
var Version = "v0.1.0"

// GetVersion returns the version string
func GetVersion() string {
	return Version
}
