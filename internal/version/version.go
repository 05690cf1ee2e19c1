package version

// Version is set via build-time ldflags in release builds:
// go build -ldflags "-X git.home.luguber.info/inful/seekinject/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return "seekinject " + Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
