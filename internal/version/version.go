package version

// Version contains the booktest version.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/booktest/internal/version.Version=v0.3.0".
var Version = "unknown"

// HostVersion is the version of the documentation host (mdBook) whose render
// context format this build understands. It is fixed at build time and passed
// explicitly into each pipeline.RenderContext rather than read globally.
var HostVersion = "0.4.40"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)
