package version

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/issueblog/internal/version.Version=v1.0.0".
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by the version command.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
