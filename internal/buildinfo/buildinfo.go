// Package buildinfo holds build metadata set with -ldflags "-X".
//
//	go build -ldflags "-X github.com/bolabot/bolabot-go/internal/buildinfo.Version=v1.2.0"
package buildinfo

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"
	// Commit is the git SHA the binary was built from.
	Commit = ""
	// BuildDate is an RFC3339 timestamp.
	BuildDate = ""
)
