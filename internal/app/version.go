package app

import "fmt"

// Version, Commit and BuildTime are stamped with ldflags:
//
//	go build -ldflags "-X github.com/lemarche/marketplace-backend/internal/app.Version=1.2.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion formats the build info for startup logs and /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
