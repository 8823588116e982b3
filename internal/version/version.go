// Package version holds build information, set with -ldflags:
//
//	go build -ldflags "-X github.com/longkey1/fincoach/internal/version.Version=v1.0.0 \
//	  -X github.com/longkey1/fincoach/internal/version.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/longkey1/fincoach/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Short returns the version number only.
func Short() string {
	return Version
}

// Info returns the full build information.
func Info() string {
	return fmt.Sprintf("fincoach %s\n  commit: %s\n  built:  %s\n  go:     %s %s/%s",
		Version, Commit, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
