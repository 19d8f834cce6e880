// Package version holds build information set through -ldflags, e.g.
//
//	go build -ldflags "-X github.com/longkey1/chatc/internal/version.Version=v1.0.0"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildTime = "unknown"
)

// Short returns the version number only
func Short() string {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return Version
}

// Info returns the full version description
func Info() string {
	return fmt.Sprintf("chatc %s\n  Commit:     %s\n  Built:      %s\n  Go version: %s\n  Platform:   %s/%s",
		Short(), CommitSHA, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
