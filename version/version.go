// Package version holds build metadata injected at link time.
package version

import "runtime"

// Populated via -ldflags at build time, e.g.
//
//	go build -ldflags "-X github.com/ocrdesk/ocrdesk/version.GitRelease=v0.3.0"
var (
	GitRelease    = "dev"
	GitCommit     = "unknown"
	GitCommitDate = "unknown"
)

// GoInfo is the Go toolchain the binary was built with.
var GoInfo = runtime.Version()
