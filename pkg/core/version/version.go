// ============================================================================
// kairos - Date Formatting Service
// ============================================================================
//
// Package:     version
// Description: Central version management for the service and CLI
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Platform version
	Platform = "1.0.0"

	// Component versions
	Server = "1.0.0"
	CLI    = "1.0.0"

	// API is the gRPC API version
	API = "v1"
)

// Build metadata, set with -ldflags "-X .../version.GitCommit=..."
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "server":
		return Server
	case "cli":
		return CLI
	default:
		return Platform
	}
}

// Info describes the running binary
type Info struct {
	Version   string
	API       string
	GitCommit string
	BuildDate string
	GoVersion string
}

// Get returns the build information for component
func Get(component string) Info {
	return Info{
		Version:   ComponentVersion(component),
		API:       API,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String returns a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("%s (api %s, commit %s, built %s, %s)", i.Version, i.API, i.GitCommit, i.BuildDate, i.GoVersion)
}
