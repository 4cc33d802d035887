// Package version holds build metadata injected into the gemc binary through
// -ldflags.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
)

var (
	// Version is set at build time from VERSION.txt.
	Version = "dev"

	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Info is the version report printed by `gemc version`.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// Get returns the version information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("gemc %s (commit %s, built %s, %s)", i.Version, i.GitCommit, i.BuildTime, i.GoVersion)
}

// JSON returns the indented JSON form of i.
func (i Info) JSON() (string, error) {
	bytes, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
