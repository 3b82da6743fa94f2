package utils

import (
	"fmt"
	"runtime/debug"
)

// Version is the semantic version of the application, overridable at build
// time with -ldflags "-X telemetry-api/pkg/utils.Version=x.y.z".
//
//nolint:gochecknoglobals // Set via ldflags
var Version = "0.0.0-dev"

// getVCSInfo extracts commit hash (shortened to 7 chars), build time and the
// modified flag from the embedded build info.
func getVCSInfo() (string, string, string) {
	commit := "unknown"
	buildTime := "unknown"
	modified := "false"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return commit, buildTime, modified
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
			if len(commit) > 7 {
				commit = commit[:7]
			}
		case "vcs.time":
			buildTime = setting.Value
		case "vcs.modified":
			if setting.Value == "true" {
				modified = "true"
			}
		}
	}

	return commit, buildTime, modified
}

func versionWithDirty() string {
	_, _, modified := getVCSInfo()
	if modified == "true" {
		return "v" + Version + "-dirty"
	}

	return "v" + Version
}

// GetBuildVersion returns the full version string including build time.
func GetBuildVersion() string {
	commit, buildTime, _ := getVCSInfo()

	return fmt.Sprintf("%s (%s) built at %s", versionWithDirty(), commit, buildTime)
}

// GetVersionShort returns the version and commit hash only.
func GetVersionShort() string {
	commit, _, _ := getVCSInfo()

	return fmt.Sprintf("%s (%s)", versionWithDirty(), commit)
}

// GetBuildInfo returns version metadata as a flat map.
func GetBuildInfo() map[string]string {
	commit, buildTime, modified := getVCSInfo()

	res := map[string]string{
		"version":      Version,
		"commit":       commit,
		"build_time":   buildTime,
		"vcs_modified": modified,
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		res["go_version"] = info.GoVersion
	}

	return res
}
