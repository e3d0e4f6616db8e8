package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Build metadata injected via ldflags. Fields left empty fall back to the
// module build info the Go linker embeds in the binary.
var (
	version = ""
	commit  = ""
	date    = ""
)

// versionInfo holds the resolved build metadata for display.
type versionInfo struct {
	version   string
	commit    string
	date      string
	goVersion string
}

// buildVersion resolves build metadata, preferring ldflags values and
// falling back to debug.ReadBuildInfo.
func buildVersion() versionInfo {
	info := versionInfo{version: version, commit: commit, date: date}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.version == "" {
			info.version = bi.Main.Version
		}
		info.goVersion = bi.GoVersion
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.commit == "" {
					info.commit = shortRevision(setting.Value)
				}
			case "vcs.time":
				if info.date == "" {
					info.date = setting.Value
				}
			}
		}
	}

	info.fillPlaceholders()
	return info
}

// fillPlaceholders replaces unresolved fields with display placeholders.
func (v *versionInfo) fillPlaceholders() {
	if v.version == "" {
		v.version = "(devel)"
	}
	if v.commit == "" {
		v.commit = "unknown"
	}
	if v.date == "" {
		v.date = "unknown"
	}
	if v.goVersion == "" {
		v.goVersion = "unknown"
	}
}

// shortRevision truncates a VCS revision hash to 7 characters.
func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// String renders the metadata as a multi-line block.
func (v versionInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "sitecheck %s\n", v.version)
	fmt.Fprintf(&sb, "  revision:   %s\n", v.commit)
	fmt.Fprintf(&sb, "  build date: %s\n", v.date)
	fmt.Fprintf(&sb, "  go version: %s\n", v.goVersion)
	return sb.String()
}

// getVersion returns the bare version string for cobra's --version flag
// and the JSON report metadata.
func getVersion() string {
	return buildVersion().version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, revision, build date, and Go version of sitecheck.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), buildVersion())
		},
	}
}
