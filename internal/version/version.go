// Package version holds build-time identifying information for the ember
// and emberc binaries.
package version

import "github.com/fatih/color"

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the toolchain.
	Version = majorColor.Sprint("0") + "." + minorColor.Sprint("1") + "." + patchColor.Sprint("0") + "-dev"

	// GitCommit is set via -ldflags at release build time.
	GitCommit = ""

	// BuildDate is set via -ldflags at release build time, in ISO-8601.
	BuildDate = ""
)

// Banner renders a one-line, optionally colorized version string for the
// `version` subcommand and the REPL's startup message.
func Banner(program string) string {
	s := program + " " + Version
	if GitCommit != "" {
		s += " (" + GitCommit + ")"
	}
	return s
}
