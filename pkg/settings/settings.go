// Package settings provides build metadata, per-run configuration, and
// context helpers used across the gridcol CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "gridcol"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Output formats understood by the resolve command.
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
	OutputJSON  = "json"
)

// Run holds configuration settings for a single execution of the application.
// Values come from the merged config file and are then overridden by flags.
type Run struct {
	MinLogLevel  int8
	ConfigFile   string
	OutputFormat string
	Width        int
	RowNumbers   string
	Compact      bool
	NoColor      bool
	ExitOnError  bool
}

// NewCliParams returns the defaults used before config and flags are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel:  0,
		OutputFormat: OutputTable,
		RowNumbers:   "index",
		NoColor:      false,
		ExitOnError:  true,
	}
}

// ValidOutputFormat reports whether f names a supported output format.
func ValidOutputFormat(f string) bool {
	switch f {
	case OutputTable, OutputYAML, OutputJSON:
		return true
	}
	return false
}
