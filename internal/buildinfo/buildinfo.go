// Package buildinfo identifies the running binary.
package buildinfo

import "runtime/debug"

// Set at build time via -ldflags "-X fixbrot/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Short returns the release version, else an abbreviated commit, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" {
		return c[:min(len(c), 12)]
	}
	return "dev"
}

// Attrs returns slog key/value pairs describing the build.
func Attrs() []any {
	attrs := []any{"version", Version}
	if c := commit(); c != "" {
		attrs = append(attrs, "commit", c)
	}
	if Date != "" {
		attrs = append(attrs, "date", Date)
	}
	return attrs
}

// commit prefers the linker-set value and falls back to the VCS stamp the
// go command embeds.
func commit() string {
	if Commit != "" {
		return Commit
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
