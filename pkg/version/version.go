// Package version reports the sentidash build version.
package version

import "runtime/debug"

// Version is the current application version. It is a var so release builds
// can override it:
//
//	go build -ldflags "-X github.com/vanderheijden86/sentidash/pkg/version.Version=v0.2.0"
var Version = "v0.1.0"

// String returns Version, annotated with the VCS revision when the binary
// carries build info.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version
	}
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return Version
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if dirty {
		rev += "-dirty"
	}
	return Version + " (" + rev + ")"
}
