package auth

import (
	"log/slog"

	"github.com/andybalholm/cascadia"
	"github.com/use-agent/keyhole/platform"
)

// selectorChain resolves the ordered selector list for one field:
// a valid explicit override replaces the whole chain, otherwise the
// platform profile's list, otherwise the generic catalog fallback.
func selectorChain(override string, profile, fallback []string) []string {
	if override != "" {
		if validSelector(override) {
			return []string{override}
		}
		slog.Warn("ignoring unparsable selector override", "selector", override)
	}
	if len(profile) > 0 {
		return profile
	}
	return fallback
}

// validSelector checks that a caller-supplied selector parses as CSS
// before it is handed to querySelector, where a syntax error would just
// read as "element not found" for the whole login.
func validSelector(sel string) bool {
	_, err := cascadia.Parse(sel)
	return err == nil
}

func genericProfile() platform.Profile {
	return platform.Resolve(platform.Generic)
}
