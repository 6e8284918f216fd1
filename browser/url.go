package browser

import (
	"net/url"
	"strings"
)

// SameTarget reports whether current and target address the same page:
// http(s) schemes, equal hosts (case-insensitive) and equal paths after
// trailing-slash normalization. Query strings and fragments are ignored,
// since login redirects routinely append tracking parameters.
func SameTarget(current, target string) bool {
	cu, err := url.Parse(current)
	if err != nil {
		return false
	}
	tu, err := url.Parse(target)
	if err != nil {
		return false
	}
	if !isHTTP(cu.Scheme) || !isHTTP(tu.Scheme) {
		return false
	}
	if !strings.EqualFold(cu.Hostname(), tu.Hostname()) {
		return false
	}
	return normalizePath(cu.Path) == normalizePath(tu.Path)
}

func isHTTP(scheme string) bool {
	return scheme == "http" || scheme == "https"
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
