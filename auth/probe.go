package auth

import (
	"time"

	"github.com/use-agent/keyhole/browser"
)

// probeInterval is the fixed tick for selector visibility polling.
const probeInterval = 250 * time.Millisecond

// FindVisible polls the DOM for the first visible element matching any
// of the ordered selectors. On each tick the selectors are evaluated in
// list order, so earlier (more specific) selectors win when several
// match simultaneously. Returns ("", false) once the timeout elapses
// with no match; absence is not fatal by itself — callers decide.
func FindVisible(s browser.Session, selectors []string, timeout time.Duration) (string, bool) {
	var found string
	ok := browser.Poll(probeInterval, timeout, func() bool {
		for _, sel := range selectors {
			res, err := s.Eval(jsSelectorVisible, sel)
			if err != nil {
				continue
			}
			if res.Bool() {
				found = sel
				return true
			}
		}
		return false
	})
	return found, ok
}
