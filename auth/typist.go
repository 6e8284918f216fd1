package auth

import (
	"log/slog"

	"github.com/use-agent/keyhole/browser"
)

// Typing cadence in milliseconds: each keystroke waits base plus up to
// jitter, with an occasional longer thinking pause added page-side.
const (
	typeBaseDelayMs = 60
	typeJitterMs    = 40
)

// TypeInto drives a human-cadence typing simulation into the field
// matching selector. Returns false when the field is missing or
// disappears mid-typing; callers treat that as a retryable precondition
// failure, not a fatal error.
func TypeInto(s browser.Session, selector, text string) bool {
	res, err := s.Eval(jsTypeInto, selector, text, typeBaseDelayMs, typeJitterMs)
	if err != nil {
		slog.Warn("typing evaluation failed", "selector", selector, "error", err)
		return false
	}
	return res.Bool()
}
