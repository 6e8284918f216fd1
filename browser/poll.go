package browser

import "time"

// Poll invokes pred immediately and then once per interval until it
// returns true or the budget elapses. It reports whether pred ever
// returned true.
//
// This is the single time-bounded retry construct in the codebase:
// selector visibility waits and the DOM-ready probe run on it. The
// budget is a local bound; overshoot is at most one interval past it.
func Poll(interval, budget time.Duration, pred func() bool) bool {
	start := time.Now()
	for {
		if pred() {
			return true
		}
		if time.Since(start) >= budget {
			return false
		}
		time.Sleep(interval)
	}
}
