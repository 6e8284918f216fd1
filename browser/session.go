// Package browser wraps the Rod driver behind the narrow Session surface
// the authentication engine and the extraction pipeline consume, and owns
// the browser process lifecycle and page pool.
package browser

import (
	"time"

	"github.com/use-agent/keyhole/models"
	"github.com/ysmood/gson"
)

// Session is one exclusively-owned browsing context. All DOM probing and
// classification goes through Eval as opaque page-side scripts; the core
// never introspects predicate bodies, it only consumes their results.
//
// A Session is owned by a single in-flight request from acquisition to
// release; no two concurrent operations are issued against it.
type Session interface {
	// Navigate loads the given URL and blocks until the load starts.
	Navigate(url string) error

	// Eval runs a page-side script (a JS arrow function) with the given
	// arguments and returns its resolved value.
	Eval(js string, args ...interface{}) (gson.JSON, error)

	// SetCookie installs one cookie into the browsing context.
	SetCookie(c models.Cookie) error

	// WaitNavigation subscribes to the next navigation and returns a
	// function that blocks until it settles or the timeout elapses,
	// whichever comes first. Subscribe before triggering the action
	// that navigates, or a fast navigation is missed.
	WaitNavigation(timeout time.Duration) func()

	// CurrentURL returns the session's current URL, or "" when the
	// driver cannot report it.
	CurrentURL() string

	// Title returns the current page title, best-effort.
	Title() string

	// HTML returns the rendered DOM serialized as HTML.
	HTML() (string, error)
}
