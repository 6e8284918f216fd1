package auth

import (
	"log/slog"
	"strings"
	"time"

	"github.com/use-agent/keyhole/browser"
	"github.com/use-agent/keyhole/models"
)

// seedCookies injects the supplied cookies into the session, then waits
// settle so the browser registers them before navigation. Individual
// failures are logged and skipped; the seed counts as long as at least
// one cookie was set.
func seedCookies(s browser.Session, cookies []models.Cookie, settle time.Duration) bool {
	slog.Info("seeding session cookies", "count", len(cookies))

	set := 0
	for _, c := range cookies {
		c.Domain = strings.TrimSpace(c.Domain)
		if err := s.SetCookie(c); err != nil {
			slog.Warn("failed to set cookie", "name", c.Name, "error", err)
			continue
		}
		set++
	}

	slog.Info("session cookies seeded", "set", set, "total", len(cookies))
	if set == 0 {
		return false
	}
	time.Sleep(settle)
	return true
}
