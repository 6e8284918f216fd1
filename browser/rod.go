package browser

import (
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/keyhole/models"
	"github.com/ysmood/gson"
)

// rodSession adapts a *rod.Page to the Session interface.
type rodSession struct {
	page *rod.Page
}

// NewRodSession wraps an already-acquired rod page. The page should have
// its request context bound (page.Context) before wrapping so every
// driver call inherits the request deadline.
func NewRodSession(page *rod.Page) Session {
	return &rodSession{page: page}
}

func (s *rodSession) Navigate(url string) error {
	return s.page.Navigate(url)
}

func (s *rodSession) Eval(js string, args ...interface{}) (gson.JSON, error) {
	res, err := s.page.Eval(js, args...)
	if err != nil {
		return gson.New(nil), err
	}
	return res.Value, nil
}

func (s *rodSession) SetCookie(c models.Cookie) error {
	path := c.Path
	if path == "" {
		path = "/"
	}
	_, err := proto.NetworkSetCookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: c.Domain,
		Path:   path,
		Secure: true,
	}.Call(s.page)
	return err
}

func (s *rodSession) WaitNavigation(timeout time.Duration) func() {
	// The subscription starts here; the returned function resolves on
	// the lifecycle event. The Timeout clone bounds it so a page that
	// never navigates just runs out the budget.
	return s.page.Timeout(timeout).WaitNavigation(proto.PageLifecycleEventNameNetworkAlmostIdle)
}

func (s *rodSession) CurrentURL() string {
	info, err := s.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (s *rodSession) Title() string {
	info, err := s.page.Info()
	if err != nil {
		return ""
	}
	return info.Title
}

func (s *rodSession) HTML() (string, error) {
	return s.page.HTML()
}
