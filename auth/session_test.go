package auth

import (
	"time"

	"github.com/use-agent/keyhole/config"
	"github.com/use-agent/keyhole/models"
	"github.com/ysmood/gson"
)

// fakeSession is a scriptable browser.Session. Selector visibility and
// per-script results are keyed maps; onEval lets a test mutate the fake
// when a given script runs, to model pages that change state.
type fakeSession struct {
	visible    map[string]bool // selector -> jsSelectorVisible result
	scriptTrue map[string]bool // script source -> boolean result
	typeOK     bool
	onEval     func(f *fakeSession, js string, args []interface{})

	navigations []string
	navErr      error
	cookiesSet  []models.Cookie
	cookieErr   error

	url   string
	title string
	html  string

	// events records the navigation-wait lifecycle ("wait-armed",
	// "wait-resolved") interleaved with entries a test's onEval adds.
	events []string
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		visible:    map[string]bool{},
		scriptTrue: map[string]bool{},
		typeOK:     true,
	}
}

func (f *fakeSession) Navigate(url string) error {
	if f.navErr != nil {
		return f.navErr
	}
	f.navigations = append(f.navigations, url)
	f.url = url
	return nil
}

func (f *fakeSession) Eval(js string, args ...interface{}) (gson.JSON, error) {
	if f.onEval != nil {
		f.onEval(f, js, args)
	}
	switch js {
	case jsSelectorVisible:
		sel, _ := args[0].(string)
		return gson.New(f.visible[sel]), nil
	case jsTypeInto:
		return gson.New(f.typeOK), nil
	default:
		return gson.New(f.scriptTrue[js]), nil
	}
}

func (f *fakeSession) SetCookie(c models.Cookie) error {
	if f.cookieErr != nil {
		return f.cookieErr
	}
	f.cookiesSet = append(f.cookiesSet, c)
	return nil
}

func (f *fakeSession) WaitNavigation(timeout time.Duration) func() {
	f.events = append(f.events, "wait-armed")
	return func() { f.events = append(f.events, "wait-resolved") }
}

func (f *fakeSession) CurrentURL() string { return f.url }

func (f *fakeSession) Title() string { return f.title }

func (f *fakeSession) HTML() (string, error) { return f.html, nil }

// testLoginConfig returns near-zero budgets so tests never sleep for
// real. The selector poll tick is fixed, so a deliberate timeout still
// costs one tick.
func testLoginConfig() config.LoginConfig {
	return config.LoginConfig{
		FieldTimeout:       20 * time.Millisecond,
		MultiStepProbe:     time.Millisecond,
		SubmitProbe:        time.Millisecond,
		MinPostSubmitWait:  time.Millisecond,
		NavigationSettle:   time.Millisecond,
		CookieVerifySettle: time.Millisecond,
		InputSettle:        time.Millisecond,
		StepSettle:         time.Millisecond,
	}
}
