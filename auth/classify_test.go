package auth

import (
	"testing"

	"github.com/use-agent/keyhole/models"
	"github.com/use-agent/keyhole/platform"
)

func TestClassify_CaptchaBeatsTwoFactor(t *testing.T) {
	s := newFakeSession()
	s.scriptTrue[jsCaptchaPresent] = true
	s.scriptTrue[jsTwoFactorPresent] = true

	out := Classify(s, genericProfile(), "generic")
	if out.State != models.LoginCaptchaRequired {
		t.Errorf("expected captcha to win over two-factor, got %s", out.State)
	}
}

func TestClassify_TwoFactorBeatsCredentialError(t *testing.T) {
	s := newFakeSession()
	s.scriptTrue[jsTwoFactorPresent] = true
	s.scriptTrue[jsCredentialError] = true

	out := Classify(s, genericProfile(), "generic")
	if out.State != models.LoginTwoFactorRequired {
		t.Errorf("expected two-factor to win over credential error, got %s", out.State)
	}
}

func TestClassify_CredentialRejected(t *testing.T) {
	s := newFakeSession()
	s.scriptTrue[jsCredentialError] = true

	out := Classify(s, genericProfile(), "linkedin")
	if out.State != models.LoginCredentialRejected {
		t.Errorf("expected credential rejected, got %s", out.State)
	}
	if out.Platform != "linkedin" {
		t.Errorf("platform not carried through, got %q", out.Platform)
	}
}

func TestClassify_SuccessIndicatorVisible(t *testing.T) {
	s := newFakeSession()
	s.visible[".global-nav__me"] = true
	s.url = "https://www.linkedin.com/login" // URL alone must not decide

	prof := platform.Profile{
		ID:                "linkedin",
		SuccessIndicators: []string{".global-nav__me"},
	}
	out := Classify(s, prof, "linkedin")
	if out.State != models.LoginAuthenticated {
		t.Errorf("expected authenticated via success indicator, got %s", out.State)
	}
}

func TestClassify_HeuristicSuccess_FieldsGoneNonAuthURL(t *testing.T) {
	s := newFakeSession()
	s.scriptTrue[jsLoginFieldsGone] = true
	s.url = "https://example.com/dashboard"

	out := Classify(s, genericProfile(), "generic")
	if out.State != models.LoginAuthenticated {
		t.Errorf("expected heuristic success, got %s", out.State)
	}
}

func TestClassify_HeuristicSuccess_IdentityOnAuthURL(t *testing.T) {
	// Still on a login-looking URL, but an identity element is visible.
	s := newFakeSession()
	s.scriptTrue[jsLoginFieldsGone] = true
	s.scriptTrue[jsIdentityVisible] = true
	s.url = "https://example.com/login/complete"

	out := Classify(s, genericProfile(), "generic")
	if out.State != models.LoginAuthenticated {
		t.Errorf("expected authenticated, got %s", out.State)
	}
}

func TestClassify_Inconclusive(t *testing.T) {
	// Fields gone but still on an auth URL with no identity signal:
	// cannot claim success, cannot claim failure.
	s := newFakeSession()
	s.scriptTrue[jsLoginFieldsGone] = true
	s.url = "https://example.com/login"

	out := Classify(s, genericProfile(), "generic")
	if out.State != models.LoginInconclusive {
		t.Errorf("expected inconclusive, got %s", out.State)
	}
}

func TestClassify_FieldsStillPresent(t *testing.T) {
	s := newFakeSession()
	s.url = "https://example.com/somewhere"

	out := Classify(s, genericProfile(), "generic")
	if out.State != models.LoginInconclusive {
		t.Errorf("expected inconclusive while login fields remain, got %s", out.State)
	}
}

func TestLooksLikeAuthURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/login", true},
		{"https://example.com/signin", true},
		{"https://example.com/users/sign_in", true},
		{"https://accounts.google.com/v3/signin/challenge/pwd", true},
		{"https://example.com/dashboard", false},
		{"https://example.com/", false},
		{"https://github.com/session/new", true},
		{"https://example.com/blog/post-about-logging", false},
	}
	for _, tt := range tests {
		if got := looksLikeAuthURL(tt.url); got != tt.want {
			t.Errorf("looksLikeAuthURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
