package models

import "testing"

func TestLoginState_String(t *testing.T) {
	tests := []struct {
		state LoginState
		want  string
	}{
		{LoginAuthenticated, "authenticated"},
		{LoginCredentialRejected, "credential_rejected"},
		{LoginTwoFactorRequired, "two_factor_required"},
		{LoginCaptchaRequired, "captcha_required"},
		{LoginInconclusive, "inconclusive"},
		{LoginFatal, "fatal"},
		{LoginState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("LoginState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestLoginOutcome_Authenticated(t *testing.T) {
	if !(LoginOutcome{State: LoginAuthenticated}).Authenticated() {
		t.Error("authenticated outcome should report true")
	}
	for _, s := range []LoginState{
		LoginCredentialRejected,
		LoginTwoFactorRequired,
		LoginCaptchaRequired,
		LoginInconclusive,
		LoginFatal,
	} {
		if (LoginOutcome{State: s}).Authenticated() {
			t.Errorf("%s should not report authenticated", s)
		}
	}
}
