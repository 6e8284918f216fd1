package auth

// Page-side scripts evaluated through the driver boundary. The engine
// treats each one as a named, opaque DOM predicate or action; decision
// logic stays in Go, only the probing runs in the page context.

// jsSelectorVisible reports whether the first element matching sel is
// attached, displayed, non-transparent and has a non-zero bounding box.
const jsSelectorVisible = `(sel) => {
	try {
		const el = document.querySelector(sel);
		if (!el) return false;
		const style = window.getComputedStyle(el);
		const rect = el.getBoundingClientRect();
		return el.offsetParent !== null &&
			style.visibility !== 'hidden' &&
			style.display !== 'none' &&
			parseFloat(style.opacity) > 0 &&
			rect.width > 0 &&
			rect.height > 0;
	} catch (e) {
		return false;
	}
}`

// jsTypeInto simulates a human typing into the field matching sel:
// scroll into view, focus, clear, then per character a randomized delay
// (base + jitter, occasionally a longer thinking pause) followed by the
// keydown/input/keyup sequence, and a change/blur pair at the end so
// framework-level validation observes the value. Returns false when the
// field is missing or detaches mid-typing.
const jsTypeInto = `async (sel, text, base, jitter) => {
	const sleep = (ms) => new Promise(r => setTimeout(r, ms));
	const field = document.querySelector(sel);
	if (!field || field.offsetParent === null) return false;

	field.scrollIntoView({ behavior: 'smooth', block: 'center' });
	await sleep(400);
	field.focus();
	field.click();
	await sleep(150);

	field.value = '';
	field.dispatchEvent(new Event('focus', { bubbles: true }));

	for (let i = 0; i < text.length; i++) {
		if (!document.contains(field)) return false;
		const char = text.charAt(i);
		let delay = base + Math.floor(Math.random() * jitter);
		if (Math.random() < 0.06) delay += 300 + Math.floor(Math.random() * 400);
		await sleep(delay);

		field.dispatchEvent(new KeyboardEvent('keydown', { key: char, bubbles: true }));
		field.value += char;
		field.dispatchEvent(new InputEvent('input', {
			data: char,
			inputType: 'insertText',
			bubbles: true
		}));
		field.dispatchEvent(new KeyboardEvent('keyup', { key: char, bubbles: true }));
	}

	await sleep(250);
	field.dispatchEvent(new Event('change', { bubbles: true }));
	field.dispatchEvent(new Event('blur', { bubbles: true }));
	return true;
}`

// jsDismissOverlays clicks the first visible short-labelled consent or
// close button. Returns whether anything was clicked.
const jsDismissOverlays = `() => {
	const acceptTexts = ['accept', 'agree', 'allow', 'got it', 'ok'];
	const closeTexts = ['close', 'dismiss', 'no thanks', 'reject'];
	const buttons = document.querySelectorAll('button, a[role="button"], div[role="button"]');
	for (const btn of buttons) {
		const text = (btn.textContent || '').toLowerCase().trim();
		if (btn.offsetParent !== null && text.length > 0 && text.length < 50) {
			if (acceptTexts.some(t => text.includes(t)) || closeTexts.some(t => text.includes(t))) {
				btn.click();
				return true;
			}
		}
	}
	return false;
}`

// jsDismissInterstitials clicks post-login "skip"/"not now" style prompts.
const jsDismissInterstitials = `() => {
	const skipTexts = ['not now', 'skip', 'maybe later', 'remind me later', 'no thanks'];
	const buttons = document.querySelectorAll('button, a[role="button"], div[role="button"]');
	for (const btn of buttons) {
		const text = (btn.textContent || '').toLowerCase().trim();
		if (btn.offsetParent !== null && text.length > 0 && text.length < 40) {
			if (skipTexts.some(t => text.includes(t))) {
				btn.click();
				return true;
			}
		}
	}
	return false;
}`

// jsAdvanceNext tries to move a split login flow to the password step:
// known next-button shapes first, then text-matched next/continue labels
// in several languages, then an Enter keypress on the email field.
const jsAdvanceNext = `(emailSel) => {
	const known = document.querySelectorAll(
		"#identifierNext button, #idSIButton9, [data-testid='LoginForm_Forward_Button']"
	);
	for (const btn of known) {
		if (btn.offsetParent !== null) { btn.click(); return true; }
	}
	const labels = ['next', 'continue', 'weiter', 'continuer', 'siguiente', 'continuar', 'avanti'];
	const buttons = document.querySelectorAll("button, input[type='submit'], div[role='button']");
	for (const btn of buttons) {
		const text = (btn.textContent || btn.value || '').toLowerCase().trim();
		if (btn.offsetParent !== null && labels.some(l => text.includes(l))) {
			btn.click();
			return true;
		}
	}
	const email = document.querySelector(emailSel) || document.querySelector("input[type='email']");
	if (email) {
		email.dispatchEvent(new KeyboardEvent('keydown', { key: 'Enter', keyCode: 13, bubbles: true }));
		email.dispatchEvent(new KeyboardEvent('keyup', { key: 'Enter', keyCode: 13, bubbles: true }));
		return true;
	}
	return false;
}`

// jsClickSelector clicks the first visible element matching sel.
const jsClickSelector = `(sel) => {
	try {
		const els = document.querySelectorAll(sel);
		for (const el of els) {
			if (el.offsetParent !== null) { el.click(); return true; }
		}
	} catch (e) {}
	return false;
}`

// jsSubmitHeuristic clicks a visible button whose label looks like a
// login submit.
const jsSubmitHeuristic = `() => {
	const labels = ['sign in', 'log in', 'login', 'submit', 'anmelden', 'connexion', 'iniciar'];
	const buttons = document.querySelectorAll('button');
	for (const btn of buttons) {
		const text = (btn.textContent || '').toLowerCase().trim();
		if (btn.offsetParent !== null && labels.some(l => text.includes(l))) {
			btn.click();
			return true;
		}
	}
	return false;
}`

// jsSubmitFallback dispatches Enter on the password field, falling back
// to native form submission.
const jsSubmitFallback = `(passSel) => {
	const pass = document.querySelector(passSel) || document.querySelector("input[type='password']");
	if (pass) {
		pass.dispatchEvent(new KeyboardEvent('keydown', { key: 'Enter', keyCode: 13, bubbles: true }));
		pass.dispatchEvent(new KeyboardEvent('keyup', { key: 'Enter', keyCode: 13, bubbles: true }));
		return true;
	}
	const form = document.querySelector('form');
	if (form) {
		if (form.requestSubmit) { form.requestSubmit(); } else { form.submit(); }
		return true;
	}
	return false;
}`

// jsCaptchaPresent detects captcha challenges by text markers and known
// captcha DOM shapes.
const jsCaptchaPresent = `() => {
	const text = (document.body.innerText || '').toLowerCase();
	const markers = ['captcha', "verify you're human", 'verify you are human', 'unusual traffic', 'are not a robot'];
	if (markers.some(m => text.includes(m))) return true;
	return !!document.querySelector(
		"iframe[src*='recaptcha'], iframe[src*='hcaptcha'], .g-recaptcha, .h-captcha, [data-sitekey], #captcha"
	);
}`

// jsTwoFactorPresent detects second-factor prompts by text markers and
// the one-time-code input pattern.
const jsTwoFactorPresent = `() => {
	const text = (document.body.innerText || '').toLowerCase();
	const markers = ['verification code', 'two-factor', '2-step verification', 'authentication code', 'enter the code', 'security code'];
	if (markers.some(m => text.includes(m))) return true;
	return !!document.querySelector(
		"input[autocomplete='one-time-code'], input[name*='otp' i], input[maxlength='6'][inputmode='numeric'], input[maxlength='6'][type='tel']"
	);
}`

// jsCredentialError detects rejected-credential feedback by text markers
// and visible alert elements.
const jsCredentialError = `() => {
	const text = (document.body.innerText || '').toLowerCase();
	const markers = ['incorrect password', 'incorrect username', 'invalid password', 'invalid credentials', 'invalid login', 'wrong password', "couldn't find your account", 'password was incorrect'];
	if (markers.some(m => text.includes(m))) return true;
	const alerts = document.querySelectorAll("[role='alert'], .alert-error, .error-message, .form-error, .login-error");
	return Array.from(alerts).some(el => el.offsetParent !== null && el.textContent.trim().length > 0);
}`

// jsLoginFieldsGone reports that no login-type input is visible anymore.
const jsLoginFieldsGone = `() => {
	const fields = document.querySelectorAll(
		"input[type='password'], input[type='email'], input[name='username'], input[name='email']"
	);
	return !Array.from(fields).some(el => el.offsetParent !== null);
}`

// jsIdentityVisible reports a visible user-identity element (avatar,
// profile menu, account switcher).
const jsIdentityVisible = `() => {
	const els = document.querySelectorAll(
		"[aria-label*='profile' i], [aria-label*='account' i], [aria-label*='user menu' i], " +
		"[data-testid*='user' i], [data-testid*='profile' i], " +
		".avatar, .user-avatar, img[alt*='avatar' i], img[alt*='profile' i]"
	);
	return Array.from(els).some(el => el.offsetParent !== null);
}`

// jsLoggedInSignals reports logged-in text markers without any
// logged-out markers alongside them.
const jsLoggedInSignals = `() => {
	const text = (document.body.innerText || '').toLowerCase();
	const loggedIn = ['sign out', 'signout', 'log out', 'logout', 'my account', 'dashboard', 'notifications'];
	const loggedOut = ['sign in', 'signin', 'log in', 'login', 'create account', 'register', 'sign up'];
	const hasIn = loggedIn.some(m => text.includes(m));
	const hasOut = loggedOut.some(m => text.includes(m));
	return hasIn && !hasOut;
}`
