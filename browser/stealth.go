package browser

import (
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/keyhole/config"
)

// extraEvasionJS covers probes the stealth bundle leaves open: WebGL
// renderer strings, the plugin list shape, and permission queries that
// reveal a headless profile. Installed on every new document.
const extraEvasionJS = `(() => {
	Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
	Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
	Object.defineProperty(navigator, 'plugins', {
		get: () => [
			{ name: 'Chrome PDF Plugin', filename: 'internal-pdf-viewer', description: 'Portable Document Format', length: 1 },
			{ name: 'Chrome PDF Viewer', filename: 'mhjfbmdgcfjbbpaeojofohoefgiehjai', description: 'Portable Document Format', length: 1 },
		]
	});
	const originalQuery = window.navigator.permissions.query;
	window.navigator.permissions.query = (parameters) => (
		parameters.name === 'notifications' ?
			Promise.resolve({ state: Notification.permission }) :
			originalQuery(parameters)
	);
	window.chrome = window.chrome || { runtime: {} };
	try {
		const getParameter = WebGLRenderingContext.prototype.getParameter;
		WebGLRenderingContext.prototype.getParameter = function(parameter) {
			if (parameter === 37445) return 'Intel Open Source Technology Center';
			if (parameter === 37446) return 'Mesa DRI Intel(R) HD Graphics 4000 (IVB GT2)';
			return getParameter.call(this, parameter);
		};
	} catch (e) {}
})();`

// ApplyEvasions configures the page's fingerprint before any interaction:
// realistic user agent, desktop viewport, timezone, and the stealth JS
// bundle plus local property overrides on every new document.
//
// Idempotent and best-effort: a page that cannot be fully disguised still
// proceeds with whatever overrides did apply. Failures are logged, never
// returned.
func ApplyEvasions(page *rod.Page, cfg config.BrowserConfig) {
	if err := (proto.EmulationSetUserAgentOverride{
		UserAgent:      cfg.UserAgent,
		AcceptLanguage: "en-US,en;q=0.9",
		Platform:       "Win32",
	}).Call(page); err != nil {
		slog.Warn("stealth: user agent override failed", "error", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}).Call(page); err != nil {
		slog.Warn("stealth: viewport override failed", "error", err)
	}

	if err := (proto.EmulationSetTimezoneOverride{
		TimezoneID: cfg.Timezone,
	}).Call(page); err != nil {
		slog.Warn("stealth: timezone override failed", "error", err)
	}

	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		slog.Warn("stealth: injection failed, proceeding without stealth bundle", "error", err)
	}
	if _, err := page.EvalOnNewDocument(extraEvasionJS); err != nil {
		slog.Warn("stealth: extra evasions failed", "error", err)
	}
}
