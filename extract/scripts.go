package extract

// Page-side scripts for the extraction pipeline. Like the login probes,
// these are named opaque artifacts evaluated through the driver; the
// pipeline only consumes their results.

// jsBodyReady reports that the document has a body to extract from.
const jsBodyReady = `() => !!document.body`

// jsScrollToBottom scrolls to the bottom and returns the document
// height, so the caller can detect when lazy-loaded content stops
// growing the page.
const jsScrollToBottom = `() => {
	window.scrollTo(0, document.body.scrollHeight);
	return document.body.scrollHeight;
}`

// jsScrollToTop restores the viewport before extraction.
const jsScrollToTop = `() => { window.scrollTo(0, 0); }`

// jsBodyText returns the page's visible text with non-content elements
// stripped and whitespace collapsed, capped at limit characters.
const jsBodyText = `(limit) => {
	const clone = document.body.cloneNode(true);
	clone.querySelectorAll('script, style, noscript, nav, header, footer, svg, button, input, select, textarea').forEach(el => el.remove());
	const text = clone.innerText || clone.textContent || '';
	return text.replace(/\s\s+/g, ' ').trim().substring(0, limit);
}`
