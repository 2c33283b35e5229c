package draftex

import "github.com/microcosm-cc/bluemonday"

// previewPolicy allows exactly the structural markup the rewrite cascade
// produces. Anything the substitution let through from raw source (stray
// angle brackets, script tags typed into the document) is stripped before
// the fragment reaches a browser.
var previewPolicy = buildPreviewPolicy()

func buildPreviewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "div", "span", "br", "hr",
		"strong", "em", "u", "sup", "sub", "code", "pre",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowAttrs("class").OnElements(
		"h1", "h2", "h3", "p", "div", "span", "code", "pre", "ol", "hr",
	)
	// Chroma emits inline colors on highlighted code.
	p.AllowStyles("color", "background-color", "font-weight", "font-style",
		"text-decoration").OnElements("span", "pre", "code")
	return p
}

// SanitizePreview reduces a preview fragment to the allowed structural
// markup. Used by anything serving the fragment to a browser.
func SanitizePreview(fragment string) string {
	return previewPolicy.Sanitize(fragment)
}
