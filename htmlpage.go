package draftex

import (
	"fmt"
	"strings"
)

// previewPageTemplate wraps the preview fragment in a complete HTML5
// document; the paper stylesheet is injected as a style block.
const previewPageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>%s</style>
</head>
<body>
<div class="paper">
%s
</div>
</body>
</html>`

// paperCSS approximates the typeset look of the final document: serif
// body, centered column, single-line full-width table borders.
const paperCSS = `
body { font-family: Georgia, "Times New Roman", serif; line-height: 1.5; color: #1a1a1a; margin: 0; }
.paper { margin: 0 auto; padding: 2rem; background: #fff; }
h1, h2, h3, h4 { font-weight: bold; line-height: 1.25; }
h1 { font-size: 1.6rem; }
h2 { font-size: 1.3rem; }
h3 { font-size: 1.1rem; }
h1.doc-title { text-align: center; margin-bottom: 0.25rem; }
p.doc-author { text-align: center; font-style: italic; margin-top: 0; }
.title-page { text-align: center; padding: 3rem 0; }
.abstract { margin: 1.5rem 2rem; font-size: 0.95rem; }
.keywords { margin: 0 2rem 1.5rem; font-size: 0.95rem; }
.toc { border: 1px solid #ddd; padding: 0.5rem 1rem; margin: 1rem 0; }
.toc-placeholder { color: #888; font-style: italic; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #444; padding: 0.3rem 0.6rem; text-align: left; }
th { background: #f2f2f2; }
p.table-caption { font-size: 0.9rem; text-align: center; color: #444; }
.math-inline { font-family: "Courier New", monospace; background: #f6f6f6; padding: 0 0.2rem; }
.math-block { font-family: "Courier New", monospace; background: #f6f6f6; padding: 0.5rem 1rem; margin: 1rem 0; overflow-x: auto; }
.code-block { background: #f6f6f6; padding: 0.5rem 1rem; overflow-x: auto; }
.ref, .cite { background: #fff3bf; padding: 0 0.15rem; }
ol.references { font-size: 0.95rem; }
hr.page-break { border: 0; border-top: 1px dashed #aaa; margin: 2rem 0; }
`

// RenderPreviewPage runs the preview cascade over source and wraps the
// sanitized fragment in a standalone HTML page. Pass nil page settings for
// the default geometry.
func RenderPreviewPage(source string, page *PageSettings) string {
	if page == nil {
		page = DefaultPageSettings()
	}
	fragment := RenderPreview(source)
	title := ""
	if doc, err := BuildExportDocument(fragment); err == nil {
		title = doc.Title
	}
	return buildPreviewPage(title, SanitizePreview(fragment), page)
}

// buildPreviewPage assembles the printable page for the PDF artifact from
// the latest preview fragment. Page settings size the print column.
func buildPreviewPage(title, fragment string, page *PageSettings) string {
	if title == "" {
		title = "Draft"
	}
	css := paperCSS + buildPageCSS(page)
	return fmt.Sprintf(previewPageTemplate, escapeText(title), sanitizeCSS(css), fragment)
}

// buildPageCSS emits print geometry for the configured page settings.
func buildPageCSS(page *PageSettings) string {
	w, _ := page.dimensions()
	margin := page.margin()
	content := w - 2*margin

	return fmt.Sprintf(`
@page { margin: %.2fin; }
.paper { max-width: %.2fin; }
`, margin, content)
}

// sanitizeCSS escapes sequences that could close the style block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// escapeText escapes text for safe placement in markup.
func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
