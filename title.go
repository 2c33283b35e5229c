package draftex

import (
	"regexp"
	"strings"
)

// Title block patterns.
var (
	makeTitleCommand = regexp.MustCompile(`\\maketitle`)
	titleCommand     = regexp.MustCompile(`\\title\{([^}]*)\}`)
	authorCommand    = regexp.MustCompile(`\\author\{([^}]*)\}`)
	dateCommand      = regexp.MustCompile(`\\date\{[^}]*\}`)
	authorSeparator  = regexp.MustCompile(`\s*\\and\b\s*`)

	titlePageEnv = regexp.MustCompile(`(?s)\\begin\{titlepage\}(.*?)\\end\{titlepage\}`)

	// Title-page font-size groups map onto three decreasing heading sizes.
	hugeGroup  = regexp.MustCompile(`\{\\(?:Huge|huge)\s+([^{}]*)\}`)
	largeGroup = regexp.MustCompile(`\{\\(?:LARGE|Large)\s+([^{}]*)\}`)
	smallGroup = regexp.MustCompile(`\{\\large\s+([^{}]*)\}`)

	// Layout directives removed inside a title page.
	titlePageLayout = regexp.MustCompile(`\\(?:centering|vfill|vspace\*?\{[^}]*\})`)
)

// resolveTitleBlock rewrites the document's title/author front matter.
//
// When a \maketitle marker is present, title and author are located by a
// global scan of the full source text, not just the extracted body: the
// declarations almost always live in the preamble, which the body strip
// has already removed. The pair composes into a heading plus author line
// at the marker's position. A titlepage environment is rewritten through
// its own fixed sub-rules.
func resolveTitleBlock(body, full string) string {
	body = rewriteTitlePage(body)

	if !makeTitleCommand.MatchString(body) {
		// Orphan declarations without \maketitle render nothing; drop them
		// so they do not leak into paragraphs.
		body = titleCommand.ReplaceAllString(body, "")
		body = authorCommand.ReplaceAllString(body, "")
		body = dateCommand.ReplaceAllString(body, "")
		return body
	}

	var title, author string
	if m := titleCommand.FindStringSubmatch(full); m != nil {
		title = strings.TrimSpace(m[1])
	}
	if m := authorCommand.FindStringSubmatch(full); m != nil {
		author = strings.TrimSpace(authorSeparator.ReplaceAllString(m[1], ", "))
	}

	body = titleCommand.ReplaceAllString(body, "")
	body = authorCommand.ReplaceAllString(body, "")
	body = dateCommand.ReplaceAllString(body, "")

	var block strings.Builder
	if title != "" {
		block.WriteString(`<h1 class="doc-title">` + title + "</h1>")
	}
	if author != "" {
		if block.Len() > 0 {
			block.WriteString("\n")
		}
		block.WriteString(`<p class="doc-author">` + author + "</p>")
	}

	return makeTitleCommand.ReplaceAllString(body, block.String())
}

// rewriteTitlePage applies the fixed sub-rules for a dedicated titlepage
// environment: layout directives are removed, the three font-size groups
// map to decreasing headings, and explicit line breaks become break tags.
func rewriteTitlePage(body string) string {
	return titlePageEnv.ReplaceAllStringFunc(body, func(match string) string {
		inner := titlePageEnv.FindStringSubmatch(match)[1]

		inner = titlePageLayout.ReplaceAllString(inner, "")
		inner = hugeGroup.ReplaceAllString(inner, "<h1>$1</h1>")
		inner = largeGroup.ReplaceAllString(inner, "<h2>$1</h2>")
		inner = smallGroup.ReplaceAllString(inner, "<h3>$1</h3>")
		inner = lineBreakCommand.ReplaceAllString(inner, "<br>")

		return `<div class="title-page">` + strings.TrimSpace(inner) + `</div>`
	})
}
