package draftex

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for the rewrite cascade.
var (
	// Table of contents marker.
	tocCommand = regexp.MustCompile(`\\tableofcontents`)

	// No-visual-effect directives deleted during cleanup.
	documentClass  = regexp.MustCompile(`\\documentclass(?:\[[^\]]*\])?\{[^}]*\}`)
	usePackage     = regexp.MustCompile(`\\usepackage(?:\[[^\]]*\])?\{[^}]*\}`)
	spacingCommand = regexp.MustCompile(`\\[vh]space\*?\{[^}]*\}`)
	setLength      = regexp.MustCompile(`\\setlength\{[^}]*\}\{[^}]*\}`)
	pageStyle      = regexp.MustCompile(`\\(?:this)?pagestyle\{[^}]*\}`)
	labelCommand   = regexp.MustCompile(`\\label\{[^}]*\}`)
	bibStyle       = regexp.MustCompile(`\\bibliographystyle\{[^}]*\}`)
	bareDirective  = regexp.MustCompile(`\\(?:noindent|centering|raggedright|frontmatter|mainmatter)\b`)

	// Cross-references and citations become bracketed placeholders.
	refCommand  = regexp.MustCompile(`\\(?:ref|eqref|autoref|pageref)\{([^}]*)\}`)
	citeCommand = regexp.MustCompile(`\\cite(?:\[[^\]]*\])?\{([^}]*)\}`)

	// Explicit page breaks.
	pageBreak = regexp.MustCompile(`\\(?:newpage|clearpage|pagebreak)\b`)

	// Line comments: % to end of line, unless the % is escaped.
	lineComment = regexp.MustCompile(`(?m)(^|[^\\])%.*$`)

	// Explicit line breaks, optional starred form and spacing argument.
	lineBreakCommand = regexp.MustCompile(`\\\\\*?(?:\[[^\]]*\])?`)

	// Segments already carrying a block-level tag are not paragraph-wrapped.
	blockTagPrefix = regexp.MustCompile(`^<(?:h[1-6]|p|div|ul|ol|table|hr|pre|blockquote)\b`)

	// Blank-line paragraph boundaries.
	blankLineSplit = regexp.MustCompile(`\n[ \t]*\n`)

	// Common escaped characters restored after comment stripping. Escaped
	// dollars are handled earlier, in the math stage.
	escapedChars = strings.NewReplacer(`\%`, "%", `\&`, "&amp;", `\_`, "_", `\#`, "#")
)

// RenderPreview transforms full source text into a structural HTML fragment
// through a fixed, order-dependent cascade of rewrite stages. Each stage is
// a no-op when it finds nothing; no stage ever errors, so syntactically
// incomplete input degrades gracefully instead of failing.
//
// The function is pure: identical input yields byte-identical output, with
// no state carried across calls. Commands outside the fixed set pass
// through verbatim; a documented limitation, not a defect.
//
// Order matters: the body strip must run before anything scans for
// environments, code blocks must be frozen before inline substitution can
// mangle their contents, tables must consume row separators before the
// line-break stage rewrites them, comments must be stripped before
// paragraph wrapping so a rest-of-line comment cannot swallow a closing
// tag, and paragraph segmentation must come after every block producer.
func RenderPreview(src string) string {
	body := extractBody(src)
	body = freezeCodeBlocks(body)
	body = resolveTitleBlock(body, src)
	body = rewriteNamedEnvironments(body)
	body = rewriteTOC(body)
	body = rewriteSections(body)
	body = rewriteInlineStyles(body)
	body = rewriteMath(body)
	body = rewriteTables(body)
	body = rewriteBibliography(body)
	body = rewriteLists(body)
	body = cleanupDirectives(body)
	body = stripCommentsAndBreaks(body)
	body = wrapParagraphs(body)
	return strings.TrimSpace(body)
}

// extractBody strips everything outside the \begin{document}..\end{document}
// pair. When the pair is absent the whole text is treated as body.
func extractBody(src string) string {
	const beginMark = `\begin{document}`
	const endMark = `\end{document}`

	start := strings.Index(src, beginMark)
	if start == -1 {
		return src
	}
	body := src[start+len(beginMark):]

	if end := strings.Index(body, endMark); end != -1 {
		body = body[:end]
	}
	return body
}

// rewriteTOC replaces the table-of-contents marker with a static
// placeholder. The placeholder deliberately does not reflect the extracted
// outline; the final document generates its own contents.
func rewriteTOC(body string) string {
	const placeholder = `<div class="toc"><h3>Contents</h3><p class="toc-placeholder">Table of contents is generated in the final document.</p></div>`
	return tocCommand.ReplaceAllString(body, placeholder)
}

// rewriteSections maps sectioning commands 1:1 onto heading tags. The tag
// number equals the outline level, with chapter (level 0) clamped to h1.
func rewriteSections(body string) string {
	return sectioningPattern.ReplaceAllStringFunc(body, func(match string) string {
		m := sectioningPattern.FindStringSubmatch(match)
		level := sectioningLevels[m[1]]
		if level < 1 {
			level = 1
		}
		tag := "h" + string(rune('0'+level))
		return "<" + tag + ">" + strings.TrimSpace(m[2]) + "</" + tag + ">"
	})
}

// cleanupDirectives deletes known no-visual-effect directives, replaces
// cross-reference and citation markers with bracketed highlighted
// placeholders, and turns explicit page breaks into horizontal rules.
func cleanupDirectives(body string) string {
	body = documentClass.ReplaceAllString(body, "")
	body = usePackage.ReplaceAllString(body, "")
	body = spacingCommand.ReplaceAllString(body, "")
	body = setLength.ReplaceAllString(body, "")
	body = pageStyle.ReplaceAllString(body, "")
	body = labelCommand.ReplaceAllString(body, "")
	body = bibStyle.ReplaceAllString(body, "")
	body = bareDirective.ReplaceAllString(body, "")

	body = refCommand.ReplaceAllString(body, `<span class="ref">[$1]</span>`)
	body = citeCommand.ReplaceAllString(body, `<span class="cite">[$1]</span>`)

	body = pageBreak.ReplaceAllString(body, `<hr class="page-break">`)
	return body
}

// wrapParagraphs segments remaining text on blank-line boundaries and
// paragraph-wraps any segment not already carrying a block-level tag.
func wrapParagraphs(body string) string {
	segments := blankLineSplit.Split(body, -1)
	out := make([]string, 0, len(segments))

	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if blockTagPrefix.MatchString(seg) {
			out = append(out, seg)
			continue
		}
		out = append(out, "<p>"+seg+"</p>")
	}

	return strings.Join(out, "\n")
}

// stripCommentsAndBreaks removes rest-of-line comments, restores escaped
// characters, and converts explicit line breaks into break tags.
func stripCommentsAndBreaks(body string) string {
	body = lineComment.ReplaceAllString(body, "$1")
	body = lineBreakCommand.ReplaceAllString(body, "<br>")
	body = escapedChars.Replace(body)
	return body
}
