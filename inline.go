package draftex

import "regexp"

// inlineRule is one independent global substitution mapping a style command
// onto an inline tag.
type inlineRule struct {
	pattern *regexp.Regexp
	replace string
}

// oneLevelArg matches a braced argument containing at most one further
// level of braces. Substitution is therefore correct for exactly one level
// of nesting; deeper nesting passes through partially rewritten, a known
// limitation of substitution over a real parse.
const oneLevelArg = `((?:[^{}]|\{[^{}]*\})*)`

// inlineRules are applied in fixed order, each as a single global pass.
var inlineRules = []inlineRule{
	{regexp.MustCompile(`\\textbf\{` + oneLevelArg + `\}`), "<strong>$1</strong>"},
	{regexp.MustCompile(`\\textit\{` + oneLevelArg + `\}`), "<em>$1</em>"},
	{regexp.MustCompile(`\\emph\{` + oneLevelArg + `\}`), "<em>$1</em>"},
	{regexp.MustCompile(`\\underline\{` + oneLevelArg + `\}`), "<u>$1</u>"},
	{regexp.MustCompile(`\\textsuperscript\{` + oneLevelArg + `\}`), "<sup>$1</sup>"},
	{regexp.MustCompile(`\\textsubscript\{` + oneLevelArg + `\}`), "<sub>$1</sub>"},
	{regexp.MustCompile(`\\texttt\{` + oneLevelArg + `\}`), "<code>$1</code>"},
}

// rewriteInlineStyles maps inline style commands to inline tags.
func rewriteInlineStyles(body string) string {
	for _, r := range inlineRules {
		body = r.pattern.ReplaceAllString(body, r.replace)
	}
	return body
}
