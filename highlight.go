package draftex

import (
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Code block environments.
var (
	verbatimEnv   = regexp.MustCompile(`(?s)\\begin\{verbatim\}(.*?)\\end\{verbatim\}`)
	lstlistingEnv = regexp.MustCompile(`(?s)\\begin\{lstlisting\}(?:\[([^\]]*)\])?(.*?)\\end\{lstlisting\}`)
	lstLanguage   = regexp.MustCompile(`language=([A-Za-z0-9+#-]+)`)
)

// rawEscaper freezes text against every later rewrite stage. Besides the
// usual HTML escapes, backslash, percent and dollar become numeric entities
// so the command, comment and math stages cannot touch frozen content.
var rawEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`\`, "&#92;",
	"%", "&#37;",
	"$", "&#36;",
)

// highlightStyle is fixed so output stays deterministic across machines.
const highlightStyle = "github"

// freezeRaw escapes content that must survive the rest of the cascade
// untouched (code, math).
func freezeRaw(s string) string {
	return rawEscaper.Replace(s)
}

// freezeCodeBlocks converts verbatim and lstlisting environments into code
// blocks before any other stage can rewrite their contents. A lstlisting
// language option selects chroma syntax highlighting; anything else, or a
// highlighting failure, degrades to a plain escaped block.
func freezeCodeBlocks(body string) string {
	body = lstlistingEnv.ReplaceAllStringFunc(body, func(match string) string {
		m := lstlistingEnv.FindStringSubmatch(match)
		lang := ""
		if lm := lstLanguage.FindStringSubmatch(m[1]); lm != nil {
			lang = lm[1]
		}
		return codeBlock(strings.Trim(m[2], "\n"), lang)
	})

	body = verbatimEnv.ReplaceAllStringFunc(body, func(match string) string {
		inner := verbatimEnv.FindStringSubmatch(match)[1]
		return codeBlock(strings.Trim(inner, "\n"), "")
	})

	return body
}

// codeBlock renders source code as a pre block, highlighted when a lexer
// for lang exists.
func codeBlock(code, lang string) string {
	if lang != "" {
		if highlighted, ok := highlight(code, lang); ok {
			return highlighted
		}
	}
	return `<pre class="code-block"><code>` + freezeRaw(code) + `</code></pre>`
}

// highlight runs chroma over the code with inline styles, then freezes the
// output against later stages.
func highlight(code, lang string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(false))
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", false
	}

	// Chroma escapes HTML but leaves backslash, percent and dollar alone;
	// those still need freezing.
	out := buf.String()
	out = strings.ReplaceAll(out, `\`, "&#92;")
	out = strings.ReplaceAll(out, "%", "&#37;")
	out = strings.ReplaceAll(out, "$", "&#36;")
	return out, true
}
