package draftex

import (
	"regexp"
	"strings"
)

// envPattern compiles a pattern matching one named environment and
// capturing its content. Non-greedy, so nested same-name environments are
// cut at the first \end, which is acceptable for the lossy preview.
func envPattern(name string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(name)
	return regexp.MustCompile(`(?s)\\begin\{` + quoted + `\}(?:\[[^\]]*\])?(.*?)\\end\{` + quoted + `\}`)
}

// Fixed-name environments.
var (
	abstractEnv     = envPattern("abstract")
	keywordsEnv     = envPattern("keywords")
	keywordsCommand = regexp.MustCompile(`\\keywords\{([^}]*)\}`)

	bibliographyEnv = regexp.MustCompile(`(?s)\\begin\{thebibliography\}(?:\{[^}]*\})?(.*?)\\end\{thebibliography\}`)
	bibItemMarker   = regexp.MustCompile(`\\bibitem(?:\[[^\]]*\])?\{[^}]*\}`)

	itemizeEnv   = envPattern("itemize")
	enumerateEnv = envPattern("enumerate")
	itemMarker   = regexp.MustCompile(`^\\item\b\s*`)

	displayMathDelims = regexp.MustCompile(`(?s)\\\[(.*?)\\\]`)
	inlineMath        = regexp.MustCompile(`\$([^$\n]+)\$`)
)

// mathEnvs are the block math environments, starred forms included.
var mathEnvs = []*regexp.Regexp{
	envPattern("equation"),
	envPattern("equation*"),
	envPattern("align"),
	envPattern("align*"),
	envPattern("gather"),
	envPattern("gather*"),
	envPattern("displaymath"),
}

// rewriteNamedEnvironments turns the fixed-name environments (abstract,
// keyword list) into labeled blocks.
func rewriteNamedEnvironments(body string) string {
	body = abstractEnv.ReplaceAllStringFunc(body, func(match string) string {
		inner := strings.TrimSpace(abstractEnv.FindStringSubmatch(match)[1])
		return "<div class=\"abstract\"><h3>Abstract</h3>\n<p>" + inner + "</p></div>"
	})

	body = keywordsEnv.ReplaceAllStringFunc(body, func(match string) string {
		inner := strings.TrimSpace(keywordsEnv.FindStringSubmatch(match)[1])
		return keywordsBlock(inner)
	})
	body = keywordsCommand.ReplaceAllStringFunc(body, func(match string) string {
		inner := strings.TrimSpace(keywordsCommand.FindStringSubmatch(match)[1])
		return keywordsBlock(inner)
	})

	return body
}

func keywordsBlock(inner string) string {
	return `<div class="keywords"><strong>Keywords:</strong> ` + inner + `</div>`
}

// rewriteMath wraps inline math verbatim in a monospace span and turns
// block math environments into a dedicated block. Neither is rendered as
// math; the TeX stays visible as typed.
func rewriteMath(body string) string {
	for _, env := range mathEnvs {
		body = env.ReplaceAllStringFunc(body, func(match string) string {
			inner := strings.TrimSpace(env.FindStringSubmatch(match)[1])
			return `<div class="math-block"><code>` + freezeRaw(inner) + `</code></div>`
		})
	}

	body = displayMathDelims.ReplaceAllStringFunc(body, func(match string) string {
		inner := strings.TrimSpace(displayMathDelims.FindStringSubmatch(match)[1])
		return `<div class="math-block"><code>` + freezeRaw(inner) + `</code></div>`
	})

	// An escaped dollar is a literal character, not a delimiter. Freeze it
	// as an entity so two \$ escapes cannot pair up as inline math.
	body = strings.ReplaceAll(body, `\$`, "&#36;")

	body = inlineMath.ReplaceAllStringFunc(body, func(match string) string {
		inner := inlineMath.FindStringSubmatch(match)[1]
		return `<code class="math-inline">` + freezeRaw(inner) + `</code>`
	})

	return body
}

// rewriteBibliography splits a references environment on its item marker
// into an ordered reference list.
func rewriteBibliography(body string) string {
	return bibliographyEnv.ReplaceAllStringFunc(body, func(match string) string {
		inner := bibliographyEnv.FindStringSubmatch(match)[1]

		var items []string
		for _, chunk := range bibItemMarker.Split(inner, -1) {
			chunk = strings.TrimSpace(chunk)
			if chunk == "" {
				continue
			}
			items = append(items, "<li>"+chunk+"</li>")
		}
		if len(items) == 0 {
			return ""
		}

		return "<h3>References</h3>\n<ol class=\"references\">\n" + strings.Join(items, "\n") + "\n</ol>"
	})
}

// rewriteLists maps itemize/enumerate environments to list tags. Each
// \item marker opens one entry holding the rest of that physical line;
// continuation lines are not merged into the entry (known limitation).
func rewriteLists(body string) string {
	body = itemizeEnv.ReplaceAllStringFunc(body, func(match string) string {
		return listBlock(itemizeEnv.FindStringSubmatch(match)[1], "ul")
	})
	body = enumerateEnv.ReplaceAllStringFunc(body, func(match string) string {
		return listBlock(enumerateEnv.FindStringSubmatch(match)[1], "ol")
	})
	return body
}

func listBlock(inner, tag string) string {
	var out []string
	out = append(out, "<"+tag+">")

	for _, line := range strings.Split(inner, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if itemMarker.MatchString(trimmed) {
			out = append(out, "<li>"+itemMarker.ReplaceAllString(trimmed, "")+"</li>")
			continue
		}
		// Not an item line: keep it, but outside any entry.
		out = append(out, trimmed)
	}

	out = append(out, "</"+tag+">")
	return strings.Join(out, "\n")
}
