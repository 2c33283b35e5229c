package draftex

import (
	"regexp"
	"strings"
)

// Table environments.
var (
	tableEnv   = regexp.MustCompile(`(?s)\\begin\{table\}(?:\[[^\]]*\])?(.*?)\\end\{table\}`)
	tabularEnv = regexp.MustCompile(`(?s)\\begin\{tabular\}(?:\[[^\]]*\])?\{[^}]*\}(.*?)\\end\{tabular\}`)

	captionCommand = regexp.MustCompile(`\\caption\{([^}]*)\}`)

	// Rule lines carry no content; they are dropped before row splitting.
	tableRules = regexp.MustCompile(`\\(?:hline|toprule|midrule|bottomrule)\b`)

	// Row separator inside tabular bodies.
	rowSeparator = regexp.MustCompile(`\\\\(?:\[[^\]]*\])?`)
)

// rewriteTables converts both the captioned table environment and bare
// tabular grids into table markup. Rows split on the row separator, cells
// on the column separator. The first row is always emitted as a header
// row regardless of any rule-line markers; a fixed heuristic, not derived
// from content.
func rewriteTables(body string) string {
	body = tableEnv.ReplaceAllStringFunc(body, func(match string) string {
		inner := tableEnv.FindStringSubmatch(match)[1]

		caption := ""
		if m := captionCommand.FindStringSubmatch(inner); m != nil {
			caption = strings.TrimSpace(m[1])
		}
		inner = captionCommand.ReplaceAllString(inner, "")
		inner = labelCommand.ReplaceAllString(inner, "")
		inner = bareDirective.ReplaceAllString(inner, "")

		out := tabularEnv.ReplaceAllStringFunc(inner, func(tab string) string {
			return gridTable(tabularEnv.FindStringSubmatch(tab)[1])
		})
		out = strings.TrimSpace(out)

		if caption != "" {
			out += "\n<p class=\"table-caption\">" + caption + "</p>"
		}
		return out
	})

	// Bare grids outside a table environment.
	body = tabularEnv.ReplaceAllStringFunc(body, func(match string) string {
		return gridTable(tabularEnv.FindStringSubmatch(match)[1])
	})

	return body
}

// gridTable renders one tabular body as a table with a header row.
func gridTable(inner string) string {
	inner = tableRules.ReplaceAllString(inner, "")

	var rows [][]string
	for _, raw := range rowSeparator.Split(inner, -1) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		cells := strings.Split(raw, "&")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<table>\n<thead>\n<tr>")
	for _, cell := range rows[0] {
		b.WriteString("<th>" + cell + "</th>")
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range rows[1:] {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + cell + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")
	return b.String()
}
