package draftex

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// mdParser parses CommonMark plus GFM tables and strikethrough. Parsing
// only; rendering is our own LaTeX emission.
var mdParser = goldmark.New(goldmark.WithExtensions(extension.GFM))

// latexEscaper protects characters the renderer treats as syntax.
var latexEscaper = strings.NewReplacer(
	"%", `\%`,
	"&", `\&`,
	"#", `\#`,
	"_", `\_`,
	"$", `\$`,
)

// Markdown heading levels map onto the sectioning set; anything deeper
// than three clamps to subsubsection.
var mdHeadingCommands = map[int]string{
	1: `\section`,
	2: `\subsection`,
	3: `\subsubsection`,
}

// ImportMarkdown converts a Markdown draft into the LaTeX subset the
// renderer understands, so a new file can be seeded from pasted notes.
// The conversion is structural: headings, emphasis, lists, code fences,
// tables. Anything else degrades to plain text; nothing is dropped.
func ImportMarkdown(md string) (string, error) {
	source := []byte(md)
	root := mdParser.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	if err := emitBlocks(&b, root, source); err != nil {
		return "", fmt.Errorf("importing markdown: %w", err)
	}

	return strings.TrimSpace(b.String()) + "\n", nil
}

// emitBlocks walks block-level children and writes LaTeX.
func emitBlocks(b *strings.Builder, parent ast.Node, source []byte) error {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch t := n.(type) {
		case *ast.Heading:
			cmd, ok := mdHeadingCommands[t.Level]
			if !ok {
				cmd = mdHeadingCommands[3]
			}
			b.WriteString(cmd + "{" + inlineText(t, source) + "}\n\n")

		case *ast.Paragraph:
			b.WriteString(inlineText(t, source) + "\n\n")

		case *ast.TextBlock:
			b.WriteString(inlineText(t, source) + "\n\n")

		case *ast.FencedCodeBlock:
			lang := string(t.Language(source))
			if lang != "" {
				b.WriteString("\\begin{lstlisting}[language=" + lang + "]\n")
				writeCodeLines(b, t, source)
				b.WriteString("\\end{lstlisting}\n\n")
			} else {
				b.WriteString("\\begin{verbatim}\n")
				writeCodeLines(b, t, source)
				b.WriteString("\\end{verbatim}\n\n")
			}

		case *ast.CodeBlock:
			b.WriteString("\\begin{verbatim}\n")
			writeCodeLines(b, t, source)
			b.WriteString("\\end{verbatim}\n\n")

		case *ast.List:
			env := "itemize"
			if t.IsOrdered() {
				env = "enumerate"
			}
			b.WriteString("\\begin{" + env + "}\n")
			for item := t.FirstChild(); item != nil; item = item.NextSibling() {
				b.WriteString("\\item " + itemText(item, source) + "\n")
			}
			b.WriteString("\\end{" + env + "}\n\n")

		case *ast.Blockquote:
			// No quotation environment in the subset; keep the text.
			if err := emitBlocks(b, t, source); err != nil {
				return err
			}

		case *ast.ThematicBreak:
			b.WriteString("\\newpage\n\n")

		case *east.Table:
			emitTable(b, t, source)

		default:
			if txt := inlineText(n, source); txt != "" {
				b.WriteString(txt + "\n\n")
			}
		}
	}
	return nil
}

// writeCodeLines copies fenced content verbatim.
func writeCodeLines(b *strings.Builder, n ast.Node, source []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
}

// itemText flattens one list item's first block into the item line;
// per-line list semantics on the render side mean nested structure would
// not survive anyway.
func itemText(item ast.Node, source []byte) string {
	var parts []string
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if txt := inlineText(c, source); txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, " ")
}

// emitTable writes a GFM table as a tabular grid.
func emitTable(b *strings.Builder, table *east.Table, source []byte) {
	var rows [][]string
	for r := table.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, inlineText(c, source))
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	if len(rows) == 0 {
		return
	}

	cols := len(rows[0])
	spec := "|" + strings.Repeat("l|", cols)
	b.WriteString("\\begin{tabular}{" + spec + "}\n\\hline\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, " & ") + " \\\\\n\\hline\n")
	}
	b.WriteString("\\end{tabular}\n\n")
}

// inlineText renders a node's inline children as LaTeX.
func inlineText(parent ast.Node, source []byte) string {
	var b strings.Builder
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch t := n.(type) {
		case *ast.Text:
			b.WriteString(latexEscaper.Replace(string(t.Segment.Value(source))))
			if t.SoftLineBreak() {
				b.WriteString("\n")
			}
			if t.HardLineBreak() {
				b.WriteString(" \\\\\n")
			}

		case *ast.Emphasis:
			inner := inlineText(t, source)
			if t.Level >= 2 {
				b.WriteString(`\textbf{` + inner + `}`)
			} else {
				b.WriteString(`\textit{` + inner + `}`)
			}

		case *ast.CodeSpan:
			b.WriteString(`\texttt{` + latexEscaper.Replace(string(t.Text(source))) + `}`)

		case *ast.Link:
			// Links have no rendering in the subset; keep the label.
			b.WriteString(inlineText(t, source))

		case *ast.AutoLink:
			b.WriteString(latexEscaper.Replace(string(t.URL(source))))

		case *east.Strikethrough:
			b.WriteString(inlineText(t, source))

		default:
			b.WriteString(inlineText(n, source))
		}
	}
	return b.String()
}
