package draftex

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockLevelTags are the container-relevant block elements the builder
// recognizes when deciding whether to recurse into a generic container.
var blockLevelTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "ul": true, "ol": true, "table": true,
	"div": true, "section": true, "article": true, "pre": true, "blockquote": true,
}

var collapseSpace = regexp.MustCompile(`\s+`)

// BuildExportDocument walks the preview fragment, not raw source, and
// rebuilds the portable block/run document model consumed by artifact
// serialization. Unknown tags are either recursed into or flattened to a
// plain-text paragraph; content is never silently dropped.
func BuildExportDocument(fragment string) (*ExportDocument, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing preview fragment: %w", err)
	}

	doc := &ExportDocument{}
	for _, n := range nodes {
		doc.Blocks = append(doc.Blocks, buildBlocks(doc, n)...)
	}

	// A non-empty body always yields at least one block.
	if len(doc.Blocks) == 0 {
		if text := collapseText(fragment); text != "" {
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockParagraph, Runs: []Run{{Text: text}}})
		}
	}

	return doc, nil
}

// buildBlocks converts one fragment node into zero or more blocks.
func buildBlocks(doc *ExportDocument, n *html.Node) []Block {
	switch n.Type {
	case html.TextNode:
		text := collapseText(n.Data)
		if text == "" {
			return nil
		}
		return []Block{{Kind: BlockParagraph, Runs: []Run{{Text: text}}}}
	case html.CommentNode:
		return nil
	case html.ElementNode:
		// Handled below.
	default:
		return nil
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		text := collapseText(textContent(n))
		if nodeClass(n) == "doc-title" && doc.Title == "" {
			doc.Title = text
		}
		return []Block{{Kind: BlockHeading, Level: level, Text: text}}

	case "p":
		if nodeClass(n) == "doc-author" && doc.Author == "" {
			doc.Author = collapseText(textContent(n))
		}
		runs := inlineRuns(n)
		if len(runs) == 0 {
			return nil
		}
		return []Block{{Kind: BlockParagraph, Runs: runs}}

	case "ul", "ol":
		return []Block{listModel(n)}

	case "table":
		return []Block{tableModel(n)}

	case "pre":
		runs := preRuns(n)
		if len(runs) == 0 {
			return nil
		}
		return []Block{{Kind: BlockParagraph, Runs: runs}}

	case "hr", "br":
		// No exportable content.
		return nil

	case "div", "section", "article":
		if hasBlockChildren(n) {
			var blocks []Block
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				blocks = append(blocks, buildBlocks(doc, c)...)
			}
			return blocks
		}
		return flattenParagraph(n)

	default:
		// Unknown tag: recurse when it holds block structure, otherwise
		// flatten to a plain-text paragraph.
		if hasBlockChildren(n) {
			var blocks []Block
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				blocks = append(blocks, buildBlocks(doc, c)...)
			}
			return blocks
		}
		return flattenParagraph(n)
	}
}

// flattenParagraph reduces a node's entire content to one paragraph block.
func flattenParagraph(n *html.Node) []Block {
	runs := inlineRuns(n)
	if len(runs) == 0 {
		return nil
	}
	return []Block{{Kind: BlockParagraph, Runs: runs}}
}

// listModel builds a list block: one item per child list entry, each built
// the same way as a paragraph.
func listModel(n *html.Node) Block {
	block := Block{Kind: BlockList, Ordered: n.Data == "ol"}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			runs := inlineRuns(c)
			if len(runs) == 0 {
				runs = []Run{{Text: ""}}
			}
			block.Items = append(block.Items, runs)
		}
	}
	return block
}

// tableModel builds a table block from all row elements in document order.
// Header-vs-data is decided purely by the cell's own tag, never by row or
// column position.
func tableModel(n *html.Node) Block {
	block := Block{Kind: BlockTable}

	var walkRows func(*html.Node)
	walkRows = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "tr" {
				block.Rows = append(block.Rows, tableRow(c))
				continue
			}
			walkRows(c)
		}
	}
	walkRows(n)

	return block
}

// tableRow converts one row element into cells.
func tableRow(tr *html.Node) []Cell {
	var cells []Cell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		cell := Cell{Header: c.Data == "th"}
		if hasBlockChildren(c) {
			doc := &ExportDocument{}
			for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
				cell.Blocks = append(cell.Blocks, buildBlocks(doc, cc)...)
			}
		} else if runs := inlineRuns(c); len(runs) > 0 {
			cell.Blocks = []Block{{Kind: BlockParagraph, Runs: runs}}
		}
		cells = append(cells, cell)
	}
	return cells
}

// inlineRuns walks a node's inline children and produces styled runs,
// tagging bold, italic and line breaks by child tag.
func inlineRuns(n *html.Node) []Run {
	var runs []Run
	var walk func(node *html.Node, bold, italic bool)
	walk = func(node *html.Node, bold, italic bool) {
		switch node.Type {
		case html.TextNode:
			text := collapseText(node.Data)
			if text != "" {
				runs = append(runs, Run{Text: text, Bold: bold, Italic: italic})
			}
			return
		case html.ElementNode:
			switch node.Data {
			case "strong", "b":
				bold = true
			case "em", "i":
				italic = true
			case "br":
				runs = append(runs, Run{LineBreak: true})
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c, bold, italic)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, false, false)
	}
	return runs
}

// preRuns preserves line structure of preformatted content as line-break
// separated runs.
func preRuns(n *html.Node) []Run {
	lines := strings.Split(strings.Trim(textContent(n), "\n"), "\n")
	var runs []Run
	for i, line := range lines {
		if i > 0 {
			runs = append(runs, Run{LineBreak: true})
		}
		runs = append(runs, Run{Text: line})
	}
	return runs
}

// hasBlockChildren reports whether a node has at least one block-level
// element child.
func hasBlockChildren(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockLevelTags[c.Data] {
			return true
		}
	}
	return false
}

// textContent concatenates all text descendants.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// nodeClass returns the element's class attribute.
func nodeClass(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "class" {
			return a.Val
		}
	}
	return ""
}

// collapseText normalizes interior whitespace and trims the result.
func collapseText(s string) string {
	return strings.TrimSpace(collapseSpace.ReplaceAllString(s, " "))
}
