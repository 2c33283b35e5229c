package draftex

import (
	"reflect"
	"testing"
)

func TestBuildExportDocumentHeadings(t *testing.T) {
	doc, err := BuildExportDocument("<h1>A</h1>\n<h2>B</h2>\n<h3>C</h3>")
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}

	if len(doc.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(doc.Blocks))
	}
	for i, want := range []struct {
		level int
		text  string
	}{{1, "A"}, {2, "B"}, {3, "C"}} {
		b := doc.Blocks[i]
		if b.Kind != BlockHeading || b.Level != want.level || b.Text != want.text {
			t.Errorf("block %d = %+v, want heading level %d text %q", i, b, want.level, want.text)
		}
	}
}

func TestBuildExportDocumentTitleAuthor(t *testing.T) {
	fragment := `<h1 class="doc-title">Draft Study</h1>` + "\n" +
		`<p class="doc-author">Kim</p>` + "\n" +
		"<p>Body.</p>"

	doc, err := BuildExportDocument(fragment)
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}

	if doc.Title != "Draft Study" {
		t.Errorf("Title = %q, want %q", doc.Title, "Draft Study")
	}
	if doc.Author != "Kim" {
		t.Errorf("Author = %q, want %q", doc.Author, "Kim")
	}
	// Metadata capture does not remove the blocks themselves.
	if len(doc.Blocks) != 3 {
		t.Errorf("blocks = %d, want 3", len(doc.Blocks))
	}
}

func TestBuildExportDocumentRuns(t *testing.T) {
	doc, err := BuildExportDocument(`<p>plain <strong>bold</strong> <em>italic</em><br>next</p>`)
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(doc.Blocks))
	}

	runs := doc.Blocks[0].Runs
	expected := []Run{
		{Text: "plain"},
		{Text: "bold", Bold: true},
		{Text: "italic", Italic: true},
		{LineBreak: true},
		{Text: "next"},
	}
	if !reflect.DeepEqual(runs, expected) {
		t.Errorf("runs = %+v, want %+v", runs, expected)
	}
}

func TestBuildExportDocumentNestedStyle(t *testing.T) {
	doc, err := BuildExportDocument(`<p><strong>bold <em>both</em></strong></p>`)
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}

	runs := doc.Blocks[0].Runs
	expected := []Run{
		{Text: "bold", Bold: true},
		{Text: "both", Bold: true, Italic: true},
	}
	if !reflect.DeepEqual(runs, expected) {
		t.Errorf("runs = %+v, want %+v", runs, expected)
	}
}

func TestBuildExportDocumentLists(t *testing.T) {
	doc, err := BuildExportDocument("<ul>\n<li>first</li>\n<li>second</li>\n</ul>\n<ol>\n<li>one</li>\n</ol>")
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(doc.Blocks))
	}

	ul := doc.Blocks[0]
	if ul.Kind != BlockList || ul.Ordered {
		t.Errorf("block 0 = %+v, want unordered list", ul)
	}
	if len(ul.Items) != 2 || ul.Items[0][0].Text != "first" {
		t.Errorf("unordered items = %+v", ul.Items)
	}

	ol := doc.Blocks[1]
	if ol.Kind != BlockList || !ol.Ordered {
		t.Errorf("block 1 = %+v, want ordered list", ol)
	}
}

func TestBuildExportDocumentTableHeaderByTag(t *testing.T) {
	// Header-vs-data is the cell's own tag, never its row position.
	fragment := "<table><tbody><tr><td>data</td><th>head</th></tr></tbody></table>"
	doc, err := BuildExportDocument(fragment)
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}
	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockTable {
		t.Fatalf("blocks = %+v, want one table", doc.Blocks)
	}

	rows := doc.Blocks[0].Rows
	if len(rows) != 1 || len(rows[0]) != 2 {
		t.Fatalf("rows = %+v, want one row of two cells", rows)
	}
	if rows[0][0].Header {
		t.Errorf("td cell marked as header")
	}
	if !rows[0][1].Header {
		t.Errorf("th cell not marked as header")
	}
}

func TestBuildExportDocumentTableShape(t *testing.T) {
	fragment := "<table>\n<thead>\n<tr><th>a</th><th>b</th></tr>\n</thead>\n<tbody>\n<tr><td>c</td><td>d</td></tr>\n</tbody>\n</table>"
	doc, err := BuildExportDocument(fragment)
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}

	rows := doc.Blocks[0].Rows
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	for i, row := range rows {
		if len(row) != 2 {
			t.Errorf("row %d has %d cells, want 2", i, len(row))
		}
	}
	if !rows[0][0].Header || rows[1][0].Header {
		t.Errorf("header flags wrong: %+v", rows)
	}
}

func TestBuildExportDocumentContainerRecursion(t *testing.T) {
	fragment := `<div class="abstract"><h3>Abstract</h3>
<p>Summary text.</p></div>`
	doc, err := BuildExportDocument(fragment)
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}

	if len(doc.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(doc.Blocks))
	}
	if doc.Blocks[0].Kind != BlockHeading || doc.Blocks[0].Text != "Abstract" {
		t.Errorf("block 0 = %+v, want Abstract heading", doc.Blocks[0])
	}
	if doc.Blocks[1].Kind != BlockParagraph {
		t.Errorf("block 1 = %+v, want paragraph", doc.Blocks[1])
	}
}

func TestBuildExportDocumentUnknownTagFlattens(t *testing.T) {
	doc, err := BuildExportDocument(`<span class="cite">[knuth]</span>`)
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}

	if len(doc.Blocks) != 1 || doc.Blocks[0].Kind != BlockParagraph {
		t.Fatalf("blocks = %+v, want one paragraph", doc.Blocks)
	}
	if doc.Blocks[0].Runs[0].Text != "[knuth]" {
		t.Errorf("run text = %q, want %q", doc.Blocks[0].Runs[0].Text, "[knuth]")
	}
}

func TestBuildExportDocumentPreKeepsLines(t *testing.T) {
	doc, err := BuildExportDocument("<pre><code>line one\nline two</code></pre>")
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}

	runs := doc.Blocks[0].Runs
	expected := []Run{
		{Text: "line one"},
		{LineBreak: true},
		{Text: "line two"},
	}
	if !reflect.DeepEqual(runs, expected) {
		t.Errorf("runs = %+v, want %+v", runs, expected)
	}
}

func TestBuildExportDocumentNonEmptyGuarantee(t *testing.T) {
	doc, err := BuildExportDocument("bare text, no markup")
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}
	if len(doc.Blocks) == 0 {
		t.Errorf("non-empty fragment produced zero blocks")
	}
}

func TestBuildExportDocumentBlockCountConservation(t *testing.T) {
	// Five distinct top-level blocks in the fragment produce five model
	// blocks, in order.
	fragment := "<h1>H</h1>\n<p>P</p>\n<ul><li>i</li></ul>\n<table><tr><td>c</td></tr></table>\n<pre><code>x</code></pre>"
	doc, err := BuildExportDocument(fragment)
	if err != nil {
		t.Fatalf("BuildExportDocument() error = %v", err)
	}

	kinds := make([]BlockKind, len(doc.Blocks))
	for i, b := range doc.Blocks {
		kinds[i] = b.Kind
	}
	expected := []BlockKind{BlockHeading, BlockParagraph, BlockList, BlockTable, BlockParagraph}
	if !reflect.DeepEqual(kinds, expected) {
		t.Errorf("kinds = %v, want %v", kinds, expected)
	}
}
