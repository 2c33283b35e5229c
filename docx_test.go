package draftex

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// readDocxPart unzips one named part from a DOCX package.
func readDocxPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("opening package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		return string(content)
	}
	t.Fatalf("part %s not found in package", name)
	return ""
}

func TestWriteDocxPackageParts(t *testing.T) {
	doc := &ExportDocument{
		Blocks: []Block{{Kind: BlockParagraph, Runs: []Run{{Text: "hello"}}}},
	}
	data, err := WriteDocx(doc)
	if err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}

	want := map[string]bool{
		"[Content_Types].xml":          false,
		"_rels/.rels":                  false,
		"word/_rels/document.xml.rels": false,
		"word/styles.xml":              false,
		"word/numbering.xml":           false,
		"docProps/core.xml":            false,
		"word/document.xml":            false,
	}
	for _, f := range zr.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing package part %s", name)
		}
	}
}

func TestWriteDocxEmptyDocument(t *testing.T) {
	if _, err := WriteDocx(nil); !errors.Is(err, ErrNoPreview) {
		t.Errorf("WriteDocx(nil) error = %v, want ErrNoPreview", err)
	}
	if _, err := WriteDocx(&ExportDocument{}); !errors.Is(err, ErrNoPreview) {
		t.Errorf("WriteDocx(empty) error = %v, want ErrNoPreview", err)
	}
}

func TestWriteDocxHeadingStyles(t *testing.T) {
	doc := &ExportDocument{
		Title: "My Paper",
		Blocks: []Block{
			{Kind: BlockHeading, Level: 1, Text: "My Paper"},
			{Kind: BlockHeading, Level: 1, Text: "Introduction"},
			{Kind: BlockHeading, Level: 2, Text: "Background"},
			{Kind: BlockHeading, Level: 6, Text: "Deep"},
		},
	}
	data, err := WriteDocx(doc)
	if err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}
	body := readDocxPart(t, data, "word/document.xml")

	for _, want := range []string{
		`<w:pStyle w:val="Title"/>`,
		`<w:pStyle w:val="Heading1"/>`,
		`<w:pStyle w:val="Heading2"/>`,
		`<w:pStyle w:val="Heading4"/>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("document.xml missing %s", want)
		}
	}
	if strings.Contains(body, `Heading6`) {
		t.Errorf("heading level not clamped to 4")
	}
}

func TestWriteDocxRunStyles(t *testing.T) {
	doc := &ExportDocument{
		Blocks: []Block{{Kind: BlockParagraph, Runs: []Run{
			{Text: "plain"},
			{Text: "bold", Bold: true},
			{Text: "italic", Italic: true},
			{LineBreak: true},
			{Text: "both", Bold: true, Italic: true},
		}}},
	}
	data, err := WriteDocx(doc)
	if err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}
	body := readDocxPart(t, data, "word/document.xml")

	for _, want := range []string{
		`<w:r><w:t xml:space="preserve">plain</w:t></w:r>`,
		`<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">bold</w:t></w:r>`,
		`<w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">italic</w:t></w:r>`,
		`<w:r><w:br/></w:r>`,
		`<w:r><w:rPr><w:b/><w:i/></w:rPr><w:t xml:space="preserve">both</w:t></w:r>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("document.xml missing %s", want)
		}
	}
}

func TestWriteDocxLists(t *testing.T) {
	doc := &ExportDocument{
		Blocks: []Block{
			{Kind: BlockList, Items: [][]Run{{{Text: "bullet"}}}},
			{Kind: BlockList, Ordered: true, Items: [][]Run{{{Text: "numbered"}}}},
		},
	}
	data, err := WriteDocx(doc)
	if err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}
	body := readDocxPart(t, data, "word/document.xml")

	if !strings.Contains(body, `<w:numId w:val="1"/>`) {
		t.Errorf("bullet numbering reference missing")
	}
	if !strings.Contains(body, `<w:numId w:val="2"/>`) {
		t.Errorf("decimal numbering reference missing")
	}
	if !strings.Contains(body, `<w:pStyle w:val="ListParagraph"/>`) {
		t.Errorf("list paragraph style missing")
	}
}

func TestWriteDocxTable(t *testing.T) {
	doc := &ExportDocument{
		Blocks: []Block{{Kind: BlockTable, Rows: [][]Cell{
			{
				{Header: true, Blocks: []Block{{Kind: BlockParagraph, Runs: []Run{{Text: "Name"}}}}},
				{Header: true, Blocks: []Block{{Kind: BlockParagraph, Runs: []Run{{Text: "Value"}}}}},
			},
			{
				{Blocks: []Block{{Kind: BlockParagraph, Runs: []Run{{Text: "alpha"}}}}},
				{},
			},
		}}},
	}
	data, err := WriteDocx(doc)
	if err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}
	body := readDocxPart(t, data, "word/document.xml")

	if got := strings.Count(body, "<w:tr>"); got != 2 {
		t.Errorf("row count = %d, want 2", got)
	}
	if got := strings.Count(body, "<w:tc>"); got != 4 {
		t.Errorf("cell count = %d, want 4", got)
	}
	// Header cells are shaded and their runs boldened.
	if got := strings.Count(body, `<w:shd w:val="clear" w:fill="F2F2F2"/>`); got != 2 {
		t.Errorf("shaded header cells = %d, want 2", got)
	}
	if !strings.Contains(body, `<w:rPr><w:b/></w:rPr><w:t xml:space="preserve">Name</w:t>`) {
		t.Errorf("header run not boldened")
	}
	// Empty cell still carries a paragraph.
	if !strings.Contains(body, `<w:tc><w:tcPr></w:tcPr><w:p/></w:tc>`) {
		t.Errorf("empty cell missing placeholder paragraph")
	}
	// A trailing paragraph follows the table.
	if !strings.Contains(body, `</w:tbl><w:p/>`) {
		t.Errorf("trailing paragraph after table missing")
	}
}

func TestWriteDocxCoreProperties(t *testing.T) {
	doc := &ExportDocument{
		Title:  "Tables & Figures",
		Author: "Kim",
		Blocks: []Block{{Kind: BlockParagraph, Runs: []Run{{Text: "x"}}}},
	}
	data, err := WriteDocx(doc)
	if err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}
	core := readDocxPart(t, data, "docProps/core.xml")

	if !strings.Contains(core, "<dc:title>Tables &amp; Figures</dc:title>") {
		t.Errorf("title not escaped in core properties: %s", core)
	}
	if !strings.Contains(core, "<dc:creator>Kim</dc:creator>") {
		t.Errorf("creator missing from core properties: %s", core)
	}
}

func TestWriteDocxEscapesText(t *testing.T) {
	doc := &ExportDocument{
		Blocks: []Block{{Kind: BlockParagraph, Runs: []Run{{Text: `a < b & "c"`}}}},
	}
	data, err := WriteDocx(doc)
	if err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}
	body := readDocxPart(t, data, "word/document.xml")

	if !strings.Contains(body, "a &lt; b &amp; &quot;c&quot;") {
		t.Errorf("text not escaped: %s", body)
	}
}
