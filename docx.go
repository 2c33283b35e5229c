package draftex

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// WordprocessingML boilerplate parts. The package carries only what the
// export model needs: heading and list styles, one bullet and one decimal
// numbering definition, and core document properties.
const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`

	docxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`

	docxDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>
</Relationships>`

	docxStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:rPr><w:sz w:val="22"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:pPr><w:jc w:val="center"/><w:spacing w:after="240"/></w:pPr><w:rPr><w:b/><w:sz w:val="40"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="0"/><w:spacing w:before="240" w:after="120"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="1"/><w:spacing w:before="200" w:after="100"/></w:pPr><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="2"/><w:spacing w:before="160" w:after="80"/></w:pPr><w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading4"><w:name w:val="heading 4"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="3"/><w:spacing w:before="120" w:after="60"/></w:pPr><w:rPr><w:b/><w:i/><w:sz w:val="24"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="ListParagraph"><w:name w:val="List Paragraph"/><w:basedOn w:val="Normal"/><w:pPr><w:ind w:left="720"/></w:pPr></w:style>
</w:styles>`

	docxNumbering = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/><w:lvlText w:val="&#8226;"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>
<w:abstractNum w:abstractNumId="1"><w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>
</w:numbering>`

	// Uniform single-line borders and full-width sizing for every table.
	docxTableProps = `<w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:color="444444"/>` +
		`<w:left w:val="single" w:sz="4" w:color="444444"/>` +
		`<w:bottom w:val="single" w:sz="4" w:color="444444"/>` +
		`<w:right w:val="single" w:sz="4" w:color="444444"/>` +
		`<w:insideH w:val="single" w:sz="4" w:color="444444"/>` +
		`<w:insideV w:val="single" w:sz="4" w:color="444444"/>` +
		`</w:tblBorders></w:tblPr>`
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// WriteDocx serializes the export document model into a DOCX package.
// Encoding failures are reported as ErrDocxEncode; no partial archive is
// ever returned.
func WriteDocx(doc *ExportDocument) ([]byte, error) {
	if doc == nil || len(doc.Blocks) == 0 {
		return nil, ErrNoPreview
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/styles.xml", docxStyles},
		{"word/numbering.xml", docxNumbering},
		{"docProps/core.xml", coreProperties(doc)},
		{"word/document.xml", documentXML(doc)},
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", ErrDocxEncode, part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %v", ErrDocxEncode, part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxEncode, err)
	}
	return buf.Bytes(), nil
}

// coreProperties carries the resolved title and author into the package
// metadata.
func coreProperties(doc *ExportDocument) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
<dc:title>` + xmlEscaper.Replace(doc.Title) + `</dc:title>
<dc:creator>` + xmlEscaper.Replace(doc.Author) + `</dc:creator>
</cp:coreProperties>`
}

// documentXML renders the block list into the main document part.
func documentXML(doc *ExportDocument) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, block := range doc.Blocks {
		writeBlock(&b, doc, block)
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

// writeBlock renders one block.
func writeBlock(b *strings.Builder, doc *ExportDocument, block Block) {
	switch block.Kind {
	case BlockHeading:
		style := headingStyle(doc, block)
		b.WriteString(`<w:p><w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`)
		writeRun(b, Run{Text: block.Text})
		b.WriteString(`</w:p>`)

	case BlockParagraph:
		b.WriteString(`<w:p>`)
		for _, run := range block.Runs {
			writeRun(b, run)
		}
		b.WriteString(`</w:p>`)

	case BlockList:
		numID := "1"
		if block.Ordered {
			numID = "2"
		}
		for _, item := range block.Items {
			b.WriteString(`<w:p><w:pPr><w:pStyle w:val="ListParagraph"/>` +
				`<w:numPr><w:ilvl w:val="0"/><w:numId w:val="` + numID + `"/></w:numPr></w:pPr>`)
			for _, run := range item {
				writeRun(b, run)
			}
			b.WriteString(`</w:p>`)
		}

	case BlockTable:
		writeTable(b, doc, block)
	}
}

// headingStyle maps a heading block onto a style id. The resolved document
// title gets the Title style; everything else maps to Heading1..4.
func headingStyle(doc *ExportDocument, block Block) string {
	if doc.Title != "" && block.Text == doc.Title {
		return "Title"
	}
	level := block.Level
	if level < 1 {
		level = 1
	}
	if level > 4 {
		level = 4
	}
	return fmt.Sprintf("Heading%d", level)
}

// writeTable renders a table block with the uniform border set.
func writeTable(b *strings.Builder, doc *ExportDocument, block Block) {
	b.WriteString(`<w:tbl>` + docxTableProps)
	for _, row := range block.Rows {
		b.WriteString(`<w:tr>`)
		for _, cell := range row {
			b.WriteString(`<w:tc><w:tcPr>`)
			if cell.Header {
				b.WriteString(`<w:shd w:val="clear" w:fill="F2F2F2"/>`)
			}
			b.WriteString(`</w:tcPr>`)

			if len(cell.Blocks) == 0 {
				b.WriteString(`<w:p/>`)
			}
			for _, inner := range cell.Blocks {
				if cell.Header && inner.Kind == BlockParagraph {
					inner = boldened(inner)
				}
				writeBlock(b, doc, inner)
			}
			b.WriteString(`</w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
	// A table must be followed by a paragraph to stay well-formed.
	b.WriteString(`<w:p/>`)
}

// boldened returns a copy of a paragraph block with bold runs.
func boldened(block Block) Block {
	runs := make([]Run, len(block.Runs))
	copy(runs, block.Runs)
	for i := range runs {
		runs[i].Bold = true
	}
	block.Runs = runs
	return block
}

// writeRun renders one styled run.
func writeRun(b *strings.Builder, run Run) {
	if run.LineBreak {
		b.WriteString(`<w:r><w:br/></w:r>`)
		return
	}

	b.WriteString(`<w:r>`)
	if run.Bold || run.Italic {
		b.WriteString(`<w:rPr>`)
		if run.Bold {
			b.WriteString(`<w:b/>`)
		}
		if run.Italic {
			b.WriteString(`<w:i/>`)
		}
		b.WriteString(`</w:rPr>`)
	}
	b.WriteString(`<w:t xml:space="preserve">` + xmlEscaper.Replace(run.Text) + `</w:t></w:r>`)
}
