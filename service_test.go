package draftex

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// stubRenderer records the page it was asked to print and returns canned
// bytes, so export paths are testable without a browser.
type stubRenderer struct {
	lastHTML string
	result   []byte
	err      error
	closed   bool
}

func (r *stubRenderer) RenderPDF(_ context.Context, htmlContent string, _ *PageSettings) ([]byte, error) {
	r.lastHTML = htmlContent
	return r.result, r.err
}

func (r *stubRenderer) Close() error {
	r.closed = true
	return nil
}

func newStubService(stub *stubRenderer) *Service {
	svc := New(WithDebounce(10 * time.Millisecond))
	svc.renderer = stub
	return svc
}

func TestServiceExportSource(t *testing.T) {
	svc := newStubService(&stubRenderer{})
	svc.Session().ForceReplace(`\section{A}`)

	got, err := svc.Export(context.Background(), FormatSource)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if string(got) != `\section{A}` {
		t.Errorf("source artifact = %q, want verbatim source", got)
	}
}

func TestServiceExportSourceEmpty(t *testing.T) {
	svc := newStubService(&stubRenderer{})

	_, err := svc.Export(context.Background(), FormatSource)
	if !errors.Is(err, ErrEmptySource) {
		t.Errorf("Export() error = %v, want ErrEmptySource", err)
	}
}

func TestServiceExportPDFUsesPublishedPreview(t *testing.T) {
	stub := &stubRenderer{result: []byte("%PDF-stub")}
	svc := newStubService(stub)
	svc.Session().ForceReplace(`\section{Results}`)

	got, err := svc.Export(context.Background(), FormatPDF)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if string(got) != "%PDF-stub" {
		t.Errorf("pdf bytes = %q, want renderer output", got)
	}
	if !strings.Contains(stub.lastHTML, "<h1>Results</h1>") {
		t.Errorf("printed page missing preview content: %q", stub.lastHTML)
	}
	if !strings.Contains(stub.lastHTML, "<!DOCTYPE html>") {
		t.Errorf("printed page is not a full document: %q", stub.lastHTML)
	}
}

func TestServiceExportPDFRendererFailure(t *testing.T) {
	stub := &stubRenderer{err: ErrPDFGeneration}
	svc := newStubService(stub)
	svc.Session().ForceReplace("text")

	_, err := svc.Export(context.Background(), FormatPDF)
	if !errors.Is(err, ErrPDFGeneration) {
		t.Errorf("Export() error = %v, want ErrPDFGeneration", err)
	}
}

func TestServiceExportDocx(t *testing.T) {
	svc := newStubService(&stubRenderer{})
	svc.Session().ForceReplace("\\section{One}\n\nParagraph.")

	got, err := svc.Export(context.Background(), FormatDOCX)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if _, err := zip.NewReader(bytes.NewReader(got), int64(len(got))); err != nil {
		t.Errorf("docx artifact is not a zip archive: %v", err)
	}
}

func TestServiceExportNoPreview(t *testing.T) {
	svc := newStubService(&stubRenderer{})

	for _, format := range []ExportFormat{FormatPDF, FormatDOCX} {
		if _, err := svc.Export(context.Background(), format); !errors.Is(err, ErrNoPreview) {
			t.Errorf("Export(%s) error = %v, want ErrNoPreview", format, err)
		}
	}
}

func TestServiceExportUnknownFormat(t *testing.T) {
	svc := newStubService(&stubRenderer{})
	svc.Session().ForceReplace("text")

	_, err := svc.Export(context.Background(), ExportFormat("odt"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Export() error = %v, want ErrUnknownFormat", err)
	}
}

func TestServiceConvert(t *testing.T) {
	stub := &stubRenderer{result: []byte("%PDF-stub")}
	svc := newStubService(stub)

	got, err := svc.Convert(context.Background(), `\section{Batch}`, FormatPDF)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if string(got) != "%PDF-stub" {
		t.Errorf("pdf bytes = %q", got)
	}
	// One-shot conversion never touches the edit session.
	if svc.Session().Source() != "" {
		t.Errorf("Convert mutated the session: %q", svc.Session().Source())
	}
}

func TestServiceConvertSourcePassthrough(t *testing.T) {
	svc := newStubService(&stubRenderer{})

	got, err := svc.Convert(context.Background(), "raw text", FormatSource)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if string(got) != "raw text" {
		t.Errorf("source passthrough = %q", got)
	}
}

func TestServiceConvertEmpty(t *testing.T) {
	svc := newStubService(&stubRenderer{})

	_, err := svc.Convert(context.Background(), "", FormatPDF)
	if !errors.Is(err, ErrEmptySource) {
		t.Errorf("Convert() error = %v, want ErrEmptySource", err)
	}
}

func TestServiceClose(t *testing.T) {
	stub := &stubRenderer{}
	svc := newStubService(stub)

	if err := svc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !stub.closed {
		t.Errorf("renderer not closed")
	}
}
