package draftex

import (
	"context"
	"fmt"
)

// Service wires the edit session to the export pipeline. The session
// republishes outline and preview on every accepted change; Export reads
// the latest published snapshot, never raw source (except for the verbatim
// source artifact).
type Service struct {
	cfg      serviceConfig
	session  *Session
	renderer pdfRenderer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithDebounce, WithPage).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			debounce: defaultDebounce,
			timeout:  defaultTimeout,
			page:     DefaultPageSettings(),
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.session = NewSession(s.cfg.debounce)

	// Create the PDF renderer if not injected (e.g., by tests).
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.timeout)
	}

	return s
}

// Session returns the edit session owning the source document.
func (s *Service) Session() *Session {
	return s.session
}

// Export produces one artifact from the current document state. Visual
// formats derive from the latest *published* preview snapshot; a caller
// exporting while a recompute is pending may receive a stale artifact,
// which is accepted, not an error.
func (s *Service) Export(ctx context.Context, format ExportFormat) ([]byte, error) {
	if format == FormatSource {
		src := s.session.Source()
		if src == "" {
			return nil, ErrEmptySource
		}
		return []byte(src), nil
	}

	snap := s.session.Snapshot()
	return s.exportFragment(ctx, snap.Fragment, format)
}

// Convert runs the full pipeline over one source text without touching the
// edit session: render, rebuild the export model, serialize. Used for
// one-shot and batch conversion, where no editing state exists.
func (s *Service) Convert(ctx context.Context, source string, format ExportFormat) ([]byte, error) {
	if source == "" {
		return nil, ErrEmptySource
	}
	if format == FormatSource {
		return []byte(source), nil
	}
	return s.exportFragment(ctx, RenderPreview(source), format)
}

// exportFragment serializes one preview fragment into the requested
// artifact.
func (s *Service) exportFragment(ctx context.Context, fragment string, format ExportFormat) ([]byte, error) {
	if fragment == "" {
		return nil, ErrNoPreview
	}

	doc, err := BuildExportDocument(fragment)
	if err != nil {
		return nil, fmt.Errorf("building export model: %w", err)
	}

	switch format {
	case FormatPDF:
		page := buildPreviewPage(doc.Title, fragment, s.cfg.page)
		return s.renderer.RenderPDF(ctx, page, s.cfg.page)
	case FormatDOCX:
		return WriteDocx(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Close releases resources (headless browser).
func (s *Service) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}
