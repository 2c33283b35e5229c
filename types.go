package draftex

import (
	"fmt"
	"strings"
	"time"
)

// Outline levels for the fixed sectioning command set.
const (
	LevelChapter       = 0
	LevelSection       = 1
	LevelSubsection    = 2
	LevelSubsubsection = 3
)

// OutlineEntry is one sectioning command found in the source, used for
// navigation. Line is 1-based and always within the source line count.
type OutlineEntry struct {
	Label string
	Level int
	Line  int
}

// ExportFormat selects the artifact kind produced by Service.Export.
type ExportFormat string

// Export formats. All visual forms derive from the latest published
// preview, never from raw source directly.
const (
	FormatSource ExportFormat = "tex"  // raw source bytes, verbatim
	FormatPDF    ExportFormat = "pdf"  // fixed-page raster of the preview
	FormatDOCX   ExportFormat = "docx" // structured package from the export model
)

// BlockKind discriminates Block variants in the export document model.
type BlockKind int

// Block kinds.
const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockList
	BlockTable
)

// Run is an inline styled-text unit of the export model.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	LineBreak bool
}

// Cell is one table cell. Header-vs-data comes from the cell's own tag in
// the preview fragment, never from its position.
type Cell struct {
	Header bool
	Blocks []Block
}

// Block is one structural unit of the export document model. Exactly one
// variant's fields are meaningful, selected by Kind.
type Block struct {
	Kind BlockKind

	// BlockHeading
	Level int
	Text  string

	// BlockParagraph
	Runs []Run

	// BlockList
	Ordered bool
	Items   [][]Run

	// BlockTable
	Rows [][]Cell
}

// ExportDocument is the ordered block list built from the preview fragment;
// the direct input to artifact serialization.
type ExportDocument struct {
	Title  string
	Author string
	Blocks []Block
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 1.0
)

// PageSettings configures the fixed-page PDF artifact.
type PageSettings struct {
	Size        string  // "letter", "a4"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// dimensions returns paper width and height in inches, orientation applied.
func (p *PageSettings) dimensions() (w, h float64) {
	size := PageSizeA4
	orient := OrientationPortrait
	if p != nil {
		size = strings.ToLower(p.Size)
		orient = strings.ToLower(p.Orientation)
	}

	switch size {
	case PageSizeLetter:
		w, h = 8.5, 11
	default: // a4
		w, h = 8.27, 11.69
	}
	if orient == OrientationLandscape {
		w, h = h, w
	}
	return w, h
}

// margin returns the configured margin in inches, or the default.
func (p *PageSettings) margin() float64 {
	if p == nil || p.Margin == 0 {
		return DefaultMargin
	}
	return p.Margin
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	debounce time.Duration
	timeout  time.Duration
	page     *PageSettings
}

// Defaults used when no option overrides them.
const (
	defaultDebounce = 600 * time.Millisecond
	defaultTimeout  = 30 * time.Second
)

// WithDebounce sets the edit debounce window.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithDebounce(d time.Duration) Option {
	if d <= 0 {
		panic("draftex: WithDebounce duration must be positive")
	}
	return func(s *Service) {
		s.cfg.debounce = d
	}
}

// WithTimeout sets the export timeout.
// Panics if d <= 0.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("draftex: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithPage sets page settings for the PDF artifact.
func WithPage(p *PageSettings) Option {
	return func(s *Service) {
		s.cfg.page = p
	}
}
