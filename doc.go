// Package draftex is the document-transformation core of a LaTeX-subset
// paper-authoring tool. It extracts a navigable outline from source text,
// renders a structural HTML preview through a fixed cascade of rewrite
// stages, and rebuilds a portable block/run document model from that
// preview for artifact export (verbatim source, rasterized PDF, DOCX).
//
// The renderer is a best-effort, lossy structural approximation of LaTeX,
// not a typesetter: unrecognized commands pass through verbatim, inline
// style substitution is correct for a single nesting level, and the first
// table row is always treated as a header row.
//
// # Quick Start
//
// Create a service, feed it source text, and export:
//
//	svc := draftex.New()
//	defer svc.Close()
//
//	svc.Session().SetText(source) // debounced recompute
//	svc.Session().Flush()         // or wait for the debounce window
//
//	pdf, err := svc.Export(ctx, draftex.FormatPDF)
//
// The Session owns the current source text and republishes the outline and
// preview after every accepted change; Export always reads the latest
// published snapshot.
package draftex
