package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ebisse/draftex"
)

// Request/response payloads.

type documentRequest struct {
	Text string `json:"text"`
}

type initRequest struct {
	Template string `json:"template,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

type replaceRequest struct {
	Text  string `json:"text"`
	Force bool   `json:"force"`
}

type assistantRequest struct {
	Summary string `json:"summary"`
}

type documentResponse struct {
	Source   string `json:"source"`
	Revision int64  `json:"revision"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// exportContentTypes maps artifact formats onto MIME types.
var exportContentTypes = map[draftex.ExportFormat]string{
	draftex.FormatSource: "application/x-tex",
	draftex.FormatPDF:    "application/pdf",
	draftex.FormatDOCX:   "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	snap := s.svc.Session().Snapshot()
	s.writeJSON(w, http.StatusOK, documentResponse{
		Source:   s.svc.Session().Source(),
		Revision: snap.Revision,
	})
}

// handleEditDocument accepts a full-text user edit; the recompute is
// debounced, so the response only acknowledges acceptance.
func (s *Server) handleEditDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	s.svc.Session().SetText(req.Text)
	w.WriteHeader(http.StatusAccepted)
}

// handleInitDocument seeds the document from a template scaffold or an
// imported Markdown draft and republishes synchronously.
func (s *Server) handleInitDocument(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	var source string
	switch {
	case req.Markdown != "":
		converted, err := draftex.ImportMarkdown(req.Markdown)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		source = converted
	default:
		name := req.Template
		if name == "" {
			name = "article"
		}
		tmpl, err := draftex.Template(name)
		if err != nil {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		source = tmpl
	}

	s.svc.Session().ForceReplace(source)
	snap := s.svc.Session().Snapshot()
	s.writeJSON(w, http.StatusOK, documentResponse{Source: snap.Source, Revision: snap.Revision})
}

// handleReplaceDocument performs a whole-document swap. Without force, a
// pending user edit refuses the replace so typing is not silently lost.
func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	var req replaceRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	if req.Force {
		s.svc.Session().ForceReplace(req.Text)
	} else if err := s.svc.Session().Replace(req.Text); err != nil {
		s.writeError(w, http.StatusConflict, err)
		return
	}

	snap := s.svc.Session().Snapshot()
	s.writeJSON(w, http.StatusOK, documentResponse{Source: snap.Source, Revision: snap.Revision})
}

func (s *Server) handleOutline(w http.ResponseWriter, _ *http.Request) {
	snap := s.svc.Session().Snapshot()
	outline := snap.Outline
	if outline == nil {
		outline = []draftex.OutlineEntry{}
	}
	s.writeJSON(w, http.StatusOK, outline)
}

// handlePreview serves the sanitized preview fragment. While a recompute
// is pending this is the previous snapshot; that staleness is accepted.
func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	snap := s.svc.Session().Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, draftex.SanitizePreview(snap.Fragment))
}

// handleAssistant runs one assistant round. A refused replace (pending
// user edit) returns the reply with 409 so the surface can reconcile.
func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		s.writeError(w, http.StatusServiceUnavailable, draftex.ErrAssistantUnavailable)
		return
	}

	var req assistantRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	resp, err := s.svc.Session().ApplyAssistant(r.Context(), s.assistant, req.Summary)
	switch {
	case errors.Is(err, draftex.ErrEditPending):
		s.writeJSON(w, http.StatusConflict, resp)
	case err != nil:
		s.logger.Warn("assistant round failed", zap.Error(err))
		s.writeError(w, http.StatusBadGateway, err)
	default:
		s.writeJSON(w, http.StatusOK, resp)
	}
}

// handleExport serves one artifact. An empty preview is a non-fatal
// notice, not a server failure.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := draftex.ExportFormat(chi.URLParam(r, "format"))

	data, err := s.svc.Export(r.Context(), format)
	switch {
	case errors.Is(err, draftex.ErrUnknownFormat):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, draftex.ErrNoPreview), errors.Is(err, draftex.ErrEmptySource):
		s.writeError(w, http.StatusConflict, err)
	case err != nil:
		s.logger.Error("export failed", zap.String("format", string(format)), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err)
	default:
		w.Header().Set("Content-Type", exportContentTypes[format])
		w.Header().Set("Content-Disposition", `attachment; filename="draft.`+string(format)+`"`)
		_, _ = w.Write(data)
	}
}

// readJSON decodes the request body, answering 400 on malformed input.
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
