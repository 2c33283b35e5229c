package draftex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Change classifications reported by the assistant alongside a reply.
const (
	ChangeNone    = "none"    // conversational reply only
	ChangeMinor   = "minor"   // targeted edits within the document
	ChangeRewrite = "rewrite" // whole-document replacement
)

// AssistantRequest is the payload sent to the assistant collaborator.
type AssistantRequest struct {
	SourceText          string `json:"currentSourceText"`
	ConversationSummary string `json:"recentConversationSummary"`
}

// AssistantResponse is the assistant's answer. A non-empty Replacement is
// an atomic whole-document substitute for the current source.
type AssistantResponse struct {
	Reply          string `json:"replyText"`
	Replacement    string `json:"optionalFullReplacementText,omitempty"`
	Classification string `json:"changeClassification"`
}

// Assistant abstracts the writing-assistant collaborator.
type Assistant interface {
	Propose(ctx context.Context, req AssistantRequest) (AssistantResponse, error)
}

// HTTPAssistant talks to a remote assistant endpoint over JSON.
type HTTPAssistant struct {
	url    string
	client *http.Client
}

// NewHTTPAssistant creates a client for the given endpoint URL.
func NewHTTPAssistant(url string, timeout time.Duration) *HTTPAssistant {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPAssistant{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Propose sends the current document and conversation summary and decodes
// the assistant's reply. Transport failures surface as
// ErrAssistantUnavailable so callers can notify without touching document
// state.
func (a *HTTPAssistant) Propose(ctx context.Context, req AssistantRequest) (AssistantResponse, error) {
	var resp AssistantResponse

	body, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("encoding assistant request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return resp, fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := a.client.Do(httpReq)
	if err != nil {
		return resp, fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return resp, fmt.Errorf("%w: status %d", ErrAssistantResponse, httpResp.StatusCode)
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return resp, fmt.Errorf("%w: %v", ErrAssistantResponse, err)
	}
	return resp, nil
}

// ApplyAssistant runs one assistant round against the current source text.
// A non-empty replacement is applied through Replace, so a user edit still
// awaiting its recompute refuses the swap with ErrEditPending rather than
// silently discarding in-progress typing; the response is returned either
// way so the caller can reconcile and retry with ForceReplace.
func (s *Session) ApplyAssistant(ctx context.Context, a Assistant, summary string) (AssistantResponse, error) {
	req := AssistantRequest{
		SourceText:          s.Source(),
		ConversationSummary: summary,
	}

	resp, err := a.Propose(ctx, req)
	if err != nil {
		return resp, err // source untouched
	}

	if resp.Replacement != "" {
		if err := s.Replace(resp.Replacement); err != nil {
			return resp, err
		}
	}
	return resp, nil
}
