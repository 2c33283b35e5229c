package draftex

import (
	"sync"
	"time"
)

// SessionState is the edit pipeline state.
type SessionState int32

// Pipeline states. Keystrokes move Idle → Editing; the debounce window
// expiring moves Editing → Compiling; publishing the recomputed outline
// and preview returns to Idle.
const (
	StateIdle SessionState = iota
	StateEditing
	StateCompiling
)

// Snapshot is one published derivation of the source document. Outline and
// Fragment are always computed from the same Source text; a snapshot is
// never partially updated.
type Snapshot struct {
	Revision int64
	Source   string
	Outline  []OutlineEntry
	Fragment string
}

// Session owns the current source text and drives outline extraction and
// preview rendering on change, coalescing bursts of edits through a
// debounce window. There is exactly one writer of the source at any
// instant; derivations are pure functions over an immutable text snapshot.
type Session struct {
	mu       sync.Mutex
	debounce time.Duration

	state     SessionState
	timer     *time.Timer
	source    string
	revision  int64 // bumps on every accepted mutation
	published Snapshot

	onPublish func(Snapshot)
}

// NewSession creates a session with the given debounce window.
// If debounce <= 0 the default window is used.
func NewSession(debounce time.Duration) *Session {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Session{debounce: debounce}
}

// SetOnPublish registers a callback invoked after every published
// recompute, outside the session lock. The view layer subscribes here.
func (s *Session) SetOnPublish(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPublish = fn
}

// SetText accepts a user edit of the full source text. The recompute is
// debounced: edits arriving while a window is pending cancel and restart
// the timer, so N edits inside one window produce exactly one recompute,
// against the text of the last edit. Last write wins; no partial output is
// ever published for a superseded edit.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	s.source = text
	s.revision++
	s.state = StateEditing

	if s.timer != nil {
		s.timer.Stop()
	}
	rev := s.revision
	s.timer = time.AfterFunc(s.debounce, func() {
		s.compile(rev)
	})
	s.mu.Unlock()
}

// Replace performs the assistant's atomic whole-document swap, bypassing
// the debounce and synchronously recomputing outline and preview before
// returning. When a user edit is still awaiting its recompute the swap is
// refused with ErrEditPending so in-progress work is never silently
// discarded; callers that have reconciled explicitly use ForceReplace.
//
// The idle check and the swap happen under one lock acquisition, so an
// edit arriving between them is impossible: either it lands before and
// Replace refuses, or it lands after and supersedes the swap through the
// usual revision ordering.
func (s *Session) Replace(text string) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrEditPending
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.source = text
	s.revision++
	rev := s.revision
	s.mu.Unlock()

	s.compile(rev)
	return nil
}

// ForceReplace swaps the whole document unconditionally and synchronously
// republishes. Any pending debounce window is discarded.
func (s *Session) ForceReplace(text string) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.source = text
	s.revision++
	rev := s.revision
	s.mu.Unlock()

	s.compile(rev)
}

// Flush forces an immediate recompute of the current text, short-cutting a
// pending debounce window. No-op when already idle and published.
func (s *Session) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	rev := s.revision
	published := s.published.Revision
	s.mu.Unlock()

	if rev != published {
		s.compile(rev)
	}
}

// compile recomputes outline and preview for the revision the debounce
// window was armed with. A revision superseded before publication is
// discarded: no intermediate state leaks to the view.
func (s *Session) compile(rev int64) {
	s.mu.Lock()
	if rev != s.revision {
		s.mu.Unlock()
		return // superseded by a later edit
	}
	s.state = StateCompiling
	text := s.source
	s.mu.Unlock()

	// Pure derivations over the immutable text snapshot.
	outline := ExtractOutline(text)
	fragment := RenderPreview(text)

	s.mu.Lock()
	if rev != s.revision {
		s.mu.Unlock()
		return
	}
	s.published = Snapshot{
		Revision: rev,
		Source:   text,
		Outline:  outline,
		Fragment: fragment,
	}
	s.state = StateIdle
	fn := s.onPublish
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

// Snapshot returns the last published derivation. A caller reading while a
// recompute is pending receives the previous snapshot. That staleness is
// accepted, not an error.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// snapshotLocked copies the published snapshot. Callers hold s.mu.
func (s *Session) snapshotLocked() Snapshot {
	snap := s.published
	snap.Outline = append([]OutlineEntry(nil), s.published.Outline...)
	return snap
}

// Source returns the latest accepted source text, which may be newer than
// the published snapshot.
func (s *Session) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// State returns the current pipeline state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
