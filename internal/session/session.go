// Package session holds per-invocation conversation and stream state.
package session

import (
	"strings"
	"sync"

	"github.com/ferraz/discovery-go/pkg/models"
)

// Session owns all mutable state for one logical chat/search session. At
// most one stream accumulates into it at a time; Begin bumps a generation
// counter so late events from an abandoned stream can be discarded.
type Session struct {
	mu sync.Mutex

	generation     uint64
	history        []models.ConversationTurn
	accumulated    strings.Builder
	thinkingText   string
	thoughtHistory []string
	results        []models.ContentItem
	query          string
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// Begin starts a new streamed request: accumulation fields reset, the
// generation advances. Returns the new generation.
func (s *Session) Begin(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.accumulated.Reset()
	s.thinkingText = ""
	s.thoughtHistory = nil
	s.query = query
	return s.generation
}

// Generation returns the current stream generation.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// AddThought records a thought: the displayed thinking text is replaced,
// the thought log is append-only.
func (s *Session) AddThought(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thinkingText = content
	s.thoughtHistory = append(s.thoughtHistory, content)
}

// ThinkingText returns the currently displayed thinking text.
func (s *Session) ThinkingText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thinkingText
}

// ThoughtHistory returns a copy of the thought log.
func (s *Session) ThoughtHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.thoughtHistory))
	copy(out, s.thoughtHistory)
	return out
}

// ClearThinking clears the displayed thinking text, keeping the log.
func (s *Session) ClearThinking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thinkingText = ""
}

// AppendChunk appends content to the response accumulator and reports
// whether this was the first chunk of the current request.
func (s *Session) AppendChunk(content string) (first bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	first = s.accumulated.Len() == 0
	s.accumulated.WriteString(content)
	return first
}

// Accumulated returns the full accumulated response text.
func (s *Session) Accumulated() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accumulated.String()
}

// SetResults replaces the current result set wholesale.
func (s *Session) SetResults(items []models.ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = items
}

// Results returns the current result set.
func (s *Session) Results() []models.ContentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Query returns the query the current request was started with.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// AppendTurn appends one conversation turn.
func (s *Session) AppendTurn(turn models.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, turn)
}

// SetHistory replaces the conversation history wholesale, as when the
// backend's stored history for a chat session is loaded.
func (s *Session) SetHistory(turns []models.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = make([]models.ConversationTurn, len(turns))
	copy(s.history, turns)
}

// History returns a copy of the conversation history.
func (s *Session) History() []models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ConversationTurn, len(s.history))
	copy(out, s.history)
	return out
}

// LastTurn returns the most recent conversation turn.
func (s *Session) LastTurn() (models.ConversationTurn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return models.ConversationTurn{}, false
	}
	return s.history[len(s.history)-1], true
}
