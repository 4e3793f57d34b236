// Package models defines data structures for the content-discovery API.
package models

import "time"

// ContentType classifies a discovered content item.
type ContentType string

const (
	ContentArticle  ContentType = "article"
	ContentVideo    ContentType = "video"
	ContentPodcast  ContentType = "podcast"
	ContentBlog     ContentType = "blog"
	ContentAcademic ContentType = "academic"
)

// AvailableContentTypes contains all content types the backend emits.
var AvailableContentTypes = []ContentType{
	ContentArticle,
	ContentVideo,
	ContentPodcast,
	ContentBlog,
	ContentAcademic,
}

// IsValidContentType checks if a content type is one the backend emits.
func IsValidContentType(t ContentType) bool {
	for _, valid := range AvailableContentTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// ContentItem is a single discovered piece of content. Items are immutable
// once received from the backend.
type ContentItem struct {
	Type        ContentType            `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Source      string                 `json:"source"`
	Relevance   string                 `json:"relevance,omitempty"`
	URL         string                 `json:"url"`
	Validation  map[string]interface{} `json:"validation,omitempty"`
}

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message in a chat session. The sequence is
// append-only during a session and rebuilt wholesale when history is
// loaded from the backend.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// PersistedSearchState is the session snapshot written to the state store
// after a stream completes. A snapshot is only restorable while it is
// fresh and a credential is present.
type PersistedSearchState struct {
	Results        []ContentItem `json:"results"`
	Query          string        `json:"query"`
	ThoughtHistory []string      `json:"thought_history,omitempty"`
	ThinkingText   string        `json:"thinking_text,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}

// HistoryEntry represents a query in the history file.
type HistoryEntry struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"` // search, chat, recommend
	Query     string    `json:"query"`
	Response  string    `json:"response,omitempty"`
}
