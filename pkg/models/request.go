package models

import (
	"crypto/md5"
	"encoding/hex"
)

// SearchRequest is the payload for a streaming content search.
type SearchRequest struct {
	Query  string `json:"query"`
	APIKey string `json:"api_key"`
}

// ChatRequest is the payload for a streaming chat turn about an article.
type ChatRequest struct {
	Message             string             `json:"message"`
	Article             ContentItem        `json:"article"`
	ConversationHistory []ConversationTurn `json:"conversation_history"`
	APIKey              string             `json:"api_key"`
}

// RecommendationsRequest is the payload for a recommendations stream.
type RecommendationsRequest struct {
	APIKey string `json:"api_key"`
}

// ConfigureRequest is the payload for the server-side key check.
type ConfigureRequest struct {
	APIKey string `json:"api_key"`
}

// ChatHistoryResponse wraps the backend's stored conversation for one chat
// session. The client replaces its local history wholesale with this.
type ChatHistoryResponse struct {
	History []ConversationTurn `json:"history"`
}

// ChatID derives the backend's per-article chat session id. The backend
// keys sessions on md5(title+url) with an "article_" prefix.
func ChatID(article ContentItem) string {
	sum := md5.Sum([]byte(article.Title + article.URL))
	return "article_" + hex.EncodeToString(sum[:])
}
