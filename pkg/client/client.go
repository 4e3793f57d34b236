package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ferraz/discovery-go/internal/logging"
	"github.com/ferraz/discovery-go/pkg/models"
)

// Client is the content-discovery API client. One Client may serve many
// requests; each streaming call gets its own goroutine and channel.
type Client struct {
	http   HTTPClientInterface
	apiKey string
	log    *logging.Logger
}

// Config holds client construction options.
type Config struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
	Logger         *logging.Logger
}

// New creates a client against the configured backend.
func New(cfg Config) (*Client, error) {
	httpClient, err := NewHTTPClient(cfg.BaseURL, cfg.TimeoutSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}

	return &Client{http: httpClient, apiKey: cfg.APIKey, log: log}, nil
}

// NewWithHTTP creates a client over an injected transport. Used by tests.
func NewWithHTTP(h HTTPClientInterface, apiKey string, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Nop()
	}
	return &Client{http: h, apiKey: apiKey, log: log}
}

// HasCredential reports whether a credential is set.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.http.Close()
}

// SearchStream opens a streaming content search. Events arrive on the
// returned channel in server order; transport failures arrive as a single
// event with Err set, after which the channel closes.
func (c *Client) SearchStream(ctx context.Context, query string) (<-chan models.StreamEvent, error) {
	payload, err := json.Marshal(models.SearchRequest{Query: query, APIKey: c.apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}
	return c.stream(ctx, searchStreamPath, payload), nil
}

// ChatStream opens a streaming chat turn about an article. The full local
// conversation history travels with every turn.
func (c *Client) ChatStream(ctx context.Context, message string, article models.ContentItem, history []models.ConversationTurn) (<-chan models.StreamEvent, error) {
	if history == nil {
		history = []models.ConversationTurn{}
	}
	payload, err := json.Marshal(models.ChatRequest{
		Message:             message,
		Article:             article,
		ConversationHistory: history,
		APIKey:              c.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}
	return c.stream(ctx, chatStreamPath, payload), nil
}

// RecommendationsStream opens a personalized recommendations stream.
func (c *Client) RecommendationsStream(ctx context.Context) (<-chan models.StreamEvent, error) {
	payload, err := json.Marshal(models.RecommendationsRequest{APIKey: c.apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}
	return c.stream(ctx, recommendStreamPath, payload), nil
}

// stream posts the payload and feeds decoded events to a channel. The
// response body is released on every exit path.
func (c *Client) stream(ctx context.Context, path string, payload []byte) <-chan models.StreamEvent {
	ch := make(chan models.StreamEvent, 64)

	go func() {
		defer close(ch)

		resp, err := c.http.Post(path, bytes.NewReader(payload), nil)
		if err != nil {
			ch <- models.StreamEvent{Err: fmt.Errorf("request failed: %w", err)}
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != 200 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			ch <- models.StreamEvent{Err: fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))}
			return
		}

		dec := NewFrameDecoder(resp.Body, c.log)
		for {
			select {
			case <-ctx.Done():
				ch <- models.StreamEvent{Err: ctx.Err()}
				return
			default:
			}

			ev, ok := dec.Next()
			if !ok {
				break
			}
			ch <- ev
		}

		if err := dec.Err(); err != nil {
			ch <- models.StreamEvent{Err: fmt.Errorf("stream read error: %w", err)}
		}
	}()

	return ch
}

// apiError is the backend's non-200 JSON body.
type apiError struct {
	Error string `json:"error"`
}

// postJSON posts a JSON payload to a non-streaming endpoint and returns
// the response body.
func (c *Client) postJSON(path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to build payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.http.Post(path, body, nil)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != 200 {
		var ae apiError
		if json.Unmarshal(data, &ae) == nil && ae.Error != "" {
			return nil, fmt.Errorf("server error %d: %s", resp.StatusCode, ae.Error)
		}
		return nil, fmt.Errorf("server error %d", resp.StatusCode)
	}

	return data, nil
}

// Configure asks the backend to validate and adopt the API key.
func (c *Client) Configure(apiKey string) error {
	if _, err := c.postJSON(configurePath, models.ConfigureRequest{APIKey: apiKey}); err != nil {
		return err
	}
	c.apiKey = apiKey
	return nil
}

// ResetAPIKey clears the key from the backend's memory.
func (c *Client) ResetAPIKey() error {
	_, err := c.postJSON(resetKeyPath, nil)
	return err
}

// ChatHistory fetches the backend's stored conversation for an article's
// chat session. The result replaces local history wholesale.
func (c *Client) ChatHistory(article models.ContentItem) ([]models.ConversationTurn, error) {
	resp, err := c.http.Get(chatHistoryPath+models.ChatID(article), nil)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("server error %d", resp.StatusCode)
	}

	var hr models.ChatHistoryResponse
	if err := json.Unmarshal(data, &hr); err != nil {
		return nil, fmt.Errorf("invalid history response: %w", err)
	}
	return hr.History, nil
}

// ClearChat clears the backend session for one article.
func (c *Client) ClearChat(article models.ContentItem) error {
	_, err := c.postJSON(chatClearPath+"/"+models.ChatID(article), nil)
	return err
}

// ClearAllChats clears every backend chat session.
func (c *Client) ClearAllChats() error {
	_, err := c.postJSON(chatClearPath, nil)
	return err
}

// Health reports the backend's health endpoint payload.
func (c *Client) Health() (map[string]interface{}, error) {
	resp, err := c.http.Get(healthPath, nil)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("server error %d", resp.StatusCode)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("invalid health response: %w", err)
	}
	return out, nil
}
