package client

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ferraz/discovery-go/internal/logging"
	"github.com/ferraz/discovery-go/pkg/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// dataPrefix marks candidate event lines in the transport framing. All
// other lines (blank separators, event/id/retry fields) carry nothing.
const dataPrefix = "data: "

// FrameDecoder incrementally decodes a streamed response body into events.
// It holds at most one partial line between reads, so total stream size is
// unbounded. Bytes pass through a UTF-8 decoder before line splitting, so
// multi-byte sequences split across chunk boundaries decode correctly.
type FrameDecoder struct {
	r       io.Reader
	readBuf []byte
	carry   string
	lines   []string
	done    bool
	err     error
	log     *logging.Logger
}

// NewFrameDecoder creates a decoder over body. The caller retains
// ownership of body and must close it when decoding ends.
func NewFrameDecoder(body io.Reader, log *logging.Logger) *FrameDecoder {
	return &FrameDecoder{
		r:       transform.NewReader(body, unicode.UTF8.NewDecoder()),
		readBuf: make([]byte, 4096),
		log:     log,
	}
}

// Next returns the next decoded event, or ok=false at end of stream.
// Malformed frames are dropped, logged, and never end the stream.
func (d *FrameDecoder) Next() (ev models.StreamEvent, ok bool) {
	for {
		for len(d.lines) > 0 {
			line := strings.TrimSuffix(d.lines[0], "\r")
			d.lines = d.lines[1:]
			if !strings.HasPrefix(line, dataPrefix) {
				continue
			}
			ev, err := parseEvent([]byte(line[len(dataPrefix):]))
			if err != nil {
				d.log.Warnf("dropping malformed frame: %v", err)
				continue
			}
			return ev, true
		}

		if d.done {
			return models.StreamEvent{}, false
		}

		n, err := d.r.Read(d.readBuf)
		if n > 0 {
			parts := strings.Split(d.carry+string(d.readBuf[:n]), "\n")
			d.carry = parts[len(parts)-1]
			d.lines = append(d.lines, parts[:len(parts)-1]...)
		}
		if err != nil {
			// A residual partial line is discarded on purpose: a truncated
			// final line cannot be recovered as valid JSON.
			d.done = true
			if err != io.EOF {
				d.err = err
			}
		}
	}
}

// Err returns the read error that ended the stream, if any. io.EOF is a
// normal end and is not reported.
func (d *FrameDecoder) Err() error {
	return d.err
}

// wireEvent is the JSON shape of one frame payload.
type wireEvent struct {
	Type         string          `json:"type"`
	Content      json.RawMessage `json:"content"`
	FullResponse *string         `json:"full_response"`
}

// normalizeType folds the chat endpoint's aliased event names onto the
// base taxonomy.
func normalizeType(t string) models.EventType {
	switch t {
	case "chat_thought":
		return models.EventThought
	case "chat_chunk":
		return models.EventChunk
	case "chat_complete":
		return models.EventComplete
	}
	return models.EventType(t)
}

// parseEvent decodes one frame payload into a StreamEvent.
func parseEvent(payload []byte) (models.StreamEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(payload, &w); err != nil {
		return models.StreamEvent{}, fmt.Errorf("invalid event JSON: %w", err)
	}

	ev := models.StreamEvent{
		Type:         normalizeType(w.Type),
		FullResponse: w.FullResponse,
	}

	switch ev.Type {
	case models.EventThought, models.EventChunk, models.EventError:
		if len(w.Content) > 0 {
			if err := json.Unmarshal(w.Content, &ev.Content); err != nil {
				return models.StreamEvent{}, fmt.Errorf("invalid %s content: %w", ev.Type, err)
			}
		}
	case models.EventResults:
		if len(w.Content) > 0 {
			if err := json.Unmarshal(w.Content, &ev.Items); err != nil {
				return models.StreamEvent{}, fmt.Errorf("invalid results content: %w", err)
			}
		}
	case models.EventParsingComplete:
		// content is the parsed result count; tolerate absence or odd shapes
		if len(w.Content) > 0 {
			json.Unmarshal(w.Content, &ev.Count)
		}
	}

	return ev, nil
}
