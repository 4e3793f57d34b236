package models

// EventType is the discriminant of a StreamEvent.
type EventType string

const (
	EventThought         EventType = "thought"
	EventChunk           EventType = "chunk"
	EventParsingComplete EventType = "parsing_complete"
	EventResults         EventType = "results"
	EventComplete        EventType = "complete"
	EventError           EventType = "error"
)

// StreamEvent is one decoded frame of the streaming protocol. Exactly one
// variant is active, selected by Type; types outside the enumerated set are
// passed through and ignored downstream. Err carries transport-level
// failures and is never set by the server.
type StreamEvent struct {
	Type EventType

	// Content holds the payload of thought, chunk and error events.
	Content string

	// Items holds the payload of a results event.
	Items []ContentItem

	// Count is the parsed result count carried by parsing_complete.
	Count int

	// FullResponse is the canonical final assistant text on a complete
	// event; nil when the server omits it.
	FullResponse *string

	// Err is a transport failure surfaced through the event channel.
	Err error
}

// IsTerminal reports whether the event ends its stream.
func (e StreamEvent) IsTerminal() bool {
	return e.Type == EventComplete || e.Type == EventError || e.Err != nil
}
