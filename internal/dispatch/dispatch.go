// Package dispatch interprets decoded stream events against session state
// and drives rendering.
package dispatch

import (
	"fmt"

	"github.com/ferraz/discovery-go/internal/logging"
	"github.com/ferraz/discovery-go/internal/session"
	"github.com/ferraz/discovery-go/pkg/models"
)

// Phase is the dispatcher's position in one stream's lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseThinking
	PhaseStreaming
	PhaseComplete
	PhaseError
)

// String returns a readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseThinking:
		return "thinking"
	case PhaseStreaming:
		return "streaming"
	case PhaseComplete:
		return "complete"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// RenderPort is the presentation surface the dispatcher drives. The
// dispatcher is the only writer; implementations never need their own
// locking for calls arriving from one stream.
type RenderPort interface {
	// RenderThought replaces the displayed thinking text.
	RenderThought(text string)
	// ClearThinking hides the thinking indicator.
	ClearThinking()
	// BeginMessage opens a new output slot for an assistant response.
	BeginMessage()
	// RenderChunk re-renders the full accumulated response text. Full
	// re-render, not appending: formatting can change retroactively near
	// chunk boundaries.
	RenderChunk(accumulated string)
	// RenderResults replaces the displayed result set.
	RenderResults(items []models.ContentItem)
	// RenderStatus shows a transient status line.
	RenderStatus(msg string)
	// RenderError shows a user-facing failure message.
	RenderError(msg string)
}

// Persister snapshots session state after a stream completes.
type Persister interface {
	Save(*session.Session) error
}

// User-facing failure text. Raw server content is logged, never shown.
const (
	MsgStreamFailed  = "Something went wrong while generating the response. Please try again."
	MsgServerFailure = "The discovery service reported a problem. Please try again."
)

// Dispatcher applies stream events to a session, strictly in arrival
// order. Events tagged with a stale generation are dropped, so an
// abandoned stream can never corrupt the accumulator of its successor.
type Dispatcher struct {
	session *session.Session
	port    RenderPort
	log     *logging.Logger
	persist Persister
	phase   Phase
}

// New creates a dispatcher. persist may be nil when no snapshotting is
// wanted (e.g. mid-conversation chat turns).
func New(sess *session.Session, port RenderPort, log *logging.Logger, persist Persister) *Dispatcher {
	return &Dispatcher{
		session: sess,
		port:    port,
		log:     log,
		persist: persist,
		phase:   PhaseIdle,
	}
}

// Phase returns the current lifecycle phase.
func (d *Dispatcher) Phase() Phase {
	return d.phase
}

// Begin resets accumulation state for a new streamed request and returns
// the generation to tag its events with.
func (d *Dispatcher) Begin(query string) uint64 {
	d.phase = PhaseIdle
	return d.session.Begin(query)
}

// Dispatch applies one event. gen must be the value returned by the Begin
// call that started the event's stream.
func (d *Dispatcher) Dispatch(gen uint64, ev models.StreamEvent) {
	if gen != d.session.Generation() {
		d.log.Debugf("dropping event %q from stale generation %d (current %d)", ev.Type, gen, d.session.Generation())
		return
	}

	if ev.Err != nil {
		d.fail(MsgStreamFailed, ev.Err.Error())
		return
	}

	switch ev.Type {
	case models.EventThought:
		d.session.AddThought(ev.Content)
		if d.phase == PhaseIdle {
			d.phase = PhaseThinking
		}
		d.port.RenderThought(ev.Content)

	case models.EventChunk:
		d.session.ClearThinking()
		d.port.ClearThinking()
		if first := d.session.AppendChunk(ev.Content); first {
			d.port.BeginMessage()
		}
		d.phase = PhaseStreaming
		d.port.RenderChunk(d.session.Accumulated())

	case models.EventParsingComplete:
		d.port.RenderStatus(fmt.Sprintf("Found %d results, validating sources...", ev.Count))

	case models.EventResults:
		d.session.SetResults(ev.Items)
		d.port.RenderResults(ev.Items)

	case models.EventComplete:
		d.phase = PhaseComplete
		d.session.ClearThinking()
		d.port.ClearThinking()
		if text, ok := d.finalText(ev); ok {
			d.session.AppendTurn(models.ConversationTurn{Role: models.RoleAssistant, Content: text})
		}
		if d.persist != nil {
			if err := d.persist.Save(d.session); err != nil {
				d.log.Errorf("failed to persist session state: %v", err)
			}
		}

	case models.EventError:
		d.fail(MsgServerFailure, ev.Content)

	default:
		// Unknown event types are a forward-compatible no-op.
		d.log.Debugf("ignoring unknown event type %q", ev.Type)
	}
}

// finalText picks the canonical assistant text for history: the server's
// full_response when present, otherwise the local accumulator. Neither
// present means no history entry at all.
func (d *Dispatcher) finalText(ev models.StreamEvent) (string, bool) {
	if ev.FullResponse != nil {
		return *ev.FullResponse, true
	}
	if acc := d.session.Accumulated(); acc != "" {
		return acc, true
	}
	return "", false
}

func (d *Dispatcher) fail(userMsg, rawDetail string) {
	d.phase = PhaseError
	d.session.ClearThinking()
	d.port.ClearThinking()
	d.log.Errorf("stream failed: %s", rawDetail)
	d.port.RenderError(userMsg)
}
