package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ferraz/discovery-go/internal/auth"
	"github.com/ferraz/discovery-go/internal/logging"
	"github.com/ferraz/discovery-go/internal/store"
	"github.com/ferraz/discovery-go/pkg/models"
)

// StateTTL is how long a persisted snapshot stays restorable.
const StateTTL = time.Hour

// ErrNothingToRestore indicates no valid snapshot exists.
var ErrNothingToRestore = errors.New("nothing to restore")

// Bridge snapshots session state to the key-value store and restores it on
// a later invocation. Restoration is gated: the snapshot must be younger
// than StateTTL, a credential must be present, and the result set must be
// non-empty. The bridge reads the credential key but never writes it.
type Bridge struct {
	store store.Store
	log   *logging.Logger
	ttl   time.Duration
	now   func() time.Time
}

// NewBridge creates a persistence bridge over the given store.
func NewBridge(s store.Store, log *logging.Logger) *Bridge {
	return &Bridge{store: s, log: log, ttl: StateTTL, now: time.Now}
}

// Save snapshots the session's result-bearing state.
func (b *Bridge) Save(s *Session) error {
	state := models.PersistedSearchState{
		Results:        s.Results(),
		Query:          s.Query(),
		ThoughtHistory: s.ThoughtHistory(),
		ThinkingText:   s.ThinkingText(),
		Timestamp:      b.now(),
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize session state: %w", err)
	}
	return b.store.Set(store.KeySearchState, string(data))
}

// Restore returns the persisted snapshot if it is still valid. Malformed
// and stale entries are cleared proactively; both yield
// ErrNothingToRestore rather than a user-visible failure.
func (b *Bridge) Restore() (*models.PersistedSearchState, error) {
	raw, ok, err := b.store.Get(store.KeySearchState)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNothingToRestore
	}

	var state models.PersistedSearchState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		b.log.Warnf("clearing corrupt persisted state: %v", err)
		b.store.Delete(store.KeySearchState)
		return nil, ErrNothingToRestore
	}

	if b.now().Sub(state.Timestamp) > b.ttl {
		b.store.Delete(store.KeySearchState)
		return nil, ErrNothingToRestore
	}

	if !auth.HasKey(b.store) {
		return nil, ErrNothingToRestore
	}

	if len(state.Results) == 0 {
		return nil, ErrNothingToRestore
	}

	return &state, nil
}

// Clear removes any persisted snapshot.
func (b *Bridge) Clear() error {
	return b.store.Delete(store.KeySearchState)
}
