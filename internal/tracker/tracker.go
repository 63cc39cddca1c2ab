package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/prospector-cli/internal/model"
)

// ContactDirectory resolves a contact id against the current ingested
// snapshot. Existence is checked against the record collection, not the
// tracking store — tracking records are created lazily.
type ContactDirectory interface {
	ContactByID(ctx context.Context, id string) (*model.ContactRecord, bool, error)
}

// AllowedTransitions is the advisory funnel transition table. The tracker
// does not enforce it: any caller-specified state is accepted and recorded.
var AllowedTransitions = map[model.ContactState][]model.ContactState{
	model.StateNotContacted:           {model.StateSent},
	model.StateInterestedNotContacted: {model.StateSent},
	model.StateSent:                   {model.StateOpened, model.StateBounced, model.StateReplied},
	model.StateOpened:                 {model.StateReplied, model.StateDemoed},
	model.StateReplied:                {model.StateDemoed},
	model.StateBounced:                {model.StateSent}, // re-send after correction
}

// IsExpectedTransition reports whether from→to appears in the advisory
// transition table.
func IsExpectedTransition(from, to model.ContactState) bool {
	for _, next := range AllowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Tracker owns the lifecycle state of all contacts. A single mutex
// serializes every load-modify-save cycle so concurrent writers cannot
// lose updates on the whole-store document.
type Tracker struct {
	mu    sync.Mutex
	store Store
	dir   ContactDirectory
}

// New creates a Tracker over the given store and contact directory.
func New(store Store, dir ContactDirectory) *Tracker {
	return &Tracker{store: store, dir: dir}
}

// Close closes the underlying store.
func (t *Tracker) Close() error {
	return t.store.Close()
}

// UpdateState records a state transition for a contact. The previous state
// is the tracked state, or the contact's derived state when no tracking
// record exists yet. Unknown contact ids fail with NotFoundError.
func (t *Tracker) UpdateState(ctx context.Context, contactID string, newState model.ContactState, note string, metadata map[string]any, at time.Time) (*model.StateUpdateResult, error) {
	if !model.ValidContactState(newState) {
		return nil, &model.ValidationError{Field: "newState", Message: fmt.Sprintf("unknown state %q", newState)}
	}

	contact, ok, err := t.dir.ContactByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &model.NotFoundError{Kind: "contact", Key: contactID}
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ts, err := t.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	rec := ts.Contacts[contactID]
	prev := contact.ContactState
	if rec == nil {
		rec = &model.LifecycleRecord{ContactID: contactID, CurrentState: prev}
		ts.Contacts[contactID] = rec
	} else {
		prev = rec.CurrentState
	}

	if !IsExpectedTransition(prev, newState) {
		zap.L().Debug("tracker: transition outside advisory table",
			zap.String("contact_id", contactID),
			zap.String("from", string(prev)),
			zap.String("to", string(newState)),
		)
	}

	rec.StateHistory = append(rec.StateHistory, model.StateUpdate{
		FromState: prev,
		ToState:   newState,
		Timestamp: at,
		Note:      note,
		Metadata:  metadata,
	})
	rec.CurrentState = newState
	rec.LastUpdated = at

	if err := t.store.Save(ctx, ts); err != nil {
		return nil, err
	}

	zap.L().Info("tracker: state updated",
		zap.String("contact_id", contactID),
		zap.String("from", string(prev)),
		zap.String("to", string(newState)),
	)

	return &model.StateUpdateResult{
		ContactID:     contactID,
		PreviousState: prev,
		NewState:      newState,
		Timestamp:     at,
	}, nil
}

// RecordInteraction appends a typed event to a contact's interaction log.
// When the interaction carries a new state, the tracked state advances too.
func (t *Tracker) RecordInteraction(ctx context.Context, contactID string, in model.Interaction) (*model.InteractionResult, error) {
	if in.Type == "" {
		return nil, &model.ValidationError{Field: "type", Message: "must not be empty"}
	}
	if in.NewState != "" && !model.ValidContactState(in.NewState) {
		return nil, &model.ValidationError{Field: "newState", Message: fmt.Sprintf("unknown state %q", in.NewState)}
	}

	contact, ok, err := t.dir.ContactByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &model.NotFoundError{Kind: "contact", Key: contactID}
	}

	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ts, err := t.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	rec := ts.Contacts[contactID]
	if rec == nil {
		rec = &model.LifecycleRecord{ContactID: contactID, CurrentState: contact.ContactState}
		ts.Contacts[contactID] = rec
	}

	rec.Interactions = append(rec.Interactions, in)
	if in.NewState != "" {
		rec.CurrentState = in.NewState
	}
	rec.LastUpdated = in.Timestamp

	if err := t.store.Save(ctx, ts); err != nil {
		return nil, err
	}

	return &model.InteractionResult{
		ContactID:     contactID,
		InteractionID: in.ID,
		CurrentState:  rec.CurrentState,
		Timestamp:     in.Timestamp,
	}, nil
}

// GetHistory returns a contact's tracking record. A known contact with no
// tracking record yet yields Found=false and state UNKNOWN — distinct from
// the contact not existing, which is a NotFoundError.
func (t *Tracker) GetHistory(ctx context.Context, contactID string, includeInteractions, includeStateHistory bool) (*model.History, error) {
	_, ok, err := t.dir.ContactByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &model.NotFoundError{Kind: "contact", Key: contactID}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ts, err := t.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	rec := ts.Contacts[contactID]
	if rec == nil {
		return &model.History{
			ContactID:    contactID,
			Found:        false,
			CurrentState: model.StateUnknown,
		}, nil
	}

	h := &model.History{
		ContactID:         contactID,
		Found:             true,
		CurrentState:      rec.CurrentState,
		TotalInteractions: len(rec.Interactions),
		LastUpdated:       rec.LastUpdated,
	}
	if includeStateHistory {
		h.StateHistory = rec.StateHistory
	}
	if includeInteractions {
		h.Interactions = rec.Interactions
	}
	return h, nil
}
