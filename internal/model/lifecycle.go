package model

import "time"

// StateUpdate is one entry in a contact's append-only state history.
type StateUpdate struct {
	FromState ContactState   `json:"fromState"`
	ToState   ContactState   `json:"toState"`
	Timestamp time.Time      `json:"timestamp"`
	Note      string         `json:"note,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Interaction is one typed event in a contact's interaction log. NewState,
// when set, also advances the tracked state.
type Interaction struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Note      string         `json:"note,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	NewState  ContactState   `json:"newState,omitempty"`
}

// LifecycleRecord tracks one contact's funnel progress, independent of the
// derived state on the ContactRecord. Created lazily on first update; never
// deleted.
type LifecycleRecord struct {
	ContactID    string        `json:"contactId"`
	CurrentState ContactState  `json:"currentState"`
	StateHistory []StateUpdate `json:"stateHistory"`
	Interactions []Interaction `json:"interactions"`
	LastUpdated  time.Time     `json:"lastUpdated"`
}

// TrackingStore is the persisted lifecycle state layout: read in full and
// written in full per mutating call. A deliberate simplification, unsuitable
// for high-volume concurrent writers.
type TrackingStore struct {
	Contacts map[string]*LifecycleRecord `json:"contacts"`
	Version  string                      `json:"version"`
}

// TrackingStoreVersion is the current persisted layout version.
const TrackingStoreVersion = "1.0"

// NewTrackingStore returns an empty store at the current version.
func NewTrackingStore() *TrackingStore {
	return &TrackingStore{
		Contacts: make(map[string]*LifecycleRecord),
		Version:  TrackingStoreVersion,
	}
}

// StateUpdateResult reports the outcome of an UpdateState call.
type StateUpdateResult struct {
	ContactID     string       `json:"contactId"`
	PreviousState ContactState `json:"previousState"`
	NewState      ContactState `json:"newState"`
	Timestamp     time.Time    `json:"timestamp"`
}

// InteractionResult reports the outcome of a RecordInteraction call.
type InteractionResult struct {
	ContactID     string       `json:"contactId"`
	InteractionID string       `json:"interactionId"`
	CurrentState  ContactState `json:"currentState"`
	Timestamp     time.Time    `json:"timestamp"`
}

// History is the response of getHistory. Found is false when the contact has
// no tracking record yet — distinct from the contact not existing at all.
type History struct {
	ContactID         string        `json:"contactId"`
	Found             bool          `json:"found"`
	CurrentState      ContactState  `json:"currentState"`
	TotalInteractions int           `json:"totalInteractions"`
	StateHistory      []StateUpdate `json:"stateHistory,omitempty"`
	Interactions      []Interaction `json:"interactions,omitempty"`
	LastUpdated       time.Time     `json:"lastUpdated,omitzero"`
}
