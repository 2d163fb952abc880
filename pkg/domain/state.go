package domain

// ActionState is the observable state of a remote-action controller.
// An empty BusyKey or LastError means "none".
type ActionState struct {
	// BusyKey identifies the action currently in flight.
	BusyKey string `json:"busy_key,omitempty"`

	// LastError holds the message of the most recent failure.
	// It is cleared when an action starts or succeeds.
	LastError string `json:"last_error,omitempty"`

	// Results maps an action key to its last successful payload.
	Results map[string]any `json:"results"`
}

// NewActionState returns an idle state with no results.
func NewActionState() ActionState {
	return ActionState{
		Results: make(map[string]any),
	}
}

// Snapshot returns a copy whose Results map can be read without the owner's lock.
// Payloads themselves are shared.
func (s ActionState) Snapshot() ActionState {
	out := ActionState{
		BusyKey:   s.BusyKey,
		LastError: s.LastError,
		Results:   make(map[string]any, len(s.Results)),
	}
	for k, v := range s.Results {
		out.Results[k] = v
	}
	return out
}
