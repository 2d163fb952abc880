package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventActionStart  EventType = "action_start"
	EventActionSettle EventType = "action_settle"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ActionEvent describes one transition of an action's lifecycle.
type ActionEvent struct {
	EventBase
	Key      string        `json:"key"`
	Kind     string        `json:"kind"`
	Duration time.Duration `json:"duration,omitempty"` // set on settle
	Error    string        `json:"error,omitempty"`    // set on failed settle
}

// Failed reports whether the event is a settle with an error.
func (e *ActionEvent) Failed() bool {
	return e.Type == EventActionSettle && e.Error != ""
}

// LifecycleHooks defines callbacks for controller observability.
type LifecycleHooks struct {
	OnActionStart  func(context.Context, *ActionEvent)
	OnActionSettle func(context.Context, *ActionEvent)
}
