package monitor

import "time"

// State represents the current activity classification.
type State string

const (
	StateActive State = "active"
	StateIdle   State = "idle"
	StatePaused State = "paused"
)

// EventType defines the type of Monitor event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventSample      EventType = "sample"
	EventQueryError  EventType = "query_error"
	EventWakeReset   EventType = "wake_reset"
)

// Event represents a Monitor update for observers.
type Event struct {
	Type    EventType
	State   State
	IdleFor time.Duration
	Message string
	At      time.Time
}
