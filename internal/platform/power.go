package platform

import (
	"errors"
	"time"
)

// ErrPowerEventsUnsupported indicates sleep/wake notifications are not
// available on this system.
var ErrPowerEventsUnsupported = errors.New("power events unsupported")

// PowerEventType classifies a system power transition.
type PowerEventType string

const (
	PowerSleep PowerEventType = "sleep"
	PowerWake  PowerEventType = "wake"
)

// PowerEvent is a single sleep or wake notification.
type PowerEvent struct {
	Type PowerEventType
	At   time.Time
}

// PowerWatcher delivers system sleep/wake notifications. Only one
// watcher may be started per process.
type PowerWatcher interface {
	// Start registers with the OS and begins delivering events. It
	// returns ErrPowerEventsUnsupported where no notification source
	// exists.
	Start() error
	Events() <-chan PowerEvent
	Stop()
}

// NewPowerWatcher returns a platform-specific power watcher.
func NewPowerWatcher() PowerWatcher {
	return newPowerWatcher()
}
